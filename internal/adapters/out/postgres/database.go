package postgres

import (
	"fmt"
	"log/slog"
	"time"

	"feedme/internal/adapters/out/postgres/mealrepo"
	"feedme/internal/adapters/out/postgres/orderrepo"
	"feedme/internal/adapters/out/postgres/userrepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// Config holds the connection settings of the PostgreSQL store.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the keyword/value connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Open connects to dsn. Unique violations surface as gorm.ErrDuplicatedKey and
// slow or failed statements are logged through log.
func Open(dsn string, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), NewGormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// NewGormConfig is shared by Open and the integration tests.
func NewGormConfig(log *slog.Logger) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(
			slog.NewLogLogger(log.With("component", "gorm").Handler(), slog.LevelWarn),
			logger.Config{
				SlowThreshold:             slowQueryThreshold,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}
}

// Migrate creates or updates every table of the store.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userrepo.UserDTO{},
		&mealrepo.MealDTO{},
		&mealrepo.ReviewDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.TrackingUpdateDTO{},
	); err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"feedme/internal/adapters/out/postgres"
	"feedme/internal/pkg/errs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

// Config is read from the environment. Values in a .env file fill in
// variables that are not already set.
type Config struct {
	HTTPPort string     `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`

	Storage    string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"feedme"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	MongoURI   string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB    string `env:"MONGO_DATABASE" envDefault:"feedme"`

	JWTSecret  string        `env:"JWT_SECRET,required"`
	JWTTTL     time.Duration `env:"JWT_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	TaxRate     float64 `env:"TAX_RATE" envDefault:"0.05"`
	ShippingFee float64 `env:"SHIPPING_FEE" envDefault:"5"`

	UnpaidOrderTTL  time.Duration `env:"UNPAID_ORDER_TTL" envDefault:"30m"`
	ExpirySchedule  string        `env:"UNPAID_ORDER_EXPIRY_SCHEDULE" envDefault:"0 * * * * *"`
	ExpiryBatchSize int           `env:"UNPAID_ORDER_EXPIRY_BATCH_SIZE" envDefault:"100"`

	AdminName     string `env:"ADMIN_NAME" envDefault:"Administrator"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// LoadConfig loads the optional dotenv files, .env by default, and parses the environment.
func LoadConfig(dotenvFiles ...string) (Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var storageErr, taxErr, feeErr, ttlErr, batchErr, adminErr error
	if c.Storage != StoragePostgres && c.Storage != StorageMongo {
		storageErr = errs.NewValueIsInvalidErrorWithCause("STORAGE_DRIVER",
			fmt.Errorf("%q is neither %s nor %s", c.Storage, StoragePostgres, StorageMongo))
	}
	if c.TaxRate < 0 || c.TaxRate > 1 {
		taxErr = errs.NewValueIsOutOfRangeError("TAX_RATE", c.TaxRate, 0, 1)
	}
	if c.ShippingFee < 0 {
		feeErr = errs.NewValueIsOutOfRangeError("SHIPPING_FEE", c.ShippingFee, 0, "unbounded")
	}
	if c.UnpaidOrderTTL <= 0 {
		ttlErr = errs.NewValueIsInvalidError("UNPAID_ORDER_TTL")
	}
	if c.ExpiryBatchSize <= 0 {
		batchErr = errs.NewValueIsInvalidError("UNPAID_ORDER_EXPIRY_BATCH_SIZE")
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		adminErr = errs.NewValueIsRequiredErrorWithCause("ADMIN_EMAIL",
			errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together"))
	}
	return errors.Join(storageErr, taxErr, feeErr, ttlErr, batchErr, adminErr)
}

// SeedsAdmin reports whether a bootstrap admin account is configured.
func (c Config) SeedsAdmin() bool {
	return c.AdminEmail != ""
}

func (c Config) Postgres() postgres.Config {
	return postgres.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

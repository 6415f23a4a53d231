// Package pgtest starts a throwaway PostgreSQL container for integration
// suites and builds aggregates with timestamps PostgreSQL stores exactly.
package pgtest

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	feedmepostgres "feedme/internal/adapters/out/postgres"
	"feedme/internal/adapters/out/storetest"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Tables lists every table of the store, children first.
const Tables = "order_tracking_updates, order_items, orders, meal_reviews, meals, users"

// Start runs postgres:15-alpine and returns a migrated connection.
func Start(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := feedmepostgres.Open(dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return container, nil, err
	}
	if err = feedmepostgres.Migrate(db); err != nil {
		return container, nil, err
	}

	return container, db, nil
}

// Truncate empties every table.
func Truncate(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE " + Tables).Error
}

// Now is truncated to microseconds, the resolution of timestamptz.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func NewMeal(t testing.TB, providerID kernel.UUID, name string, price float64) *meal.Meal {
	return storetest.NewMeal(t, providerID, name, price, Now())
}

func NewOrder(t testing.TB, customerID kernel.UUID, meals ...*meal.Meal) *order.Order {
	return storetest.NewOrder(t, customerID, Now(), meals...)
}

func NewUser(t testing.TB, email string, role user.Role) *user.User {
	return storetest.NewUser(t, email, role, Now())
}

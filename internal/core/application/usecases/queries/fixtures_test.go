package queries_test

import (
	"testing"
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

func newTestMeal(t *testing.T, providerID kernel.UUID) *meal.Meal {
	t.Helper()
	m, err := meal.NewMeal(kernel.NewUUID(), providerID, meal.Details{
		Name:        "Margherita",
		Price:       kernel.MustMoney(12),
		Category:    "Pizza",
		IsAvailable: true,
	}, time.Now())
	require.NoError(t, err)
	return m
}

func newTestOrder(t *testing.T, customerID, providerID kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), providerID, "Margherita", 1, kernel.MustMoney(12), order.Customization{})
	require.NoError(t, err)
	pricing, err := order.NewPricing(0, 0)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.LineItem{item}, "1 Main St", pricing, time.Now())
	require.NoError(t, err)
	return o
}

func newTestUser(t *testing.T, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), user.Profile{Name: "Grace Hopper", Email: "grace@example.com"},
		"$2a$10$stored", role, time.Now())
	require.NoError(t, err)
	return u
}

func actorOf(t *testing.T, id kernel.UUID, role user.Role) user.Actor {
	t.Helper()
	actor, err := user.NewActor(id, role)
	require.NoError(t, err)
	return actor
}

// Package storetest builds valid aggregates for the storage adapter suites.
package storetest

import (
	"testing"
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

func NewMeal(t testing.TB, providerID kernel.UUID, name string, price float64, at time.Time) *meal.Meal {
	t.Helper()
	m, err := meal.NewMeal(kernel.NewUUID(), providerID, meal.Details{
		Name:        name,
		Description: "House special",
		Price:       kernel.MustMoney(price),
		Category:    "Mains",
		IsAvailable: true,
		Nutrition:   meal.Nutrition{Calories: 640, Protein: 32.5, Carbs: 48, Fat: 21},
		Customization: meal.Options{
			RemovableIngredients: []string{"Onion"},
			AddOns:               []meal.AddOn{{Name: "Extra sauce", Price: kernel.MustMoney(0.5)}},
			SpiceLevels:          []string{"Mild", "Hot"},
		},
	}, at)
	require.NoError(t, err)
	return m
}

func NewOrder(t testing.TB, customerID kernel.UUID, at time.Time, meals ...*meal.Meal) *order.Order {
	t.Helper()
	items := make([]order.LineItem, 0, len(meals))
	for _, m := range meals {
		item, err := order.NewLineItem(m.ID(), m.ProviderID(), m.Name(), 2, m.Price(), order.Customization{
			AddOns:     []string{"Extra sauce"},
			SpiceLevel: "Hot",
		})
		require.NoError(t, err)
		items = append(items, item)
	}

	pricing, err := order.NewPricing(0.05, kernel.MustMoney(5))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), customerID, items, "221B Baker Street", pricing, at)
	require.NoError(t, err)
	return o
}

func NewUser(t testing.TB, email string, role user.Role, at time.Time) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), user.Profile{
		Name:    "Grace Hopper",
		Email:   email,
		Phone:   "+1 555 0100",
		Address: "1 Navy Yard",
	}, "$2a$10$stored", role, at)
	require.NoError(t, err)
	return u
}

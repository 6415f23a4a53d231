package http_test

import (
	"context"
	"testing"
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCommandHandler[C any] struct{ mock.Mock }

func (m *MockCommandHandler[C]) Handle(ctx context.Context, cmd C) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockQueryHandler[Q, R any] struct{ mock.Mock }

func (m *MockQueryHandler[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	args := m.Called(ctx, query)
	var result R
	if v := args.Get(0); v != nil {
		result = v.(R)
	}
	return result, args.Error(1)
}

type MockUserFinder struct{ mock.Mock }

func (m *MockUserFinder) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

var fixedTime = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newUser(t *testing.T, email string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), user.Profile{
		Name:    "Grace Hopper",
		Email:   email,
		Phone:   "+1 555 0100",
		Address: "1 Navy Yard",
	}, "$2a$10$stored", role, fixedTime)
	require.NoError(t, err)
	return u
}

func newMeal(t *testing.T, providerID kernel.UUID) *meal.Meal {
	t.Helper()
	m, err := meal.NewMeal(kernel.NewUUID(), providerID, meal.Details{
		Name:        "Chicken Wrap",
		Description: "Grilled chicken",
		Price:       kernel.MustMoney(9.99),
		Category:    "Lunch",
		IsAvailable: true,
		Nutrition:   meal.Nutrition{Calories: 640, Protein: 32.5, Carbs: 48, Fat: 21},
		Customization: meal.Options{
			AddOns: []meal.AddOn{{Name: "Extra sauce", Price: kernel.MustMoney(0.5)}},
		},
	}, fixedTime)
	require.NoError(t, err)
	return m
}

func newOrder(t *testing.T, customerID kernel.UUID, m *meal.Meal) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(m.ID(), m.ProviderID(), m.Name(), 2, m.Price(), order.Customization{SpiceLevel: "Hot"})
	require.NoError(t, err)
	pricing, err := order.NewPricing(0.05, kernel.MustMoney(5))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.LineItem{item}, "221B Baker Street", pricing, fixedTime)
	require.NoError(t, err)
	return o
}

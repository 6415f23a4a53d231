package commands_test

import (
	"context"
	"testing"
	"time"

	"feedme/internal/core/application/usecases/commands"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/querybuilder"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMealRepository struct{ mock.Mock }

func (m *MockMealRepository) Add(ctx context.Context, aggregate *meal.Meal) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockMealRepository) Update(ctx context.Context, aggregate *meal.Meal) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockMealRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMealRepository) Get(ctx context.Context, id kernel.UUID) (*meal.Meal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meal.Meal), args.Error(1)
}

func (m *MockMealRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*meal.Meal, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*meal.Meal), args.Error(1)
}

func (m *MockMealRepository) List(ctx context.Context, query querybuilder.Query) ([]*meal.Meal, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*meal.Meal), args.Get(1).(int64), args.Error(2)
}

func (m *MockMealRepository) AddReview(ctx context.Context, mealID kernel.UUID, review meal.Review) error {
	return m.Called(ctx, mealID, review).Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(
	ctx context.Context,
	scope ports.OrderScope,
	query querybuilder.Query,
) ([]*order.Order, int64, error) {
	args := m.Called(ctx, scope, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) GetUnpaidPlacedBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	return m.Called(ctx, aggregate).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, query querybuilder.Query) ([]*user.User, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*user.User), args.Get(1).(int64), args.Error(2)
}

// MockUoW satisfies every narrowed unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) MealRepository() ports.MealRepository {
	return m.Called().Get(0).(ports.MealRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockMealUoWFactory struct{ mock.Mock }

func (m *MockMealUoWFactory) Create() commands.MealUoW {
	return m.Called().Get(0).(commands.MealUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	return m.Called().Get(0).(commands.UserUoW)
}

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) error {
	return m.Called(hash, password).Error(0)
}

func newActor(t *testing.T, role user.Role) user.Actor {
	t.Helper()
	actor, err := user.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func newTestMeal(t *testing.T, providerID kernel.UUID) *meal.Meal {
	t.Helper()
	m, err := meal.NewMeal(kernel.NewUUID(), providerID, meal.Details{
		Name:        "Chicken Wrap",
		Description: "Grilled chicken, lettuce and garlic sauce",
		Price:       kernel.MustMoney(9.99),
		Category:    "Lunch",
		IsAvailable: true,
		Customization: meal.Options{
			AddOns:      []meal.AddOn{{Name: "Extra sauce", Price: kernel.MustMoney(0.5)}},
			SpiceLevels: []string{"Mild", "Hot"},
		},
	}, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	return m
}

func newTestOrder(t *testing.T, customerID kernel.UUID, m *meal.Meal, placedAt time.Time) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(m.ID(), m.ProviderID(), m.Name(), 2, m.Price(), order.Customization{})
	require.NoError(t, err)
	pricing, err := order.NewPricing(0.05, kernel.MustMoney(5))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.LineItem{item}, "221B Baker Street", pricing, placedAt)
	require.NoError(t, err)
	return o
}

// newPaidTestOrder returns a stored order whose payment was confirmed.
func newPaidTestOrder(t *testing.T, customerID kernel.UUID, m *meal.Meal, placedAt time.Time) *order.Order {
	t.Helper()
	o := newTestOrder(t, customerID, m, placedAt)
	require.NoError(t, o.ConfirmPayment("pi_test", placedAt))
	o.ClearPendingTrackingUpdates()
	return o
}

func newTestUser(t *testing.T, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), user.Profile{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Address: "12 Analytical Row",
	}, "$2a$10$hash", role, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	return u
}

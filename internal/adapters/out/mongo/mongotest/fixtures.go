package mongotest

import (
	"testing"

	"feedme/internal/adapters/out/storetest"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"
)

func NewMeal(t testing.TB, providerID kernel.UUID, name string, price float64) *meal.Meal {
	return storetest.NewMeal(t, providerID, name, price, Now())
}

func NewOrder(t testing.TB, customerID kernel.UUID, meals ...*meal.Meal) *order.Order {
	return storetest.NewOrder(t, customerID, Now(), meals...)
}

func NewUser(t testing.TB, email string, role user.Role) *user.User {
	return storetest.NewUser(t, email, role, Now())
}

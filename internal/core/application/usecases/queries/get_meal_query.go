package queries

import (
	"errors"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/pkg/guard"
)

var (
	ErrGetMealQueryIsNotConstructed = errors.New(
		"GetMealQuery must be created via NewGetMealQuery constructor",
	)
)

// GetMealQuery loads one meal with its reviews. Public.
type GetMealQuery struct {
	mealID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetMealQuery(mealID kernel.UUID) (GetMealQuery, error) {
	if err := mealID.Validate(); err != nil {
		return GetMealQuery{}, err
	}
	return GetMealQuery{mealID: mealID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetMealQuery) Validate() error {
	return q.guard.Validate(ErrGetMealQueryIsNotConstructed)
}

func (q GetMealQuery) MealID() kernel.UUID {
	return q.mealID
}

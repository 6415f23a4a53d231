package queries

import (
	"context"

	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/ports"
)

type GetMealQueryHandler struct {
	repo ports.MealRepository
}

func NewGetMealQueryHandler(repo ports.MealRepository) GetMealQueryHandler {
	return GetMealQueryHandler{repo: repo}
}

func (h GetMealQueryHandler) Handle(ctx context.Context, query GetMealQuery) (*meal.Meal, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	return h.repo.Get(ctx, query.MealID())
}

package queries

import (
	"context"

	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/ports"
)

type ListMealsQueryHandler struct {
	repo ports.MealRepository
}

func NewListMealsQueryHandler(repo ports.MealRepository) ListMealsQueryHandler {
	return ListMealsQueryHandler{repo: repo}
}

func (h ListMealsQueryHandler) Handle(ctx context.Context, query ListMealsQuery) (ListResult[*meal.Meal], error) {
	if err := query.Validate(); err != nil {
		return ListResult[*meal.Meal]{}, err
	}

	meals, total, err := h.repo.List(ctx, query.Query())
	if err != nil {
		return ListResult[*meal.Meal]{}, err
	}

	return newListResult(meals, total, query.Query()), nil
}

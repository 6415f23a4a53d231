package commands

import (
	"context"
	"time"

	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/user"
)

// CreateMealCommandHandler creates meals owned by the acting provider.
type CreateMealCommandHandler struct {
	uowFactory MealUoWFactory
}

func NewCreateMealCommandHandler(uowFactory MealUoWFactory) CreateMealCommandHandler {
	return CreateMealCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the meal, then persists it in a transaction.
func (h *CreateMealCommandHandler) Handle(ctx context.Context, cmd CreateMealCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireRole(cmd.Actor(), "create meal", user.RoleProvider); err != nil {
		return err
	}

	m, err := meal.NewMeal(cmd.MealID(), cmd.Actor().ID, cmd.Details(), time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.MealRepository().Add(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

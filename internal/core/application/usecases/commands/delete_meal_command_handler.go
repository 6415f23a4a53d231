package commands

import (
	"context"
)

type DeleteMealCommandHandler struct {
	uowFactory MealUoWFactory
}

func NewDeleteMealCommandHandler(uowFactory MealUoWFactory) DeleteMealCommandHandler {
	return DeleteMealCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *DeleteMealCommandHandler) Handle(ctx context.Context, cmd DeleteMealCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	mealRepo := uow.MealRepository()
	m, err := mealRepo.Get(ctx, cmd.MealID())
	if err != nil {
		return err
	}

	if err = ensureMealEditor(cmd.Actor(), m, "delete meal"); err != nil {
		return err
	}

	if err = mealRepo.Delete(ctx, m.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

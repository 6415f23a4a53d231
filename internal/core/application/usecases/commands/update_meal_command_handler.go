package commands

import (
	"context"
	"time"
)

type UpdateMealCommandHandler struct {
	uowFactory MealUoWFactory
}

func NewUpdateMealCommandHandler(uowFactory MealUoWFactory) UpdateMealCommandHandler {
	return UpdateMealCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *UpdateMealCommandHandler) Handle(ctx context.Context, cmd UpdateMealCommand) error {
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

	if err = ensureMealEditor(cmd.Actor(), m, "update meal"); err != nil {
		return err
	}

	if err = m.Update(cmd.Patch(), time.Now()); err != nil {
		return err
	}

	if err = mealRepo.Update(ctx, m); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

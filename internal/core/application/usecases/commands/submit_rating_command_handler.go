package commands

import (
	"context"
	"time"

	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/user"
)

// SubmitRatingCommandHandler records a customer's review of a meal they received.
//
// The domain check on the loaded meal rejects obvious duplicates early; the
// repository's conditional write is what keeps concurrent submissions consistent.
type SubmitRatingCommandHandler struct {
	uowFactory UoWFactory
}

func NewSubmitRatingCommandHandler(uowFactory UoWFactory) SubmitRatingCommandHandler {
	return SubmitRatingCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SubmitRatingCommandHandler) Handle(ctx context.Context, cmd SubmitRatingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireRole(cmd.Actor(), "rate meal", user.RoleCustomer); err != nil {
		return err
	}

	review, err := meal.NewReview(cmd.Actor().ID, cmd.OrderID(), cmd.Score(), cmd.Comment(), time.Now())
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

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.EnsureRateable(cmd.Actor().ID, cmd.MealID()); err != nil {
		return err
	}

	mealRepo := uow.MealRepository()
	m, err := mealRepo.Get(ctx, cmd.MealID())
	if err != nil {
		return err
	}

	if err = m.AddReview(review); err != nil {
		return err
	}

	if err = mealRepo.AddReview(ctx, m.ID(), review); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

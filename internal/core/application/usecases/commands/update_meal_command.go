package commands

import (
	"errors"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/guard"
)

var (
	ErrUpdateMealCommandIsNotConstructed = errors.New(
		"UpdateMealCommand must be created via NewUpdateMealCommand constructor",
	)
)

// UpdateMealCommand partially updates a meal. Only its provider or an admin may run it.
type UpdateMealCommand struct { //nolint:recvcheck //using for validation
	actor  user.Actor
	mealID kernel.UUID
	patch  meal.Patch

	guard guard.ConstructorGuard
}

func NewUpdateMealCommand(actor user.Actor, mealID kernel.UUID, patch meal.Patch) (UpdateMealCommand, error) {
	cmd := UpdateMealCommand{
		actor:  actor,
		mealID: mealID,
		guard:  guard.NewConstructorGuard(),
	}

	var patchErr error
	if patch.IsEmpty() {
		patchErr = errs.NewValueIsRequiredError("at least one field to update")
	}
	cmd.patch = patch

	if err := errors.Join(actor.Validate(), mealID.Validate(), patchErr); err != nil {
		return UpdateMealCommand{}, err
	}

	return cmd, nil
}

func (c UpdateMealCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMealCommandIsNotConstructed)
}

func (c UpdateMealCommand) Actor() user.Actor {
	return c.actor
}

func (c UpdateMealCommand) MealID() kernel.UUID {
	return c.mealID
}

func (c UpdateMealCommand) Patch() meal.Patch {
	return c.patch
}

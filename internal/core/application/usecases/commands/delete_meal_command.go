package commands

import (
	"errors"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/guard"
)

var (
	ErrDeleteMealCommandIsNotConstructed = errors.New(
		"DeleteMealCommand must be created via NewDeleteMealCommand constructor",
	)
)

// DeleteMealCommand removes a meal. Only its provider or an admin may run it.
type DeleteMealCommand struct {
	actor  user.Actor
	mealID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteMealCommand(actor user.Actor, mealID kernel.UUID) (DeleteMealCommand, error) {
	if err := errors.Join(actor.Validate(), mealID.Validate()); err != nil {
		return DeleteMealCommand{}, err
	}

	return DeleteMealCommand{
		actor:  actor,
		mealID: mealID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteMealCommand) Validate() error {
	return c.guard.Validate(ErrDeleteMealCommandIsNotConstructed)
}

func (c DeleteMealCommand) Actor() user.Actor {
	return c.actor
}

func (c DeleteMealCommand) MealID() kernel.UUID {
	return c.mealID
}

package commands

import (
	"errors"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/guard"
)

var (
	ErrCreateMealCommandIsNotConstructed = errors.New(
		"CreateMealCommand must be created via NewCreateMealCommand constructor",
	)
)

// CreateMealCommand adds a meal to the acting provider's catalog.
//
// Example:
//
//	cmd, err := NewCreateMealCommand(actor, kernel.NewUUID(), meal.Details{Name: "Falafel Bowl", ...})
//	if err != nil {
//	    return fmt.Errorf("invalid meal: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateMealCommand struct { //nolint:recvcheck //using for validation
	actor   user.Actor
	mealID  kernel.UUID
	details meal.Details

	guard guard.ConstructorGuard
}

func NewCreateMealCommand(actor user.Actor, mealID kernel.UUID, details meal.Details) (CreateMealCommand, error) {
	cmd := CreateMealCommand{
		actor:   actor,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		cmd.setMealID(mealID),
	); err != nil {
		return CreateMealCommand{}, err
	}

	return cmd, nil
}

func (c CreateMealCommand) Validate() error {
	return c.guard.Validate(ErrCreateMealCommandIsNotConstructed)
}

func (c CreateMealCommand) Actor() user.Actor {
	return c.actor
}

func (c CreateMealCommand) MealID() kernel.UUID {
	return c.mealID
}

func (c CreateMealCommand) Details() meal.Details {
	return c.details
}

func (c *CreateMealCommand) setMealID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.mealID = id
	return nil
}

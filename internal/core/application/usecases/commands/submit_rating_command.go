package commands

import (
	"errors"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/guard"
)

var (
	ErrSubmitRatingCommandIsNotConstructed = errors.New(
		"SubmitRatingCommand must be created via NewSubmitRatingCommand constructor",
	)
)

// SubmitRatingCommand rates a meal from a delivered order. The score range is
// checked when the review is built.
type SubmitRatingCommand struct {
	actor   user.Actor
	mealID  kernel.UUID
	orderID kernel.UUID
	score   int
	comment string

	guard guard.ConstructorGuard
}

func NewSubmitRatingCommand(
	actor user.Actor,
	mealID kernel.UUID,
	orderID kernel.UUID,
	score int,
	comment string,
) (SubmitRatingCommand, error) {
	if err := errors.Join(actor.Validate(), mealID.Validate(), orderID.Validate()); err != nil {
		return SubmitRatingCommand{}, err
	}

	return SubmitRatingCommand{
		actor:   actor,
		mealID:  mealID,
		orderID: orderID,
		score:   score,
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitRatingCommandIsNotConstructed)
}

func (c SubmitRatingCommand) Actor() user.Actor {
	return c.actor
}

func (c SubmitRatingCommand) MealID() kernel.UUID {
	return c.mealID
}

func (c SubmitRatingCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SubmitRatingCommand) Score() int {
	return c.score
}

func (c SubmitRatingCommand) Comment() string {
	return c.comment
}

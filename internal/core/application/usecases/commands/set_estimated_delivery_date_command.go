package commands

import (
	"errors"
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/guard"
)

var (
	ErrSetEstimatedDeliveryDateCommandIsNotConstructed = errors.New(
		"SetEstimatedDeliveryDateCommand must be created via NewSetEstimatedDeliveryDateCommand constructor",
	)
)

type SetEstimatedDeliveryDateCommand struct {
	actor   user.Actor
	orderID kernel.UUID
	date    time.Time

	guard guard.ConstructorGuard
}

func NewSetEstimatedDeliveryDateCommand(
	actor user.Actor,
	orderID kernel.UUID,
	date time.Time,
) (SetEstimatedDeliveryDateCommand, error) {
	var dateErr error
	if date.IsZero() {
		dateErr = errs.NewValueIsRequiredError("estimatedDeliveryDate")
	}

	if err := errors.Join(actor.Validate(), orderID.Validate(), dateErr); err != nil {
		return SetEstimatedDeliveryDateCommand{}, err
	}

	return SetEstimatedDeliveryDateCommand{
		actor:   actor,
		orderID: orderID,
		date:    date,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetEstimatedDeliveryDateCommand) Validate() error {
	return c.guard.Validate(ErrSetEstimatedDeliveryDateCommandIsNotConstructed)
}

func (c SetEstimatedDeliveryDateCommand) Actor() user.Actor {
	return c.actor
}

func (c SetEstimatedDeliveryDateCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SetEstimatedDeliveryDateCommand) Date() time.Time {
	return c.date
}

package commands

import (
	"errors"
	"strings"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/guard"
)

var (
	ErrAssignTrackingNumberCommandIsNotConstructed = errors.New(
		"AssignTrackingNumberCommand must be created via NewAssignTrackingNumberCommand constructor",
	)
)

const maxTrackingNumberLength = 64

type AssignTrackingNumberCommand struct {
	actor          user.Actor
	orderID        kernel.UUID
	trackingNumber string

	guard guard.ConstructorGuard
}

func NewAssignTrackingNumberCommand(
	actor user.Actor,
	orderID kernel.UUID,
	trackingNumber string,
) (AssignTrackingNumberCommand, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)

	var numberErr error
	switch {
	case trackingNumber == "":
		numberErr = errs.NewValueIsRequiredError("trackingNumber")
	case len(trackingNumber) > maxTrackingNumberLength:
		numberErr = errs.NewValueIsOutOfRangeError("trackingNumber", len(trackingNumber), 1, maxTrackingNumberLength)
	}

	if err := errors.Join(actor.Validate(), orderID.Validate(), numberErr); err != nil {
		return AssignTrackingNumberCommand{}, err
	}

	return AssignTrackingNumberCommand{
		actor:          actor,
		orderID:        orderID,
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c AssignTrackingNumberCommand) Validate() error {
	return c.guard.Validate(ErrAssignTrackingNumberCommandIsNotConstructed)
}

func (c AssignTrackingNumberCommand) Actor() user.Actor {
	return c.actor
}

func (c AssignTrackingNumberCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignTrackingNumberCommand) TrackingNumber() string {
	return c.trackingNumber
}

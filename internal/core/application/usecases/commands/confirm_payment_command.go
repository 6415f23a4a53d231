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
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
)

// ConfirmPaymentCommand records the payment of a Processing order.
type ConfirmPaymentCommand struct {
	actor     user.Actor
	orderID   kernel.UUID
	reference string

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(actor user.Actor, orderID kernel.UUID, reference string) (ConfirmPaymentCommand, error) {
	reference = strings.TrimSpace(reference)

	var referenceErr error
	if reference == "" {
		referenceErr = errs.NewValueIsRequiredError("paymentReference")
	}

	if err := errors.Join(actor.Validate(), orderID.Validate(), referenceErr); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		actor:     actor,
		orderID:   orderID,
		reference: reference,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) Actor() user.Actor {
	return c.actor
}

func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmPaymentCommand) Reference() string {
	return c.reference
}

package commands

import (
	"errors"
	"strings"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/domain/services"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCartIsEmpty = errs.NewValueIsRequiredError("items")
)

// CreateOrderCommand represents a customer's checkout.
// An empty delivery address falls back to the address on the customer's profile.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, kernel.NewUUID(), []services.CartLine{
//	    {MealID: wrapID, Quantity: 2},
//	}, "221B Baker Street")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor           user.Actor
	orderID         kernel.UUID
	lines           []services.CartLine
	deliveryAddress string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	actor user.Actor,
	orderID kernel.UUID,
	lines []services.CartLine,
	deliveryAddress string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		actor:           actor,
		deliveryAddress: strings.TrimSpace(deliveryAddress),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		orderCommand.setOrderID(orderID),
		orderCommand.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() user.Actor {
	return c.actor
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Lines returns a copy of the cart.
func (c CreateOrderCommand) Lines() []services.CartLine {
	return append([]services.CartLine(nil), c.lines...)
}

// MealIDs returns the distinct meals of the cart.
func (c CreateOrderCommand) MealIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(c.lines))
	ids := make([]kernel.UUID, 0, len(c.lines))
	for _, line := range c.lines {
		if _, ok := seen[line.MealID]; ok {
			continue
		}
		seen[line.MealID] = struct{}{}
		ids = append(ids, line.MealID)
	}
	return ids
}

func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []services.CartLine) error {
	if len(lines) == 0 {
		return ErrCartIsEmpty
	}
	for _, line := range lines {
		if err := line.MealID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("mealId", err)
		}
	}

	c.lines = append([]services.CartLine(nil), lines...)
	return nil
}

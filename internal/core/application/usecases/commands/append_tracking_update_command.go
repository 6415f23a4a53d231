package commands

import (
	"errors"
	"strings"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/guard"
)

var (
	ErrAppendTrackingUpdateCommandIsNotConstructed = errors.New(
		"AppendTrackingUpdateCommand must be created via NewAppendTrackingUpdateCommand constructor",
	)
)

// AppendTrackingUpdateCommand adds a message to an order's tracking log.
type AppendTrackingUpdateCommand struct {
	actor   user.Actor
	orderID kernel.UUID
	stage   order.Stage
	message string

	guard guard.ConstructorGuard
}

func NewAppendTrackingUpdateCommand(
	actor user.Actor,
	orderID kernel.UUID,
	stage order.Stage,
	message string,
) (AppendTrackingUpdateCommand, error) {
	message = strings.TrimSpace(message)

	var messageErr error
	if message == "" {
		messageErr = errs.NewValueIsRequiredError("message")
	}

	if err := errors.Join(actor.Validate(), orderID.Validate(), stage.Validate(), messageErr); err != nil {
		return AppendTrackingUpdateCommand{}, err
	}

	return AppendTrackingUpdateCommand{
		actor:   actor,
		orderID: orderID,
		stage:   stage,
		message: message,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AppendTrackingUpdateCommand) Validate() error {
	return c.guard.Validate(ErrAppendTrackingUpdateCommandIsNotConstructed)
}

func (c AppendTrackingUpdateCommand) Actor() user.Actor {
	return c.actor
}

func (c AppendTrackingUpdateCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AppendTrackingUpdateCommand) Stage() order.Stage {
	return c.stage
}

func (c AppendTrackingUpdateCommand) Message() string {
	return c.message
}

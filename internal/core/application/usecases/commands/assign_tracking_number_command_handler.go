package commands

import (
	"context"
	"time"

	"feedme/internal/core/domain/model/order"
)

// AssignTrackingNumberCommandHandler sets the one-time tracking number. A number
// already used by another order surfaces as a conflict from the repository.
type AssignTrackingNumberCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAssignTrackingNumberCommandHandler(uowFactory OrderUoWFactory) AssignTrackingNumberCommandHandler {
	return AssignTrackingNumberCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *AssignTrackingNumberCommandHandler) Handle(ctx context.Context, cmd AssignTrackingNumberCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(),
		func(o *order.Order) error {
			return ensureOrderFulfiller(cmd.Actor(), o, "assign tracking number")
		},
		func(o *order.Order) error {
			return o.AssignTrackingNumber(cmd.TrackingNumber(), time.Now())
		},
	)
}

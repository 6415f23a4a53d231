package commands

import (
	"context"
	"time"

	"feedme/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels an order for its customer or an admin.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(),
		func(o *order.Order) error {
			return ensureOrderCustomer(cmd.Actor(), o, "cancel order")
		},
		func(o *order.Order) error {
			return o.Cancel(time.Now())
		},
	)
}

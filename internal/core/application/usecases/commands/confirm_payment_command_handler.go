package commands

import (
	"context"
	"time"

	"feedme/internal/core/domain/model/order"
)

// ConfirmPaymentCommandHandler moves an order from Processing to Paid.
// Only the customer who placed it or an admin may confirm.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewConfirmPaymentCommandHandler(uowFactory OrderUoWFactory) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(),
		func(o *order.Order) error {
			return ensureOrderCustomer(cmd.Actor(), o, "confirm payment")
		},
		func(o *order.Order) error {
			return o.ConfirmPayment(cmd.Reference(), time.Now())
		},
	)
}

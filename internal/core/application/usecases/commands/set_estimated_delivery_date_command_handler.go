package commands

import (
	"context"
	"time"

	"feedme/internal/core/domain/model/order"
)

type SetEstimatedDeliveryDateCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSetEstimatedDeliveryDateCommandHandler(uowFactory OrderUoWFactory) SetEstimatedDeliveryDateCommandHandler {
	return SetEstimatedDeliveryDateCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SetEstimatedDeliveryDateCommandHandler) Handle(ctx context.Context, cmd SetEstimatedDeliveryDateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(),
		func(o *order.Order) error {
			return ensureOrderFulfiller(cmd.Actor(), o, "set estimated delivery date")
		},
		func(o *order.Order) error {
			return o.SetEstimatedDeliveryDate(cmd.Date(), time.Now())
		},
	)
}

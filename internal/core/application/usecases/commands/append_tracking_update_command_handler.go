package commands

import (
	"context"
	"time"

	"feedme/internal/core/domain/model/order"
)

// AppendTrackingUpdateCommandHandler records tracking progress on behalf of a
// provider of the order or an admin.
type AppendTrackingUpdateCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAppendTrackingUpdateCommandHandler(uowFactory OrderUoWFactory) AppendTrackingUpdateCommandHandler {
	return AppendTrackingUpdateCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *AppendTrackingUpdateCommandHandler) Handle(ctx context.Context, cmd AppendTrackingUpdateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(),
		func(o *order.Order) error {
			return ensureOrderFulfiller(cmd.Actor(), o, "update tracking")
		},
		func(o *order.Order) error {
			return o.AppendTrackingUpdate(cmd.Stage(), cmd.Message(), time.Now())
		},
	)
}

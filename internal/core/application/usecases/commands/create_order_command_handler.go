package commands

import (
	"context"
	"time"

	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/domain/services"
)

// CreateOrderCommandHandler places orders. Line items are priced from the
// catalog at checkout; totals follow the configured pricing.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, services.NewCheckoutPricer(), pricing)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	pricer     services.CheckoutPricer
	pricing    order.Pricing
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	pricer services.CheckoutPricer,
	pricing order.Pricing,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
		pricing:    pricing,
	}
}

// Handle prices the cart, creates the order in Processing status and persists it in one transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireRole(cmd.Actor(), "place order", user.RoleCustomer); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	meals, err := uow.MealRepository().GetMany(ctx, cmd.MealIDs())
	if err != nil {
		return err
	}

	items, err := h.pricer.Price(cmd.Lines(), meals)
	if err != nil {
		return err
	}

	address := cmd.DeliveryAddress()
	if address == "" {
		customer, customerErr := uow.UserRepository().Get(ctx, cmd.Actor().ID)
		if customerErr != nil {
			return customerErr
		}
		address = customer.Address()
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Actor().ID, items, address, h.pricing, time.Now())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

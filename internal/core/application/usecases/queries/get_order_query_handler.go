package queries

import (
	"context"
	"errors"

	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/errs"
)

// GetOrderQueryHandler returns an order to its customer, to providers of one of
// its line items and to admins.
type GetOrderQueryHandler struct {
	repo ports.OrderRepository
}

func NewGetOrderQueryHandler(repo ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{repo: repo}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.repo.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if !canView(query.Actor(), o) {
		return nil, errs.NewAuthorizationErrorWithCause("view order", errors.New("order is outside your scope"))
	}
	return o, nil
}

func canView(actor user.Actor, o *order.Order) bool {
	switch actor.Role {
	case user.RoleAdmin:
		return true
	case user.RoleCustomer:
		return actor.Is(o.CustomerID())
	case user.RoleProvider:
		return o.HasProvider(actor.ID)
	default:
		return false
	}
}

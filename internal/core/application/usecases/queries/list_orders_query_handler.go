package queries

import (
	"context"

	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/ports"
)

type ListOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewListOrdersQueryHandler(repo ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{repo: repo}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListResult[*order.Order], error) {
	if err := query.Validate(); err != nil {
		return ListResult[*order.Order]{}, err
	}

	orders, total, err := h.repo.List(ctx, query.Scope(), query.Query())
	if err != nil {
		return ListResult[*order.Order]{}, err
	}

	return newListResult(orders, total, query.Query()), nil
}

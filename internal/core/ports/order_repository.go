package ports

import (
	"context"
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/pkg/querybuilder"
)

// OrderSchema declares the order fields list queries may filter and sort on.
var OrderSchema = querybuilder.NewSchema(map[string]querybuilder.Kind{
	"status":         querybuilder.KindString,
	"trackingNumber": querybuilder.KindString,
	"customerId":     querybuilder.KindID,
	"totalPrice":     querybuilder.KindNumber,
	"createdAt":      querybuilder.KindTime,
}, "totalPrice", "status", "createdAt")

// OrderSearchFields are matched by searchTerm.
var OrderSearchFields = []string{"trackingNumber", "deliveryAddress"}

// OrderScope narrows list queries to what an actor may see. The zero value sees everything.
type OrderScope struct {
	CustomerID *kernel.UUID
	ProviderID *kernel.UUID
}

type OrderRepository interface {
	// Add persists a new order with its line items and tracking log.
	// A tracking number already used by another order is a ConflictError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists scalar fields last-write-wins and appends the order's
	// pending tracking updates without rewriting earlier ones.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete physically removes an order.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get returns the complete order, or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List runs a list query within scope and returns one page with the total number of matches.
	List(ctx context.Context, scope OrderScope, query querybuilder.Query) ([]*order.Order, int64, error)

	// GetUnpaidPlacedBefore returns up to limit orders still in Processing that were placed before cutoff, oldest first.
	GetUnpaidPlacedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error)
}

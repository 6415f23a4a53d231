package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/ports"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/querybuilder"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and tracking log.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translateWriteError(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites the scalar columns and inserts the pending tracking updates.
// Items and earlier tracking rows are never rewritten. The row is only written
// while its status still equals the order's stored status.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, aggregate.StoredStatus().String()).
		Updates(map[string]any{
		"status":                  dto.Status,
		"payment_reference":       dto.PaymentReference,
		"tracking_number":         dto.TrackingNumber,
		"estimated_delivery_date": dto.EstimatedDeliveryDate,
		"updated_at":              dto.UpdatedAt,
	})
	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return missingOrStale(db, aggregate)
	}

	if pending := trackingFromDomain(aggregate.ID(), aggregate.PendingTrackingUpdates()); len(pending) > 0 {
		if err := db.Create(&pending).Error; err != nil {
			return fmt.Errorf("append tracking updates: %w", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func missingOrStale(db *gorm.DB, aggregate *order.Order) error {
	var statuses []string
	if err := db.Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Bytes()).Pluck("status", &statuses).Error; err != nil {
		return err
	}
	if len(statuses) == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewConflictErrorWithCause("status", fmt.Errorf(
		"order %s is %s, expected %s", aggregate.ID(), statuses[0], aggregate.StoredStatus(),
	))
}

// Delete removes an order with its items and tracking log.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.complete(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// List runs a list query over the orders visible within scope.
func (r *GormOrderRepository) List(
	ctx context.Context,
	scope ports.OrderScope,
	query querybuilder.Query,
) ([]*order.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Scopes(scoped(scope), orderTable.Filter(query)).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	var dtos []OrderDTO
	if err := r.complete(ctx).
		Scopes(scoped(scope), orderTable.Filter(query), orderTable.Paginate(query)).
		Find(&dtos).Error; err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	orders, err := toDomainAll(dtos)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetUnpaidPlacedBefore retrieves and locks the oldest orders still awaiting
// payment. Rows locked by another transaction are skipped.
func (r *GormOrderRepository) GetUnpaidPlacedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.complete(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND created_at < ?", order.Processing.String(), cutoff.UTC()).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func (r *GormOrderRepository) complete(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("TrackingUpdates", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		})
}

func scoped(scope ports.OrderScope) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if scope.CustomerID != nil {
			db = db.Where("customer_id = ?", scope.CustomerID.Bytes())
		}
		if scope.ProviderID != nil {
			db = db.Where("? = ANY(provider_ids)", scope.ProviderID.String())
		}
		return db
	}
}

func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause("trackingNumber", err)
	}
	return err
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

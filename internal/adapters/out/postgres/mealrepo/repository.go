package mealrepo

import (
	"context"
	"errors"
	"fmt"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/pkg/errs"
	"feedme/internal/pkg/querybuilder"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMealRepository implements ports.MealRepository using GORM.
type GormMealRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMealRepository creates a new GORM meal repository.
func NewGormMealRepository(db *gorm.DB, tracker aggregateTracker) *GormMealRepository {
	return &GormMealRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new meal to the database.
func (r *GormMealRepository) Add(ctx context.Context, aggregate *meal.Meal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("meal", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the editable fields and bumps the stored revision.
func (r *GormMealRepository) Update(ctx context.Context, aggregate *meal.Meal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MealDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":          dto.Name,
		"description":   dto.Description,
		"price_cents":   dto.PriceCents,
		"category":      dto.Category,
		"image_url":     dto.ImageURL,
		"is_available":  dto.IsAvailable,
		"nutrition":     dto.Nutrition,
		"customization": dto.Customization,
		"updated_at":    dto.UpdatedAt,
		"version":       gorm.Expr("version + 1"),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("meal", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes a meal; its reviews go with it.
func (r *GormMealRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&MealDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("meal", id.String())
	}
	return nil
}

// Get retrieves a meal with its reviews by ID.
func (r *GormMealRepository) Get(ctx context.Context, id kernel.UUID) (*meal.Meal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MealDTO
	if err := r.withReviews(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("meal", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany retrieves the existing meals among ids.
func (r *GormMealRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*meal.Meal, error) {
	if len(ids) == 0 {
		return []*meal.Meal{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []MealDTO
	if err := r.withReviews(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainAll(dtos)
}

// List runs a list query over meals.
func (r *GormMealRepository) List(ctx context.Context, query querybuilder.Query) ([]*meal.Meal, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&MealDTO{}).Scopes(mealTable.Filter(query)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count meals: %w", err)
	}

	var dtos []MealDTO
	if err := r.withReviews(ctx).
		Scopes(mealTable.Filter(query), mealTable.Paginate(query)).
		Find(&dtos).Error; err != nil {
		return nil, 0, fmt.Errorf("list meals: %w", err)
	}

	meals, err := toDomainAll(dtos)
	if err != nil {
		return nil, 0, err
	}
	return meals, total, nil
}

// AddReview locks the meal row by folding the score into the stored rating and
// then inserts the review. Both writes share a savepoint, so a duplicate review
// leaves the rating untouched. Concurrent reviews of one meal queue on the row lock.
func (r *GormMealRepository) AddReview(ctx context.Context, mealID kernel.UUID, review meal.Review) error {
	if err := mealID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&MealDTO{}).Where("id = ?", mealID.Bytes()).Updates(map[string]any{
			"rating_sum":     gorm.Expr("rating_sum + ?", review.Score()),
			"rating_count":   gorm.Expr("rating_count + 1"),
			"rating_average": gorm.Expr("CAST(rating_sum + ? AS DOUBLE PRECISION) / (rating_count + 1)", review.Score()),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("meal", mealID.String())
		}

		dto := reviewFromDomain(mealID, review)
		if err := tx.Create(&dto).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.NewConflictErrorWithCause(
					"review",
					fmt.Errorf("order %s already reviewed meal %s", review.OrderID(), mealID),
				)
			}
			return err
		}
		return nil
	})
}

func (r *GormMealRepository) withReviews(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at, id")
	})
}

func toDomainAll(dtos []MealDTO) ([]*meal.Meal, error) {
	meals := make([]*meal.Meal, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		meals = append(meals, m)
	}
	return meals, nil
}

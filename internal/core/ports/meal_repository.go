package ports

import (
	"context"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/pkg/querybuilder"
)

// MealSchema declares the meal fields list queries may filter and sort on.
var MealSchema = querybuilder.NewSchema(map[string]querybuilder.Kind{
	"name":        querybuilder.KindString,
	"category":    querybuilder.KindString,
	"isAvailable": querybuilder.KindBool,
	"providerId":  querybuilder.KindID,
	"price":       querybuilder.KindNumber,
	"rating":      querybuilder.KindNumber,
	"createdAt":   querybuilder.KindTime,
}, "price", "name", "rating", "createdAt")

// MealSearchFields are matched by searchTerm.
var MealSearchFields = []string{"name", "description"}

type MealRepository interface {
	// Add persists a new meal.
	Add(ctx context.Context, aggregate *meal.Meal) error

	// Update persists the editable fields of an existing meal and bumps its revision.
	// Reviews and rating are only changed through AddReview.
	Update(ctx context.Context, aggregate *meal.Meal) error

	// Delete removes a meal with its reviews.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get returns the meal with its reviews, or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*meal.Meal, error)

	// GetMany returns the meals among ids that exist, in no particular order.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*meal.Meal, error)

	// List runs a list query and returns one page together with the total number of matches.
	List(ctx context.Context, query querybuilder.Query) ([]*meal.Meal, int64, error)

	// AddReview appends the review and folds its score into the stored rating in a
	// single atomic write. A second review for the same order is a ConflictError,
	// a missing meal an ObjectNotFoundError. Concurrent calls never lose a score.
	AddReview(ctx context.Context, mealID kernel.UUID, review meal.Review) error
}

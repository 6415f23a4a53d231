// Package mealrepo stores meals as MongoDB documents with their reviews embedded.
package mealrepo

import (
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
)

// CollectionName is the collection holding meal documents.
const CollectionName = "meals"

type MealDocument struct {
	ID            string                `bson:"_id"`
	ProviderID    string                `bson:"providerId"`
	Name          string                `bson:"name"`
	Description   string                `bson:"description"`
	PriceCents    int64                 `bson:"priceCents"`
	Category      string                `bson:"category"`
	ImageURL      string                `bson:"imageUrl,omitempty"`
	IsAvailable   bool                  `bson:"isAvailable"`
	Nutrition     NutritionDocument     `bson:"nutritionalInfo"`
	Customization CustomizationDocument `bson:"customization"`
	RatingSum     int                   `bson:"ratingSum"`
	RatingCount   int                   `bson:"ratingCount"`
	RatingAverage float64               `bson:"rating"`
	Reviews       []ReviewDocument      `bson:"reviews"`
	Version       int                   `bson:"__v"`
	CreatedAt     time.Time             `bson:"createdAt"`
	UpdatedAt     time.Time             `bson:"updatedAt"`
}

type NutritionDocument struct {
	Calories int     `bson:"calories"`
	Protein  float64 `bson:"protein"`
	Carbs    float64 `bson:"carbs"`
	Fat      float64 `bson:"fat"`
}

type AddOnDocument struct {
	Name       string `bson:"name"`
	PriceCents int64  `bson:"priceCents"`
}

type CustomizationDocument struct {
	RemovableIngredients []string        `bson:"removableIngredients"`
	AddOns               []AddOnDocument `bson:"addOns"`
	SpiceLevels          []string        `bson:"spiceLevels"`
}

type ReviewDocument struct {
	UserID    string    `bson:"userId"`
	OrderID   string    `bson:"orderId"`
	Score     int       `bson:"rating"`
	Comment   string    `bson:"comment"`
	CreatedAt time.Time `bson:"createdAt"`
}

func fromDomain(m *meal.Meal) MealDocument {
	customization := m.Customization()
	addOns := make([]AddOnDocument, 0, len(customization.AddOns))
	for _, addOn := range customization.AddOns {
		addOns = append(addOns, AddOnDocument{Name: addOn.Name, PriceCents: addOn.Price.Cents()})
	}

	reviews := make([]ReviewDocument, 0, len(m.Reviews()))
	for _, review := range m.Reviews() {
		reviews = append(reviews, reviewFromDomain(review))
	}

	nutrition := m.Nutrition()
	return MealDocument{
		ID:          m.ID().String(),
		ProviderID:  m.ProviderID().String(),
		Name:        m.Name(),
		Description: m.Description(),
		PriceCents:  m.Price().Cents(),
		Category:    m.Category(),
		ImageURL:    m.ImageURL(),
		IsAvailable: m.IsAvailable(),
		Nutrition: NutritionDocument{
			Calories: nutrition.Calories,
			Protein:  nutrition.Protein,
			Carbs:    nutrition.Carbs,
			Fat:      nutrition.Fat,
		},
		Customization: CustomizationDocument{
			RemovableIngredients: nonNil(customization.RemovableIngredients),
			AddOns:               addOns,
			SpiceLevels:          nonNil(customization.SpiceLevels),
		},
		RatingSum:     m.Rating().Sum(),
		RatingCount:   m.Rating().Count(),
		RatingAverage: m.Rating().Average(),
		Reviews:       reviews,
		Version:       m.Revision(),
		CreatedAt:     m.CreatedAt(),
		UpdatedAt:     m.UpdatedAt(),
	}
}

func reviewFromDomain(review meal.Review) ReviewDocument {
	return ReviewDocument{
		UserID:    review.UserID().String(),
		OrderID:   review.OrderID().String(),
		Score:     review.Score(),
		Comment:   review.Comment(),
		CreatedAt: review.CreatedAt(),
	}
}

func toDomain(doc MealDocument) (*meal.Meal, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, err
	}
	providerID, err := kernel.UUIDFromString(doc.ProviderID)
	if err != nil {
		return nil, err
	}

	reviews := make([]meal.Review, 0, len(doc.Reviews))
	for _, r := range doc.Reviews {
		review, reviewErr := reviewToDomain(r)
		if reviewErr != nil {
			return nil, reviewErr
		}
		reviews = append(reviews, review)
	}

	addOns := make([]meal.AddOn, 0, len(doc.Customization.AddOns))
	for _, addOn := range doc.Customization.AddOns {
		addOns = append(addOns, meal.AddOn{Name: addOn.Name, Price: kernel.Money(addOn.PriceCents)})
	}

	return meal.RestoreMeal(meal.Snapshot{
		ID:         id,
		ProviderID: providerID,
		Details: meal.Details{
			Name:        doc.Name,
			Description: doc.Description,
			Price:       kernel.Money(doc.PriceCents),
			Category:    doc.Category,
			ImageURL:    doc.ImageURL,
			IsAvailable: doc.IsAvailable,
			Nutrition: meal.Nutrition{
				Calories: doc.Nutrition.Calories,
				Protein:  doc.Nutrition.Protein,
				Carbs:    doc.Nutrition.Carbs,
				Fat:      doc.Nutrition.Fat,
			},
			Customization: meal.Options{
				RemovableIngredients: doc.Customization.RemovableIngredients,
				AddOns:               addOns,
				SpiceLevels:          doc.Customization.SpiceLevels,
			},
		},
		RatingSum:   doc.RatingSum,
		RatingCount: doc.RatingCount,
		Reviews:     reviews,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
		Revision:    doc.Version,
	})
}

func reviewToDomain(doc ReviewDocument) (meal.Review, error) {
	userID, err := kernel.UUIDFromString(doc.UserID)
	if err != nil {
		return meal.Review{}, err
	}
	orderID, err := kernel.UUIDFromString(doc.OrderID)
	if err != nil {
		return meal.Review{}, err
	}
	return meal.NewReview(userID, orderID, doc.Score, doc.Comment, doc.CreatedAt)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

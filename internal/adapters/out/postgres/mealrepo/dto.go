// Package mealrepo persists meal aggregates with GORM.
//
// A meal is one row in "meals" with its nutrition and customization options in
// JSON columns; reviews live in "meal_reviews", unique per (meal, order). The
// rating sum, count and average are denormalized on the meal row and only
// change through AddReview.
package mealrepo

import (
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MealDTO is the "meals" row.
type MealDTO struct {
	ID            uuid.UUID                            `gorm:"type:uuid;primaryKey"`
	ProviderID    uuid.UUID                            `gorm:"type:uuid;not null;index"`
	Name          string                               `gorm:"type:varchar(120);not null"`
	Description   string                               `gorm:"type:text"`
	PriceCents    int64                                `gorm:"not null"`
	Category      string                               `gorm:"type:varchar(120);not null;index"`
	ImageURL      string                               `gorm:"type:text"`
	IsAvailable   bool                                 `gorm:"not null"`
	Nutrition     datatypes.JSONType[NutritionDTO]     `gorm:"not null"`
	Customization datatypes.JSONType[CustomizationDTO] `gorm:"not null"`
	RatingSum     int                                  `gorm:"not null"`
	RatingCount   int                                  `gorm:"not null"`
	RatingAverage float64                              `gorm:"not null;index"`
	Version       int                                  `gorm:"not null"`
	CreatedAt     time.Time                            `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt     time.Time                            `gorm:"not null;autoUpdateTime:false"`
	Reviews       []ReviewDTO                          `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE"`
}

func (MealDTO) TableName() string {
	return "meals"
}

// ReviewDTO is one "meal_reviews" row.
type ReviewDTO struct {
	ID        uint      `gorm:"primaryKey"`
	MealID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_meal_reviews_meal_order"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_meal_reviews_meal_order"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Score     int       `gorm:"type:smallint;not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (ReviewDTO) TableName() string {
	return "meal_reviews"
}

type NutritionDTO struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type AddOnDTO struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
}

type CustomizationDTO struct {
	RemovableIngredients []string   `json:"removableIngredients"`
	AddOns               []AddOnDTO `json:"addOns"`
	SpiceLevels          []string   `json:"spiceLevels"`
}

func fromDomain(m *meal.Meal) MealDTO {
	customization := m.Customization()
	addOns := make([]AddOnDTO, 0, len(customization.AddOns))
	for _, addOn := range customization.AddOns {
		addOns = append(addOns, AddOnDTO{Name: addOn.Name, PriceCents: addOn.Price.Cents()})
	}

	reviews := make([]ReviewDTO, 0, len(m.Reviews()))
	for _, review := range m.Reviews() {
		reviews = append(reviews, reviewFromDomain(m.ID(), review))
	}

	nutrition := m.Nutrition()
	return MealDTO{
		ID:          m.ID().Bytes(),
		ProviderID:  m.ProviderID().Bytes(),
		Name:        m.Name(),
		Description: m.Description(),
		PriceCents:  m.Price().Cents(),
		Category:    m.Category(),
		ImageURL:    m.ImageURL(),
		IsAvailable: m.IsAvailable(),
		Nutrition: datatypes.NewJSONType(NutritionDTO{
			Calories: nutrition.Calories,
			Protein:  nutrition.Protein,
			Carbs:    nutrition.Carbs,
			Fat:      nutrition.Fat,
		}),
		Customization: datatypes.NewJSONType(CustomizationDTO{
			RemovableIngredients: customization.RemovableIngredients,
			AddOns:               addOns,
			SpiceLevels:          customization.SpiceLevels,
		}),
		RatingSum:     m.Rating().Sum(),
		RatingCount:   m.Rating().Count(),
		RatingAverage: m.Rating().Average(),
		Version:       m.Revision(),
		CreatedAt:     m.CreatedAt(),
		UpdatedAt:     m.UpdatedAt(),
		Reviews:       reviews,
	}
}

func reviewFromDomain(mealID kernel.UUID, review meal.Review) ReviewDTO {
	return ReviewDTO{
		MealID:    mealID.Bytes(),
		OrderID:   review.OrderID().Bytes(),
		UserID:    review.UserID().Bytes(),
		Score:     review.Score(),
		Comment:   review.Comment(),
		CreatedAt: review.CreatedAt(),
	}
}

func toDomain(dto MealDTO) (*meal.Meal, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	providerID, err := kernel.UUIDFromBytes(dto.ProviderID[:])
	if err != nil {
		return nil, err
	}

	reviews := make([]meal.Review, 0, len(dto.Reviews))
	for _, r := range dto.Reviews {
		review, reviewErr := reviewToDomain(r)
		if reviewErr != nil {
			return nil, reviewErr
		}
		reviews = append(reviews, review)
	}

	nutrition := dto.Nutrition.Data()
	customization := dto.Customization.Data()
	addOns := make([]meal.AddOn, 0, len(customization.AddOns))
	for _, addOn := range customization.AddOns {
		addOns = append(addOns, meal.AddOn{Name: addOn.Name, Price: kernel.Money(addOn.PriceCents)})
	}

	return meal.RestoreMeal(meal.Snapshot{
		ID:         id,
		ProviderID: providerID,
		Details: meal.Details{
			Name:        dto.Name,
			Description: dto.Description,
			Price:       kernel.Money(dto.PriceCents),
			Category:    dto.Category,
			ImageURL:    dto.ImageURL,
			IsAvailable: dto.IsAvailable,
			Nutrition: meal.Nutrition{
				Calories: nutrition.Calories,
				Protein:  nutrition.Protein,
				Carbs:    nutrition.Carbs,
				Fat:      nutrition.Fat,
			},
			Customization: meal.Options{
				RemovableIngredients: customization.RemovableIngredients,
				AddOns:               addOns,
				SpiceLevels:          customization.SpiceLevels,
			},
		},
		RatingSum:   dto.RatingSum,
		RatingCount: dto.RatingCount,
		Reviews:     reviews,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		Revision:    dto.Version,
	})
}

func reviewToDomain(dto ReviewDTO) (meal.Review, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return meal.Review{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return meal.Review{}, err
	}
	return meal.NewReview(userID, orderID, dto.Score, dto.Comment, dto.CreatedAt)
}

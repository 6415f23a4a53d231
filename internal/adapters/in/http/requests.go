package http

import (
	"time"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/services"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

type registerRequest struct {
	Name     string              `json:"name"`
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
	Phone    string              `json:"phone"`
	Address  string              `json:"address"`
	Role     string              `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type nutritionRequest struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (r nutritionRequest) toDomain() meal.Nutrition {
	return meal.Nutrition{Calories: r.Calories, Protein: r.Protein, Carbs: r.Carbs, Fat: r.Fat}
}

type addOnRequest struct {
	Name  string       `json:"name"`
	Price kernel.Money `json:"price"`
}

type mealCustomizationRequest struct {
	RemovableIngredients []string       `json:"removableIngredients"`
	AddOns               []addOnRequest `json:"addOns"`
	SpiceLevels          []string       `json:"spiceLevels"`
}

func (r mealCustomizationRequest) toDomain() meal.Options {
	addOns := make([]meal.AddOn, 0, len(r.AddOns))
	for _, addOn := range r.AddOns {
		addOns = append(addOns, meal.AddOn{Name: addOn.Name, Price: addOn.Price})
	}
	return meal.Options{
		RemovableIngredients: r.RemovableIngredients,
		AddOns:               addOns,
		SpiceLevels:          r.SpiceLevels,
	}
}

type createMealRequest struct {
	Name          string                   `json:"name"`
	Description   string                   `json:"description"`
	Price         kernel.Money             `json:"price"`
	Category      string                   `json:"category"`
	ImageURL      string                   `json:"imageUrl"`
	IsAvailable   *bool                    `json:"isAvailable"`
	Nutrition     nutritionRequest         `json:"nutritionalInfo"`
	Customization mealCustomizationRequest `json:"customization"`
}

// toDomain treats a missing isAvailable as available.
func (r createMealRequest) toDomain() meal.Details {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return meal.Details{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Category:      r.Category,
		ImageURL:      r.ImageURL,
		IsAvailable:   available,
		Nutrition:     r.Nutrition.toDomain(),
		Customization: r.Customization.toDomain(),
	}
}

type updateMealRequest struct {
	Name          *string                   `json:"name"`
	Description   *string                   `json:"description"`
	Price         *kernel.Money             `json:"price"`
	Category      *string                   `json:"category"`
	ImageURL      *string                   `json:"imageUrl"`
	IsAvailable   *bool                     `json:"isAvailable"`
	Nutrition     *nutritionRequest         `json:"nutritionalInfo"`
	Customization *mealCustomizationRequest `json:"customization"`
}

func (r updateMealRequest) toDomain() meal.Patch {
	patch := meal.Patch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		IsAvailable: r.IsAvailable,
	}
	if r.Nutrition != nil {
		nutrition := r.Nutrition.toDomain()
		patch.Nutrition = &nutrition
	}
	if r.Customization != nil {
		options := r.Customization.toDomain()
		patch.Customization = &options
	}
	return patch
}

type itemCustomizationRequest struct {
	AddOns             []string `json:"addOns"`
	RemovedIngredients []string `json:"removedIngredients"`
	SpiceLevel         string   `json:"spiceLevel"`
}

type orderItemRequest struct {
	MealID        openapi_types.UUID       `json:"mealId"`
	Quantity      int                      `json:"quantity"`
	Customization itemCustomizationRequest `json:"customization"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items"`
	DeliveryAddress string             `json:"deliveryAddress"`
}

func (r createOrderRequest) cartLines() ([]services.CartLine, error) {
	lines := make([]services.CartLine, 0, len(r.Items))
	for _, item := range r.Items {
		mealID, err := kernel.UUIDFromBytes(item.MealID[:])
		if err != nil {
			return nil, err
		}
		lines = append(lines, services.CartLine{
			MealID:   mealID,
			Quantity: item.Quantity,
			Customization: order.Customization{
				AddOns:             item.Customization.AddOns,
				RemovedIngredients: item.Customization.RemovedIngredients,
				SpiceLevel:         item.Customization.SpiceLevel,
			},
		})
	}
	return lines, nil
}

type paymentRequest struct {
	PaymentReference string `json:"paymentReference"`
}

type trackingUpdateRequest struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

type trackingNumberRequest struct {
	TrackingNumber string `json:"trackingNumber"`
}

type estimatedDeliveryRequest struct {
	EstimatedDeliveryDate time.Time `json:"estimatedDeliveryDate"`
}

type ratingRequest struct {
	Rating  int                `json:"rating"`
	Comment string             `json:"comment"`
	MealID  openapi_types.UUID `json:"mealId"`
	OrderID openapi_types.UUID `json:"orderId"`
}

type blockRequest struct {
	IsBlocked bool `json:"isBlocked"`
}

type roleRequest struct {
	Role string `json:"role"`
}

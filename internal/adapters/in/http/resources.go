package http

import (
	"time"

	"feedme/internal/core/application/usecases/queries"
	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/core/domain/model/user"
)

// Resources are rendered as maps so list projections can drop fields by name.
type resource = map[string]any

type listMeta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Total     int64 `json:"total"`
	TotalPage int   `json:"totalPage"`
}

type listResponse struct {
	Meta listMeta   `json:"meta"`
	Data []resource `json:"data"`
}

func renderList[T any](result queries.ListResult[T], render func(T) resource) listResponse {
	data := make([]resource, 0, len(result.Items))
	for _, item := range result.Items {
		data = append(data, result.Projection.Apply(render(item)))
	}
	return listResponse{
		Meta: listMeta{
			Page:      result.Page.Number,
			Limit:     result.Page.Limit,
			Total:     result.Total,
			TotalPage: result.TotalPages(),
		},
		Data: data,
	}
}

type nutritionResource struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type addOnResource struct {
	Name  string       `json:"name"`
	Price kernel.Money `json:"price"`
}

type mealCustomizationResource struct {
	RemovableIngredients []string        `json:"removableIngredients"`
	AddOns               []addOnResource `json:"addOns"`
	SpiceLevels          []string        `json:"spiceLevels"`
}

type reviewResource struct {
	UserID    string    `json:"userId"`
	OrderID   string    `json:"orderId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

func renderMeal(m *meal.Meal) resource {
	nutrition := m.Nutrition()
	options := m.Customization()

	addOns := make([]addOnResource, 0, len(options.AddOns))
	for _, addOn := range options.AddOns {
		addOns = append(addOns, addOnResource{Name: addOn.Name, Price: addOn.Price})
	}

	reviews := make([]reviewResource, 0, len(m.Reviews()))
	for _, review := range m.Reviews() {
		reviews = append(reviews, reviewResource{
			UserID:    review.UserID().String(),
			OrderID:   review.OrderID().String(),
			Rating:    review.Score(),
			Comment:   review.Comment(),
			CreatedAt: review.CreatedAt(),
		})
	}

	return resource{
		"id":          m.ID().String(),
		"providerId":  m.ProviderID().String(),
		"name":        m.Name(),
		"description": m.Description(),
		"price":       m.Price(),
		"category":    m.Category(),
		"imageUrl":    m.ImageURL(),
		"isAvailable": m.IsAvailable(),
		"nutritionalInfo": nutritionResource{
			Calories: nutrition.Calories,
			Protein:  nutrition.Protein,
			Carbs:    nutrition.Carbs,
			Fat:      nutrition.Fat,
		},
		"customization": mealCustomizationResource{
			RemovableIngredients: nonNil(options.RemovableIngredients),
			AddOns:               addOns,
			SpiceLevels:          nonNil(options.SpiceLevels),
		},
		"rating":      m.Rating().Average(),
		"ratingCount": m.Rating().Count(),
		"reviews":     reviews,
		"createdAt":   m.CreatedAt(),
		"updatedAt":   m.UpdatedAt(),
	}
}

type itemCustomizationResource struct {
	AddOns             []string `json:"addOns"`
	RemovedIngredients []string `json:"removedIngredients"`
	SpiceLevel         string   `json:"spiceLevel"`
}

type lineItemResource struct {
	MealID        string                    `json:"mealId"`
	ProviderID    string                    `json:"providerId"`
	Name          string                    `json:"name"`
	Quantity      int                       `json:"quantity"`
	UnitPrice     kernel.Money              `json:"unitPrice"`
	Subtotal      kernel.Money              `json:"subtotal"`
	Customization itemCustomizationResource `json:"customization"`
}

type trackingUpdateResource struct {
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type trackingStagesResource struct {
	Placed    bool `json:"placed"`
	Approved  bool `json:"approved"`
	Processed bool `json:"processed"`
	Shipped   bool `json:"shipped"`
	Delivered bool `json:"delivered"`
}

func renderOrder(o *order.Order) resource {
	items := make([]lineItemResource, 0, len(o.Items()))
	for _, item := range o.Items() {
		customization := item.Customization()
		items = append(items, lineItemResource{
			MealID:     item.MealID().String(),
			ProviderID: item.ProviderID().String(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			Subtotal:   item.Subtotal(),
			Customization: itemCustomizationResource{
				AddOns:             nonNil(customization.AddOns),
				RemovedIngredients: nonNil(customization.RemovedIngredients),
				SpiceLevel:         customization.SpiceLevel,
			},
		})
	}

	updates := make([]trackingUpdateResource, 0, len(o.TrackingUpdates()))
	for _, update := range o.TrackingUpdates() {
		updates = append(updates, trackingUpdateResource{
			Stage:     update.Stage().String(),
			Message:   update.Message(),
			Timestamp: update.Timestamp(),
		})
	}

	stages := o.TrackingStages()
	return resource{
		"id":               o.ID().String(),
		"customerId":       o.CustomerID().String(),
		"items":            items,
		"deliveryAddress":  o.DeliveryAddress(),
		"subtotal":         o.Subtotal(),
		"tax":              o.Tax(),
		"shipping":         o.Shipping(),
		"totalPrice":       o.Total(),
		"status":           o.Status().String(),
		"paymentReference": o.PaymentReference(),
		"trackingNumber":   o.TrackingNumber(),
		"trackingUpdates":  updates,
		"trackingStages": trackingStagesResource{
			Placed:    stages.Placed,
			Approved:  stages.Approved,
			Processed: stages.Processed,
			Shipped:   stages.Shipped,
			Delivered: stages.Delivered,
		},
		"estimatedDeliveryDate": o.EstimatedDeliveryDate(),
		"createdAt":             o.CreatedAt(),
		"updatedAt":             o.UpdatedAt(),
	}
}

func renderUser(u *user.User) resource {
	return resource{
		"id":        u.ID().String(),
		"name":      u.Name(),
		"email":     u.Email(),
		"phone":     u.Phone(),
		"address":   u.Address(),
		"role":      u.Role().String(),
		"isBlocked": u.IsBlocked(),
		"createdAt": u.CreatedAt(),
		"updatedAt": u.UpdatedAt(),
	}
}

type sessionResponse struct {
	Token string   `json:"token"`
	User  resource `json:"user"`
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

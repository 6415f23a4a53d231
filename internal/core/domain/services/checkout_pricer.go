package services

import (
	"fmt"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/core/domain/model/meal"
	"feedme/internal/core/domain/model/order"
	"feedme/internal/pkg/errs"
)

// CartLine is one requested meal at checkout.
type CartLine struct {
	MealID        kernel.UUID
	Quantity      int
	Customization order.Customization
}

// CheckoutPricer freezes catalog prices into line items.
type CheckoutPricer struct{}

func NewCheckoutPricer() CheckoutPricer {
	return CheckoutPricer{}
}

// Price builds one line item per cart line. Every meal must be among meals and
// available, and every customization choice must be offered by the meal; the unit
// price is the meal price plus the chosen add-ons.
func (p CheckoutPricer) Price(lines []CartLine, meals []*meal.Meal) ([]order.LineItem, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	catalog := make(map[kernel.UUID]*meal.Meal, len(meals))
	for _, m := range meals {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		catalog[m.ID()] = m
	}

	items := make([]order.LineItem, 0, len(lines))
	for i, line := range lines {
		m, ok := catalog[line.MealID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("mealId", line.MealID.String())
		}

		unitPrice, err := m.UnitPrice(
			line.Customization.AddOns,
			line.Customization.RemovedIngredients,
			line.Customization.SpiceLevel,
		)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		item, err := order.NewLineItem(m.ID(), m.ProviderID(), m.Name(), line.Quantity, unitPrice, line.Customization)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}

	return items, nil
}

package order

import (
	"errors"
	"slices"
	"strings"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/pkg/errs"
)

const (
	MinQuantity = 1
	MaxQuantity = 50
)

// Customization is the choice a customer made for one line item.
type Customization struct {
	AddOns             []string
	RemovedIngredients []string
	SpiceLevel         string
}

func (c Customization) clone() Customization {
	return Customization{
		AddOns:             slices.Clone(c.AddOns),
		RemovedIngredients: slices.Clone(c.RemovedIngredients),
		SpiceLevel:         c.SpiceLevel,
	}
}

// LineItem is one ordered meal. The unit price already includes the chosen add-ons
// and is frozen at checkout.
type LineItem struct {
	mealID        kernel.UUID
	providerID    kernel.UUID
	name          string
	quantity      int
	unitPrice     kernel.Money
	customization Customization
}

func NewLineItem(
	mealID kernel.UUID,
	providerID kernel.UUID,
	name string,
	quantity int,
	unitPrice kernel.Money,
	customization Customization,
) (LineItem, error) {
	name = strings.TrimSpace(name)

	var quantityErr error
	if quantity < MinQuantity || quantity > MaxQuantity {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", quantity, MinQuantity, MaxQuantity)
	}
	var priceErr error
	if unitPrice < 0 {
		priceErr = errs.NewValueIsOutOfRangeError("unitPrice", unitPrice, 0, "unbounded")
	}

	if err := errors.Join(
		mealID.Validate(),
		providerID.Validate(),
		requireText("name", name),
		quantityErr,
		priceErr,
	); err != nil {
		return LineItem{}, err
	}

	return LineItem{
		mealID:        mealID,
		providerID:    providerID,
		name:          name,
		quantity:      quantity,
		unitPrice:     unitPrice,
		customization: customization.clone(),
	}, nil
}

func (li LineItem) MealID() kernel.UUID {
	return li.mealID
}

func (li LineItem) ProviderID() kernel.UUID {
	return li.providerID
}

func (li LineItem) Name() string {
	return li.name
}

func (li LineItem) Quantity() int {
	return li.quantity
}

func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

func (li LineItem) Customization() Customization {
	return li.customization.clone()
}

// Subtotal is unit price times quantity.
func (li LineItem) Subtotal() kernel.Money {
	return li.unitPrice.Mul(li.quantity)
}

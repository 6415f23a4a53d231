package meal

import (
	"fmt"
	"slices"
	"strings"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/pkg/errs"
)

// Nutrition is per serving.
type Nutrition struct {
	Calories int
	Protein  float64
	Carbs    float64
	Fat      float64
}

func (n Nutrition) Validate() error {
	if n.Calories < 0 || n.Protein < 0 || n.Carbs < 0 || n.Fat < 0 {
		return errs.NewValueIsInvalidErrorWithCause("nutritionalInfo", fmt.Errorf("values must not be negative"))
	}
	return nil
}

// AddOn is an optional extra with its own price.
type AddOn struct {
	Name  string
	Price kernel.Money
}

// Options lists what a customer may change about a meal.
type Options struct {
	RemovableIngredients []string
	AddOns               []AddOn
	SpiceLevels          []string
}

func (o Options) Validate() error {
	names := make([]string, 0, len(o.AddOns))
	for _, addOn := range o.AddOns {
		name := strings.TrimSpace(addOn.Name)
		if name == "" {
			return errs.NewValueIsRequiredError("customization.addOns.name")
		}
		if addOn.Price < 0 {
			return errs.NewValueIsOutOfRangeError("customization.addOns.price", addOn.Price, 0, "unbounded")
		}
		if slices.ContainsFunc(names, func(n string) bool { return strings.EqualFold(n, name) }) {
			return errs.NewValueIsInvalidErrorWithCause("customization.addOns", fmt.Errorf("add-on %q is listed twice", name))
		}
		names = append(names, name)
	}
	return nil
}

// AddOn finds an add-on by name, ignoring case.
func (o Options) AddOn(name string) (AddOn, bool) {
	for _, addOn := range o.AddOns {
		if strings.EqualFold(addOn.Name, strings.TrimSpace(name)) {
			return addOn, true
		}
	}
	return AddOn{}, false
}

func (o Options) isRemovable(ingredient string) bool {
	return containsFold(o.RemovableIngredients, ingredient)
}

func (o Options) hasSpiceLevel(level string) bool {
	return containsFold(o.SpiceLevels, level)
}

func (o Options) clone() Options {
	return Options{
		RemovableIngredients: slices.Clone(o.RemovableIngredients),
		AddOns:               slices.Clone(o.AddOns),
		SpiceLevels:          slices.Clone(o.SpiceLevels),
	}
}

func containsFold(values []string, v string) bool {
	v = strings.TrimSpace(v)
	return slices.ContainsFunc(values, func(candidate string) bool {
		return strings.EqualFold(candidate, v)
	})
}

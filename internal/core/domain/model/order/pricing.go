package order

import (
	"errors"
	"fmt"
	"math"

	"feedme/internal/core/domain/model/kernel"
	"feedme/internal/pkg/errs"
)

// Pricing is the checkout policy applied on top of line item subtotals.
type Pricing struct {
	taxRate     float64
	shippingFee kernel.Money
}

// NewPricing accepts a tax rate in [0, 1] (0.05 is 5%) and a non-negative flat shipping fee.
func NewPricing(taxRate float64, shippingFee kernel.Money) (Pricing, error) {
	var rateErr error
	if math.IsNaN(taxRate) || taxRate < 0 || taxRate > 1 {
		rateErr = errs.NewValueIsOutOfRangeError("taxRate", taxRate, 0, 1)
	}
	var feeErr error
	if shippingFee < 0 {
		feeErr = errs.NewValueIsOutOfRangeError("shippingFee", shippingFee, 0, "unbounded")
	}
	if err := errors.Join(rateErr, feeErr); err != nil {
		return Pricing{}, err
	}

	return Pricing{taxRate: taxRate, shippingFee: shippingFee}, nil
}

func (p Pricing) TaxRate() float64 {
	return p.taxRate
}

func (p Pricing) ShippingFee() kernel.Money {
	return p.shippingFee
}

// Totals are the monetary amounts of an order. Total always equals
// Subtotal + Tax + Shipping.
type Totals struct {
	subtotal kernel.Money
	tax      kernel.Money
	shipping kernel.Money
	total    kernel.Money
}

// Price computes the totals of items: the tax is the subtotal times the tax rate,
// rounded to the cent, and shipping is the flat fee.
func (p Pricing) Price(items []LineItem) Totals {
	var subtotal kernel.Money
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	tax := subtotal.ApplyRate(p.taxRate)

	return Totals{
		subtotal: subtotal,
		tax:      tax,
		shipping: p.shippingFee,
		total:    subtotal.Add(tax).Add(p.shippingFee),
	}
}

// restoreTotals checks persisted amounts against the line items.
func restoreTotals(items []LineItem, subtotal, tax, shipping, total kernel.Money) (Totals, error) {
	var expected kernel.Money
	for _, item := range items {
		expected = expected.Add(item.Subtotal())
	}
	if subtotal != expected {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"subtotal",
			fmt.Errorf("subtotal %s does not match line items %s", subtotal, expected),
		)
	}
	if tax < 0 || shipping < 0 {
		return Totals{}, errs.NewValueIsInvalidError("tax and shipping must not be negative")
	}
	if total != subtotal.Add(tax).Add(shipping) {
		return Totals{}, errs.NewValueIsInvalidErrorWithCause(
			"totalPrice",
			fmt.Errorf("total %s is not subtotal %s + tax %s + shipping %s", total, subtotal, tax, shipping),
		)
	}

	return Totals{subtotal: subtotal, tax: tax, shipping: shipping, total: total}, nil
}

func (t Totals) Subtotal() kernel.Money {
	return t.subtotal
}

func (t Totals) Tax() kernel.Money {
	return t.tax
}

func (t Totals) Shipping() kernel.Money {
	return t.shipping
}

func (t Totals) Total() kernel.Money {
	return t.total
}

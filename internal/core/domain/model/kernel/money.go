package kernel

import (
	"encoding/json"
	"math"
	"strconv"

	"feedme/internal/pkg/errs"
)

// Money is an amount in cents. Prices, taxes and totals never use floats internally.
type Money int64

// NewMoneyFromFloat rounds a decimal amount (e.g. 12.345) half away from zero to cents.
// Negative, NaN and infinite amounts are rejected.
func NewMoneyFromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errs.NewValueIsInvalidError("amount")
	}
	if amount < 0 {
		return 0, errs.NewValueIsOutOfRangeError("amount", amount, 0, math.MaxInt64/100)
	}
	return Money(math.Round(amount * 100)), nil
}

// MustMoney is NewMoneyFromFloat for constants and tests.
func MustMoney(amount float64) Money {
	m, err := NewMoneyFromFloat(amount)
	if err != nil {
		panic(err)
	}
	return m
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return int64(m)
}

// Float returns the amount in currency units.
func (m Money) Float() float64 {
	return float64(m) / 100
}

func (m Money) Add(other Money) Money {
	return m + other
}

// Mul multiplies by an integral quantity.
func (m Money) Mul(quantity int) Money {
	return m * Money(quantity)
}

// ApplyRate returns m*rate rounded half away from zero to a whole cent.
func (m Money) ApplyRate(rate float64) Money {
	return Money(math.Round(float64(m) * rate))
}

func (m Money) String() string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}

// MarshalJSON encodes the amount as a decimal number, e.g. 12.5.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Float())
}

// UnmarshalJSON decodes a non-negative decimal number.
func (m *Money) UnmarshalJSON(data []byte) error {
	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	parsed, err := NewMoneyFromFloat(amount)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

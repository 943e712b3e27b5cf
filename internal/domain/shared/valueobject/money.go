package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a value object representing a monetary amount as an exact
// number of cents. All internal arithmetic is integer arithmetic; no
// floating point is involved at any stage.
// It is immutable - all operations return new Money instances.
type Money struct {
	cents int64
}

// NewMoneyFromCents creates Money from an integer number of cents
func NewMoneyFromCents(cents int64) Money {
	return Money{cents: cents}
}

// NewMoneyFromString creates Money from a decimal dollar string such as
// "142.50". The string must be non-negative and have at most two
// fractional digits.
func NewMoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", amount, err)
	}
	if d.IsNegative() {
		return Money{}, fmt.Errorf("money amount %q must not be negative", amount)
	}
	if d.Exponent() < -2 {
		return Money{}, fmt.Errorf("money amount %q has more than two decimal places", amount)
	}
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return Money{}, fmt.Errorf("money amount %q is not a whole number of cents", amount)
	}
	return Money{cents: cents.IntPart()}, nil
}

// ZeroMoney returns a zero-value Money
func ZeroMoney() Money {
	return Money{}
}

// Cents returns the amount as an integer number of cents
func (m Money) Cents() int64 {
	return m.cents
}

// Decimal returns the amount as a decimal dollar value
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -2)
}

// String formats the amount as a dollar string with two decimal places
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsPositive returns true if the amount is strictly positive
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsNegative returns true if the amount is strictly negative
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// Add returns a new Money with the sum of both amounts
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Subtract returns a new Money with the difference
func (m Money) Subtract(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// MultiplyByInt returns a new Money multiplied by an integer count
func (m Money) MultiplyByInt(factor int64) Money {
	return Money{cents: m.cents * factor}
}

// Negate returns a new Money with the sign reversed
func (m Money) Negate() Money {
	return Money{cents: -m.cents}
}

// Abs returns a new Money with the absolute value
func (m Money) Abs() Money {
	if m.cents < 0 {
		return Money{cents: -m.cents}
	}
	return m
}

// Equals returns true if both amounts are identical
func (m Money) Equals(other Money) bool {
	return m.cents == other.cents
}

// GreaterThan returns true if this amount is greater than the other
func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

// LessThan returns true if this amount is less than the other
func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

// moneyJSON is the JSON wire representation of Money
type moneyJSON struct {
	Cents   int64  `json:"cents"`
	Display string `json:"display"`
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Cents:   m.cents,
		Display: m.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Only the cents field is
// authoritative; the display field is ignored on input.
func (m *Money) UnmarshalJSON(data []byte) error {
	var wire moneyJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	m.cents = wire.Cents
	return nil
}

// Value implements driver.Valuer for database storage.
// Stores the amount as an integer number of cents.
func (m Money) Value() (driver.Value, error) {
	return m.cents, nil
}

// Scan implements sql.Scanner for database retrieval
func (m *Money) Scan(value any) error {
	if value == nil {
		m.cents = 0
		return nil
	}
	switch v := value.(type) {
	case int64:
		m.cents = v
		return nil
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return fmt.Errorf("cannot scan %q into Money: %w", string(v), err)
		}
		if !d.IsInteger() {
			return fmt.Errorf("cannot scan fractional value %q into Money cents", string(v))
		}
		m.cents = d.IntPart()
		return nil
	default:
		return errors.New("unsupported type for Money scan")
	}
}

package models

import (
	"database/sql/driver"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "fundit/internal/errors"
)

// Amounts are stored as DECIMAL(10,2).
const (
	moneyIntegerDigits = 8
	moneyFractionLimit = 18
	moneyInputLimit    = 40
)

var moneyLimit = decimal.New(1, moneyIntegerDigits)

// Money is a decimal amount with two fraction digits on the wire and in
// storage.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d.
func NewMoney(d decimal.Decimal) Money { return Money{Decimal: d} }

// MustMoney parses s and panics on failure. Intended for fixtures and
// constants.
func MustMoney(s string) Money {
	return Money{Decimal: decimal.RequireFromString(s)}
}

// ParseMoney parses s and returns ErrInvalidAmount when it is malformed or
// does not fit the amount column. The exponent is checked before anything
// rescales the value.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > moneyInputLimit {
		return Money{}, apperrors.ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, apperrors.ErrInvalidAmount
	}
	if d.Exponent() < -moneyFractionLimit || d.NumDigits()+int(d.Exponent()) > moneyIntegerDigits {
		return Money{}, apperrors.ErrInvalidAmount
	}
	if d.Round(2).Abs().GreaterThanOrEqual(moneyLimit) {
		return Money{}, apperrors.ErrInvalidAmount
	}
	return Money{Decimal: d}, nil
}

// HasCents reports whether m needs no more than two fraction digits.
func (m Money) HasCents() bool {
	return m.Equal(m.Round(2))
}

// String formats the amount with two fraction digits.
func (m Money) String() string { return m.StringFixed(2) }

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

// UnmarshalJSON accepts a JSON string or number.
func (m *Money) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	parsed, err := ParseMoney(strings.Trim(raw, `"`))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.StringFixed(2), nil
}

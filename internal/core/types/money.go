// Package types provides fixed-point money and quantity types.
// All voucher arithmetic uses these types so that debit/credit sums
// match exactly, with no floating-point accumulation drift.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a monetary value in paise (minor currency units, 2 decimal places).
//
// Rationale:
// - Integer arithmetic keeps per-voucher debit/credit sums exact
// - Stores as BIGINT, sufficient for ±92 trillion rupees
// - JSON remains a number with 2 decimals
type Money int64

const MoneyScale int64 = 100

// MoneyFromDecimal converts a decimal rupee amount to paise, rounding half up.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Mul(decimal.NewFromInt(MoneyScale)).Round(0).IntPart())
}

// MoneyFromString parses a decimal string ("5250.00") into Money.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse money: %w", err)
	}
	return MoneyFromDecimal(d), nil
}

// MustMoney parses a decimal string, panics on error. Use only in tests.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the value in rupees as a decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) Paise() int64 { return int64(m) }

func (m Money) Float64() float64 { return float64(m) / float64(MoneyScale) }

func (m Money) IsZero() bool     { return m == 0 }
func (m Money) IsPositive() bool { return m > 0 }
func (m Money) IsNegative() bool { return m < 0 }
func (m Money) Neg() Money       { return -m }

func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// String returns a decimal string with 2 fractional digits.
func (m Money) String() string {
	neg := m < 0
	v := int64(m)
	if neg {
		v = -v
	}
	if neg {
		return fmt.Sprintf("-%d.%02d", v/MoneyScale, v%MoneyScale)
	}
	return fmt.Sprintf("%d.%02d", v/MoneyScale, v%MoneyScale)
}

// MarshalJSON encodes Money as a JSON number with 2 decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number or string.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}

	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := MoneyFromString(s)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}

	parsed, err := MoneyFromString(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// LineAmount computes quantity * rate exactly.
// Quantity carries 4 implied decimals, rate is in paise; the product is
// rounded half up to whole paise.
func LineAmount(q Quantity, rate Money) Money {
	amount := decimal.NewFromInt(q.Int64Scaled()).
		Mul(decimal.NewFromInt(int64(rate))).
		Div(decimal.NewFromInt(QuantityScale)).
		Round(0)
	return Money(amount.IntPart())
}

// Percent computes m * rate / 100, rounded half up to whole paise.
// Used for GST amounts where rate is a percentage (e.g. 5, 12.5).
func Percent(m Money, rate decimal.Decimal) Money {
	amount := decimal.NewFromInt(int64(m)).
		Mul(rate).
		Div(decimal.NewFromInt(100)).
		Round(0)
	return Money(amount.IntPart())
}

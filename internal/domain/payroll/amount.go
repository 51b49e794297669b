package payroll

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a raw form value into a decimal amount.
// Accepts strings (thousands separators allowed), numbers, nil.
// Anything that fails to parse degrades to zero instead of erroring,
// so a half-typed form field never breaks a computation.
func ParseAmount(v any) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return val
	case float64:
		return decimal.NewFromFloat(val)
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case json.Number:
		return parseAmountString(string(val))
	case string:
		return parseAmountString(val)
	default:
		return decimal.Zero
	}
}

func parseAmountString(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Amount is a monetary value that unmarshals leniently from JSON:
// it accepts a number, a numeric string (with optional thousands
// separators), null, or an empty string, and falls back to zero for
// malformed input.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	a.Decimal = parseJSONValue(data)
	return nil
}

// Percent is a whole-number percentage, e.g. 12 means 12%.
// Shares Amount's lenient JSON parsing.
type Percent struct {
	decimal.Decimal
}

func NewPercent(d decimal.Decimal) Percent {
	return Percent{Decimal: d}
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	p.Decimal = parseJSONValue(data)
	return nil
}

// Of returns base × p / 100.
func (p Percent) Of(base decimal.Decimal) decimal.Decimal {
	return base.Mul(p.Decimal).Div(decimal.NewFromInt(100))
}

// Fraction is a 0..1 policy dial, e.g. 0.5 for the half-day rule.
// Shares Amount's lenient JSON parsing.
type Fraction struct {
	decimal.Decimal
}

func NewFraction(d decimal.Decimal) Fraction {
	return Fraction{Decimal: d}
}

func (f *Fraction) UnmarshalJSON(data []byte) error {
	f.Decimal = parseJSONValue(data)
	return nil
}

func parseJSONValue(data []byte) decimal.Decimal {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return decimal.Zero
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return decimal.Zero
		}
		return parseAmountString(str)
	}
	return parseAmountString(s)
}

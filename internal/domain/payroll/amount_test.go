package payroll

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "0"},
		{"empty string", "", "0"},
		{"plain number string", "1250", "1250"},
		{"thousands separators", "1,234,567.89", "1234567.89"},
		{"float", 30850.5, "30850.5"},
		{"int", 12, "12"},
		{"malformed", "abc,123", "0"},
		{"whitespace", "  2500 ", "2500"},
		{"negative", "-100", "-100"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseAmount(tc.input)
			assert.True(t, got.Equal(d(tc.want)), "ParseAmount(%v) = %s, want %s", tc.input, got, tc.want)
		})
	}
}

func TestAmount_UnmarshalLenient(t *testing.T) {
	var in struct {
		Basic Amount `json:"basic"`
		HRA   Amount `json:"hra"`
		Bonus Amount `json:"bonus"`
		Other Amount `json:"other"`
	}

	// Numbers, numeric strings, garbage, and null all decode without error.
	body := `{"basic":"abc,123","hra":"8,000","bonus":1250.75,"other":null}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	assert.True(t, in.Basic.IsZero(), "malformed input degrades to zero, got %s", in.Basic)
	assert.True(t, in.HRA.Equal(d("8000")))
	assert.True(t, in.Bonus.Equal(d("1250.75")))
	assert.True(t, in.Other.IsZero())
}

func TestPercent_Of(t *testing.T) {
	p := NewPercent(d("12"))
	assert.True(t, p.Of(d("20000")).Equal(d("2400")))

	zero := Percent{}
	assert.True(t, zero.Of(d("20000")).IsZero())
}

func TestFraction_Unmarshal(t *testing.T) {
	var in struct {
		HalfDay Fraction `json:"half_day"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"half_day":"0.5"}`), &in))
	assert.True(t, in.HalfDay.Equal(decimal.NewFromFloat(0.5)))
}

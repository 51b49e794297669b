package fixtures

import (
	"github.com/shopspring/decimal"

	"github.com/staffium/payroll-backend-go/internal/domain/payroll"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

// DefaultTaxSlabs is the slab table seeded with a fresh policy:
// 0% to 12L, then 15/20/25% bands of 4L each, 30% above 24L.
func DefaultTaxSlabs() payroll.TaxSlabTable {
	return payroll.TaxSlabTable{
		{UpperBound: decPtr("1200000"), Rate: dec("0")},
		{UpperBound: decPtr("1600000"), Rate: dec("0.15")},
		{UpperBound: decPtr("2000000"), Rate: dec("0.20")},
		{UpperBound: decPtr("2400000"), Rate: dec("0.25")},
		{UpperBound: nil, Rate: dec("0.30")},
	}
}

// LegacyTaxSlabs is the older four-band table kept for tenants that
// have not migrated: 0% to 2.5L, 5% to 5L, 20% to 10L, 30% above.
func LegacyTaxSlabs() payroll.TaxSlabTable {
	return payroll.TaxSlabTable{
		{UpperBound: decPtr("250000"), Rate: dec("0")},
		{UpperBound: decPtr("500000"), Rate: dec("0.05")},
		{UpperBound: decPtr("1000000"), Rate: dec("0.20")},
		{UpperBound: nil, Rate: dec("0.30")},
	}
}

// DefaultPolicy returns the payroll policy a fresh install starts
// with. PF at the statutory 12% both sides; ESI off until enabled.
func DefaultPolicy() payroll.Policy {
	return payroll.Policy{
		PFEmployeePercent:    dec("12"),
		PFEmployerPercent:    dec("12"),
		ESIEmployeePercent:   decimal.Zero,
		ESIEmployerPercent:   decimal.Zero,
		ProfessionalTax:      decimal.Zero,
		TaxSlabs:             DefaultTaxSlabs(),
		WorkingDaysInMonth:   26,
		HalfDayFraction:      dec("0.5"),
		PayForApprovedLeaves: true,
		PayForExpenses:       true,
	}
}

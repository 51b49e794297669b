package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func dPtr(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// Old-regime brackets: 0-250k @0%, 250k-500k @5%, 500k-1M @20%, above @30%.
func regimeASlabs() TaxSlabTable {
	return TaxSlabTable{
		{UpperBound: dPtr("250000"), Rate: d("0")},
		{UpperBound: dPtr("500000"), Rate: d("0.05")},
		{UpperBound: dPtr("1000000"), Rate: d("0.2")},
		{UpperBound: nil, Rate: d("0.3")},
	}
}

// New-regime brackets: 0-1.2M @0%, then 15/20/25/30%.
func regimeBSlabs() TaxSlabTable {
	return TaxSlabTable{
		{UpperBound: dPtr("1200000"), Rate: d("0")},
		{UpperBound: dPtr("1600000"), Rate: d("0.15")},
		{UpperBound: dPtr("2000000"), Rate: d("0.2")},
		{UpperBound: dPtr("2400000"), Rate: d("0.25")},
		{UpperBound: nil, Rate: d("0.3")},
	}
}

func standardEarnings() EarningsInput {
	return EarningsInput{
		Basic:      NewAmount(d("20000")),
		HRA:        NewAmount(d("8000")),
		Conveyance: NewAmount(d("1600")),
		Medical:    NewAmount(d("1250")),
	}
}

func standardRates() DeductionRates {
	return DeductionRates{
		PFEmployeePercent: NewPercent(d("12")),
		PFEmployerPercent: NewPercent(d("12")),
	}
}

func TestComputeGross(t *testing.T) {
	_, gross := ComputeGross(standardEarnings())
	assert.True(t, gross.Equal(d("30850")), "gross = %s", gross)
}

func TestComputeGross_OvertimePay(t *testing.T) {
	e := EarningsInput{
		Basic:         NewAmount(d("10000")),
		OvertimeHours: NewAmount(d("10")),
		OvertimeRate:  NewAmount(d("150.5")),
	}
	overtimePay, gross := ComputeGross(e)
	assert.True(t, overtimePay.Equal(d("1505")), "overtimePay = %s", overtimePay)
	assert.True(t, gross.Equal(d("11505")), "gross = %s", gross)
}

func TestComputeGross_AtLeastEveryComponent(t *testing.T) {
	e := EarningsInput{
		Basic:            NewAmount(d("5000")),
		HRA:              NewAmount(d("2000")),
		SpecialAllowance: NewAmount(d("9000")),
		Bonus:            NewAmount(d("1000")),
	}
	_, gross := ComputeGross(e)
	for _, component := range []decimal.Decimal{
		e.Basic.Decimal, e.HRA.Decimal, e.SpecialAllowance.Decimal, e.Bonus.Decimal,
	} {
		assert.True(t, gross.GreaterThanOrEqual(component))
	}
}

func TestComputeStatutory_PFOnBasicOnly(t *testing.T) {
	e := standardEarnings()
	_, gross := ComputeGross(e)
	stat := ComputeStatutory(e, gross, standardRates())

	assert.True(t, stat.PFEmployee.Equal(d("2400")), "pfEmployee = %s", stat.PFEmployee)
	assert.True(t, stat.PFEmployer.Equal(d("2400")), "pfEmployer = %s", stat.PFEmployer)
	assert.True(t, stat.ESIEmployee.IsZero())
	assert.True(t, stat.ESIEmployer.IsZero())
}

func TestComputeStatutory_ZeroBasic(t *testing.T) {
	e := EarningsInput{
		HRA:   NewAmount(d("8000")),
		Bonus: NewAmount(d("2000")),
	}
	_, gross := ComputeGross(e)
	stat := ComputeStatutory(e, gross, standardRates())

	assert.True(t, stat.PFEmployee.IsZero(), "PF base is basic, which is zero")
	assert.True(t, stat.PFEmployer.IsZero())
}

func TestComputeStatutory_ESIOnGross(t *testing.T) {
	e := standardEarnings()
	_, gross := ComputeGross(e)
	rates := standardRates()
	rates.ESIEmployeePercent = NewPercent(d("1.75"))
	rates.ESIEmployerPercent = NewPercent(d("4.75"))

	stat := ComputeStatutory(e, gross, rates)
	assert.True(t, stat.ESIEmployee.Equal(d("539.875")), "esiEmployee = %s", stat.ESIEmployee)
	assert.True(t, stat.ESIEmployer.Equal(d("1465.375")), "esiEmployer = %s", stat.ESIEmployer)
}

func TestComputeAnnualTax_RegimeA(t *testing.T) {
	// 341,400: first 250,000 @0%, remaining 91,400 @5% = 4,570.
	tax, err := ComputeAnnualTax(d("341400"), regimeASlabs())
	require.NoError(t, err)
	assert.True(t, tax.Equal(d("4570")), "tax = %s", tax)
}

func TestComputeAnnualTax_ZeroIncome(t *testing.T) {
	for _, slabs := range []TaxSlabTable{regimeASlabs(), regimeBSlabs()} {
		tax, err := ComputeAnnualTax(decimal.Zero, slabs)
		require.NoError(t, err)
		assert.True(t, tax.IsZero())
	}
}

func TestComputeAnnualTax_NegativeIncomeClamped(t *testing.T) {
	tax, err := ComputeAnnualTax(d("-50000"), regimeASlabs())
	require.NoError(t, err)
	assert.True(t, tax.IsZero())
}

func TestComputeAnnualTax_SlabBoundary(t *testing.T) {
	// Exactly at 500,000: 250,000 @0% + 250,000 @5% = 12,500.
	// No double-counting, no gap.
	tax, err := ComputeAnnualTax(d("500000"), regimeASlabs())
	require.NoError(t, err)
	assert.True(t, tax.Equal(d("12500")), "tax = %s", tax)

	// One rupee above the boundary enters the 20% bracket.
	above, err := ComputeAnnualTax(d("500001"), regimeASlabs())
	require.NoError(t, err)
	assert.True(t, above.Equal(d("12500.2")), "tax = %s", above)
}

func TestComputeAnnualTax_TopSlab(t *testing.T) {
	// 1,500,000: 0 + 12,500 + 100,000 + 500,000×30% = 262,500.
	tax, err := ComputeAnnualTax(d("1500000"), regimeASlabs())
	require.NoError(t, err)
	assert.True(t, tax.Equal(d("262500")), "tax = %s", tax)
}

func TestComputeAnnualTax_Monotonic(t *testing.T) {
	incomes := []string{"0", "100000", "250000", "341400", "500000", "750000", "1000000", "2000000", "5000000"}
	prev := decimal.Zero
	for _, income := range incomes {
		tax, err := ComputeAnnualTax(d(income), regimeBSlabs())
		require.NoError(t, err)
		assert.True(t, tax.GreaterThanOrEqual(prev), "tax not monotonic at income %s", income)
		prev = tax
	}
}

func TestComputeAnnualTax_InvalidTables(t *testing.T) {
	cases := map[string]TaxSlabTable{
		"empty": {},
		"negative rate": {
			{UpperBound: dPtr("100000"), Rate: d("-0.1")},
			{UpperBound: nil, Rate: d("0.3")},
		},
		"rate above one": {
			{UpperBound: dPtr("100000"), Rate: d("1.5")},
			{UpperBound: nil, Rate: d("0.3")},
		},
		"non-increasing bounds": {
			{UpperBound: dPtr("500000"), Rate: d("0")},
			{UpperBound: dPtr("250000"), Rate: d("0.05")},
			{UpperBound: nil, Rate: d("0.3")},
		},
		"unbounded slab not last": {
			{UpperBound: nil, Rate: d("0")},
			{UpperBound: dPtr("250000"), Rate: d("0.05")},
		},
	}

	for name, slabs := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ComputeAnnualTax(d("341400"), slabs)
			assert.ErrorIs(t, err, ErrInvalidTaxSlabs)
		})
	}
}

func TestComputeNetPay_Clamped(t *testing.T) {
	net := ComputeNetPay(d("10000"), d("15000"))
	assert.True(t, net.IsZero(), "net pay must never go negative, got %s", net)
}

func TestComputeSalary_StandardScenario(t *testing.T) {
	// basic=20000, hra=8000, conveyance=1600, medical=1250, PF 12%, ESI 0%.
	// gross=30850, pfEmployee=2400, annualTaxable=341400, annualTDS=4570,
	// monthlyTDS=380.83, totalDeductions=2780.83, netPay=28069.17.
	breakdown, err := ComputeSalary(standardEarnings(), standardRates(), regimeASlabs())
	require.NoError(t, err)

	rounded := breakdown.Rounded()
	assert.True(t, rounded.Earnings.Gross.Equal(d("30850")), "gross = %s", rounded.Earnings.Gross)
	assert.True(t, rounded.Deductions.PFEmployee.Equal(d("2400")))
	assert.True(t, rounded.Deductions.ESIEmployee.IsZero())
	assert.True(t, breakdown.AnnualTaxable.Equal(d("341400")), "annualTaxable = %s", breakdown.AnnualTaxable)
	assert.True(t, breakdown.AnnualTax.Equal(d("4570")), "annualTax = %s", breakdown.AnnualTax)
	assert.True(t, rounded.Deductions.TDSMonthly.Equal(d("380.83")), "tdsMonthly = %s", rounded.Deductions.TDSMonthly)
	assert.True(t, rounded.Deductions.TotalDeductions.Equal(d("2780.83")), "totalDeductions = %s", rounded.Deductions.TotalDeductions)
	assert.True(t, rounded.NetPay.Equal(d("28069.17")), "netPay = %s", rounded.NetPay)
}

func TestComputeSalary_TDSOverride(t *testing.T) {
	rates := standardRates()
	rates.TDSMonthlyOverride = NewAmount(d("500"))

	breakdown, err := ComputeSalary(standardEarnings(), rates, regimeASlabs())
	require.NoError(t, err)

	rounded := breakdown.Rounded()
	assert.True(t, rounded.Deductions.TDSMonthly.Equal(d("500")), "override replaces slab TDS")
	assert.True(t, rounded.Deductions.TotalDeductions.Equal(d("2900")))
	assert.True(t, rounded.NetPay.Equal(d("27950")), "netPay = %s", rounded.NetPay)
	// Slab figure is still computed for preview.
	assert.True(t, breakdown.AnnualTax.Equal(d("4570")))
}

func TestComputeSalary_ZeroOverrideIgnored(t *testing.T) {
	rates := standardRates()
	rates.TDSMonthlyOverride = NewAmount(decimal.Zero)

	breakdown, err := ComputeSalary(standardEarnings(), rates, regimeASlabs())
	require.NoError(t, err)
	assert.True(t, breakdown.Deductions.TDSMonthly.Round(2).Equal(d("380.83")))
}

func TestComputeSalary_InvalidSlabsRefused(t *testing.T) {
	_, err := ComputeSalary(standardEarnings(), standardRates(), TaxSlabTable{})
	assert.ErrorIs(t, err, ErrInvalidTaxSlabs)
}

func TestComputeSalary_GrossRoundTrip(t *testing.T) {
	breakdown, err := ComputeSalary(standardEarnings(), standardRates(), regimeASlabs())
	require.NoError(t, err)

	// Feeding the stored earnings back through the engine reproduces
	// the stored gross.
	replay := EarningsInput{
		Basic:            NewAmount(breakdown.Earnings.Basic),
		HRA:              NewAmount(breakdown.Earnings.HRA),
		Conveyance:       NewAmount(breakdown.Earnings.Conveyance),
		Medical:          NewAmount(breakdown.Earnings.Medical),
		SpecialAllowance: NewAmount(breakdown.Earnings.SpecialAllowance),
		Bonus:            NewAmount(breakdown.Earnings.Bonus),
		OtherBenefits:    NewAmount(breakdown.Earnings.OtherBenefits),
		OvertimeHours:    NewAmount(breakdown.Earnings.OvertimeHours),
		OvertimeRate:     NewAmount(breakdown.Earnings.OvertimeRate),
	}
	_, gross := ComputeGross(replay)
	assert.True(t, gross.Equal(breakdown.Earnings.Gross))
}

func TestComputeSalary_DeductionsExceedGross(t *testing.T) {
	e := EarningsInput{Basic: NewAmount(d("10000"))}
	rates := DeductionRates{
		PFEmployeePercent: NewPercent(d("12")),
		LoanRecovery:      NewAmount(d("15000")),
	}

	breakdown, err := ComputeSalary(e, rates, regimeASlabs())
	require.NoError(t, err)
	assert.True(t, breakdown.NetPay.IsZero(), "netPay clamped at zero, got %s", breakdown.NetPay)
}

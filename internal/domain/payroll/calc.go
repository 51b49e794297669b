package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	twelve  = decimal.NewFromInt(12)
	oneFull = decimal.NewFromInt(1)
)

// ComputeGross sums every earnings component of a period.
// overtimePay = overtimeHours × overtimeRate. No rounding happens
// here; amounts keep full precision until presentation.
func ComputeGross(e EarningsInput) (overtimePay, gross decimal.Decimal) {
	overtimePay = e.OvertimeHours.Decimal.Mul(e.OvertimeRate.Decimal)
	gross = e.Basic.Decimal.
		Add(e.HRA.Decimal).
		Add(e.Conveyance.Decimal).
		Add(e.Medical.Decimal).
		Add(e.SpecialAllowance.Decimal).
		Add(e.Bonus.Decimal).
		Add(e.OtherBenefits.Decimal).
		Add(overtimePay)
	return overtimePay, gross
}

// Statutory holds the PF/ESI contribution amounts for one period.
type Statutory struct {
	PFEmployee  decimal.Decimal
	PFEmployer  decimal.Decimal
	ESIEmployee decimal.Decimal
	ESIEmployer decimal.Decimal
}

// ComputeStatutory derives PF and ESI contributions. PF applies to
// basic pay only; ESI applies to gross earnings.
func ComputeStatutory(e EarningsInput, gross decimal.Decimal, r DeductionRates) Statutory {
	return Statutory{
		PFEmployee:  r.PFEmployeePercent.Of(e.Basic.Decimal),
		PFEmployer:  r.PFEmployerPercent.Of(e.Basic.Decimal),
		ESIEmployee: r.ESIEmployeePercent.Of(gross),
		ESIEmployer: r.ESIEmployerPercent.Of(gross),
	}
}

// AnnualTaxable annualizes the current month's net-of-deductions
// figure: max(0, (gross − pfEmployee − professionalTax − esiEmployee) × 12).
// Every month is assumed representative of the full year; actual
// year-to-date income is not accumulated.
func AnnualTaxable(gross, pfEmployee, professionalTax, esiEmployee decimal.Decimal) decimal.Decimal {
	taxable := gross.Sub(pfEmployee).Sub(professionalTax).Sub(esiEmployee).Mul(twelve)
	if taxable.IsNegative() {
		return decimal.Zero
	}
	return taxable
}

// Validate checks a slab table before it is used: non-empty, rates in
// [0, 1], strictly increasing upper bounds, unbounded slab only last.
// An invalid table must refuse to compute rather than silently produce
// zero tax.
func (t TaxSlabTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: table is empty", ErrInvalidTaxSlabs)
	}
	lower := decimal.Zero
	for i, slab := range t {
		if slab.Rate.IsNegative() || slab.Rate.GreaterThan(oneFull) {
			return fmt.Errorf("%w: slab %d rate %s outside [0,1]", ErrInvalidTaxSlabs, i, slab.Rate)
		}
		if slab.UpperBound == nil {
			if i != len(t)-1 {
				return fmt.Errorf("%w: unbounded slab %d is not last", ErrInvalidTaxSlabs, i)
			}
			continue
		}
		if !slab.UpperBound.GreaterThan(lower) {
			return fmt.Errorf("%w: slab %d upper bound %s not above %s", ErrInvalidTaxSlabs, i, slab.UpperBound, lower)
		}
		lower = *slab.UpperBound
	}
	return nil
}

// ComputeAnnualTax applies the marginal-rate bracket method: each slab
// taxes only the income that falls inside it, stopping once the income
// is exhausted. The result is clamped at zero.
func ComputeAnnualTax(annualTaxable decimal.Decimal, slabs TaxSlabTable) (decimal.Decimal, error) {
	if err := slabs.Validate(); err != nil {
		return decimal.Zero, err
	}

	remaining := annualTaxable
	tax := decimal.Zero
	lower := decimal.Zero
	for _, slab := range slabs {
		taxableInSlab := remaining
		if slab.UpperBound != nil {
			width := slab.UpperBound.Sub(lower)
			if width.LessThan(taxableInSlab) {
				taxableInSlab = width
			}
			lower = *slab.UpperBound
		}
		if taxableInSlab.IsPositive() {
			tax = tax.Add(taxableInSlab.Mul(slab.Rate))
			remaining = remaining.Sub(taxableInSlab)
		}
		if !remaining.IsPositive() {
			break
		}
	}

	if tax.IsNegative() {
		return decimal.Zero, nil
	}
	return tax, nil
}

// ComputeNetPay floors net pay at zero; deductions may never drive
// pay negative.
func ComputeNetPay(gross, totalDeductions decimal.Decimal) decimal.Decimal {
	net := gross.Sub(totalDeductions)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// ComputeSalary runs the full pipeline for one period: gross,
// statutory PF/ESI, annualized slab TDS, the optional monthly TDS
// override, total deductions, and net pay. Pure function - no I/O,
// safe to call on every keystroke of a live preview.
func ComputeSalary(e EarningsInput, r DeductionRates, slabs TaxSlabTable) (SalaryBreakdown, error) {
	overtimePay, gross := ComputeGross(e)
	stat := ComputeStatutory(e, gross, r)

	annualTaxable := AnnualTaxable(gross, stat.PFEmployee, r.ProfessionalTax.Decimal, stat.ESIEmployee)
	annualTax, err := ComputeAnnualTax(annualTaxable, slabs)
	if err != nil {
		return SalaryBreakdown{}, err
	}

	// The slab figure stays in the breakdown for preview even when the
	// override replaces it in the final net pay.
	tdsMonthly := annualTax.Div(twelve)
	if r.TDSMonthlyOverride.Decimal.IsPositive() {
		tdsMonthly = r.TDSMonthlyOverride.Decimal
	}

	totalDeductions := stat.PFEmployee.
		Add(stat.ESIEmployee).
		Add(r.ProfessionalTax.Decimal).
		Add(r.LoanRecovery.Decimal).
		Add(tdsMonthly)

	return SalaryBreakdown{
		Earnings: EarningsBreakdown{
			Basic:            e.Basic.Decimal,
			HRA:              e.HRA.Decimal,
			Conveyance:       e.Conveyance.Decimal,
			Medical:          e.Medical.Decimal,
			SpecialAllowance: e.SpecialAllowance.Decimal,
			Bonus:            e.Bonus.Decimal,
			OtherBenefits:    e.OtherBenefits.Decimal,
			OvertimeHours:    e.OvertimeHours.Decimal,
			OvertimeRate:     e.OvertimeRate.Decimal,
			OvertimePay:      overtimePay,
			Gross:            gross,
		},
		Deductions: DeductionsBreakdown{
			PFEmployeePercent:  r.PFEmployeePercent.Decimal,
			PFEmployee:         stat.PFEmployee,
			PFEmployerPercent:  r.PFEmployerPercent.Decimal,
			PFEmployer:         stat.PFEmployer,
			ESIEmployeePercent: r.ESIEmployeePercent.Decimal,
			ESIEmployee:        stat.ESIEmployee,
			ESIEmployerPercent: r.ESIEmployerPercent.Decimal,
			ESIEmployer:        stat.ESIEmployer,
			ProfessionalTax:    r.ProfessionalTax.Decimal,
			LoanRecovery:       r.LoanRecovery.Decimal,
			TDSMonthly:         tdsMonthly,
			TotalDeductions:    totalDeductions,
		},
		AnnualTaxable: annualTaxable,
		AnnualTax:     annualTax,
		NetPay:        ComputeNetPay(gross, totalDeductions),
	}, nil
}

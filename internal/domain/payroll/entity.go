package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxSlab is one bracket of a progressive tax table. UpperBound is the
// cumulative annual-income cap of the bracket; nil means unbounded and
// is only valid on the last slab. Rate is a fraction in [0, 1].
type TaxSlab struct {
	UpperBound *decimal.Decimal `json:"upper_bound,omitempty"`
	Rate       decimal.Decimal  `json:"rate"`
}

// TaxSlabTable is an ordered slab sequence covering [0, ∞).
// The lower bound of slab i equals the upper bound of slab i-1; slab 0
// starts at zero.
type TaxSlabTable []TaxSlab

// EarningsInput carries the raw per-period earnings fields as typed
// into the salary form. All numeric fields parse leniently.
type EarningsInput struct {
	Basic            Amount `json:"basic"`
	HRA              Amount `json:"hra"`
	Conveyance       Amount `json:"conveyance"`
	Medical          Amount `json:"medical"`
	SpecialAllowance Amount `json:"special_allowance"`
	Bonus            Amount `json:"bonus"`
	OtherBenefits    Amount `json:"other_benefits"`
	OvertimeHours    Amount `json:"overtime_hours"`
	OvertimeRate     Amount `json:"overtime_rate"`
}

// DeductionRates carries the statutory percentages and flat monthly
// deductions applied against a period's earnings.
type DeductionRates struct {
	PFEmployeePercent  Percent `json:"pf_employee_percent"`
	PFEmployerPercent  Percent `json:"pf_employer_percent"`
	ESIEmployeePercent Percent `json:"esi_employee_percent"`
	ESIEmployerPercent Percent `json:"esi_employer_percent"`
	ProfessionalTax    Amount  `json:"professional_tax"`
	LoanRecovery       Amount  `json:"loan_recovery"`
	TDSMonthlyOverride Amount  `json:"tds_monthly_override"`
}

// EarningsBreakdown is the computed earnings block of a salary record.
type EarningsBreakdown struct {
	Basic            decimal.Decimal `json:"basic"`
	HRA              decimal.Decimal `json:"hra"`
	Conveyance       decimal.Decimal `json:"conveyance"`
	Medical          decimal.Decimal `json:"medical"`
	SpecialAllowance decimal.Decimal `json:"special_allowance"`
	Bonus            decimal.Decimal `json:"bonus"`
	OtherBenefits    decimal.Decimal `json:"other_benefits"`
	OvertimeHours    decimal.Decimal `json:"overtime_hours"`
	OvertimeRate     decimal.Decimal `json:"overtime_rate"`
	OvertimePay      decimal.Decimal `json:"overtime_pay"`
	Gross            decimal.Decimal `json:"gross"`
}

// DeductionsBreakdown is the computed deductions block of a salary
// record: the rates that were applied plus every derived amount.
type DeductionsBreakdown struct {
	PFEmployeePercent  decimal.Decimal `json:"pf_employee_percent"`
	PFEmployee         decimal.Decimal `json:"pf_employee"`
	PFEmployerPercent  decimal.Decimal `json:"pf_employer_percent"`
	PFEmployer         decimal.Decimal `json:"pf_employer"`
	ESIEmployeePercent decimal.Decimal `json:"esi_employee_percent"`
	ESIEmployee        decimal.Decimal `json:"esi_employee"`
	ESIEmployerPercent decimal.Decimal `json:"esi_employer_percent"`
	ESIEmployer        decimal.Decimal `json:"esi_employer"`
	ProfessionalTax    decimal.Decimal `json:"professional_tax"`
	LoanRecovery       decimal.Decimal `json:"loan_recovery"`
	TDSMonthly         decimal.Decimal `json:"tds_monthly"`
	TotalDeductions    decimal.Decimal `json:"total_deductions"`
}

// SalaryBreakdown is the full result of one engine run. AnnualTaxable
// and AnnualTax are kept for preview even when the TDS override wins.
type SalaryBreakdown struct {
	Earnings      EarningsBreakdown   `json:"earnings"`
	Deductions    DeductionsBreakdown `json:"deductions"`
	AnnualTaxable decimal.Decimal     `json:"annual_taxable"`
	AnnualTax     decimal.Decimal     `json:"annual_tax"`
	NetPay        decimal.Decimal     `json:"net_pay"`
}

// SalaryStatus enum
type SalaryStatus string

const (
	SalaryStatusDraft     SalaryStatus = "draft"
	SalaryStatusFinalized SalaryStatus = "finalized"
)

// SalaryRecord - one persisted breakdown per employee per period.
// Recomputation replaces the whole record; it never accumulates.
type SalaryRecord struct {
	ID           string
	EmployeeID   string
	Month        int
	Year         int
	AssignedDate time.Time
	Earnings     EarningsBreakdown
	Deductions   DeductionsBreakdown
	NetPay       decimal.Decimal
	Note         string
	Status       SalaryStatus
	AssignedBy   *string
	FinalizedBy  *string
	FinalizedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName  *string
	EmployeeEmail *string
}

// Policy - company-wide payroll configuration. The engine never reads
// this directly; the service extracts rates and slabs and passes them
// in explicitly so the same engine works across tenants and periods.
type Policy struct {
	ID                    string
	PFEmployeePercent     decimal.Decimal
	PFEmployerPercent     decimal.Decimal
	ESIEmployeePercent    decimal.Decimal
	ESIEmployerPercent    decimal.Decimal
	ProfessionalTax       decimal.Decimal
	TaxSlabs              TaxSlabTable
	WorkingDaysInMonth    int
	HalfDayFraction       decimal.Decimal
	PayForApprovedLeaves  bool
	PayForExpenses        bool
	FestivalHolidays      []time.Time
	InternationalHolidays []time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Rates returns the policy's statutory rates as engine input.
func (p Policy) Rates() DeductionRates {
	return DeductionRates{
		PFEmployeePercent:  NewPercent(p.PFEmployeePercent),
		PFEmployerPercent:  NewPercent(p.PFEmployerPercent),
		ESIEmployeePercent: NewPercent(p.ESIEmployeePercent),
		ESIEmployerPercent: NewPercent(p.ESIEmployerPercent),
		ProfessionalTax:    NewAmount(p.ProfessionalTax),
	}
}

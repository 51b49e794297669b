package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/staffium/payroll-backend-go/internal/pkg/validator"
)

// ========== SALARY DTOs ==========

type AssignSalaryRequest struct {
	EmployeeID   string          `json:"employee_id"`
	AssignedDate string          `json:"assigned_date"` // "2006-01-02"
	Earnings     EarningsInput   `json:"earnings"`
	Deductions   *DeductionRates `json:"deductions,omitempty"` // nil = policy rates
	Note         string          `json:"note,omitempty"`
}

func (r *AssignSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.AssignedDate) {
		errs = append(errs, validator.ValidationError{Field: "assigned_date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.AssignedDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "assigned_date", Message: "must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSalaryRequest struct {
	ID         string          `json:"-"`
	Earnings   EarningsInput   `json:"earnings"`
	Deductions *DeductionRates `json:"deductions,omitempty"` // nil = rates stored on the record
	Note       *string         `json:"note,omitempty"`
}

type PreviewSalaryRequest struct {
	Earnings   EarningsInput   `json:"earnings"`
	Deductions *DeductionRates `json:"deductions,omitempty"`
}

type FinalizeSalariesRequest struct {
	RecordIDs []string `json:"record_ids"`
}

func (r *FinalizeSalariesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "at least one record is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryFilter struct {
	Month      *int
	Year       *int
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}

type SalaryRecordResponse struct {
	ID            string              `json:"id"`
	EmployeeID    string              `json:"employee_id"`
	EmployeeName  string              `json:"employee_name,omitempty"`
	EmployeeEmail string              `json:"employee_email,omitempty"`
	AssignedDate  string              `json:"assigned_date"`
	Day           int                 `json:"day"`
	Month         int                 `json:"month"`
	Year          int                 `json:"year"`
	Earnings      EarningsBreakdown   `json:"earnings"`
	Deductions    DeductionsBreakdown `json:"deductions"`
	NetPay        decimal.Decimal     `json:"net_pay"`
	Note          string              `json:"note,omitempty"`
	Status        string              `json:"status"`
	AssignedBy    *string             `json:"assigned_by,omitempty"`
	FinalizedBy   *string             `json:"finalized_by,omitempty"`
}

type ListSalaryResponse struct {
	Data       []SalaryRecordResponse `json:"data"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}

type SalarySummaryResponse struct {
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	TotalEmployees  int             `json:"total_employees"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetPay     decimal.Decimal `json:"total_net_pay"`
	DraftCount      int             `json:"draft_count"`
	FinalizedCount  int             `json:"finalized_count"`
}

type SalaryBreakdownResponse struct {
	Earnings      EarningsBreakdown   `json:"earnings"`
	Deductions    DeductionsBreakdown `json:"deductions"`
	AnnualTaxable decimal.Decimal     `json:"annual_taxable"`
	AnnualTax     decimal.Decimal     `json:"annual_tax"`
	NetPay        decimal.Decimal     `json:"net_pay"`
}

// ========== POLICY DTOs ==========

type UpdatePolicyRequest struct {
	PFEmployeePercent     *Percent      `json:"pf_employee_percent,omitempty"`
	PFEmployerPercent     *Percent      `json:"pf_employer_percent,omitempty"`
	ESIEmployeePercent    *Percent      `json:"esi_employee_percent,omitempty"`
	ESIEmployerPercent    *Percent      `json:"esi_employer_percent,omitempty"`
	ProfessionalTax       *Amount       `json:"professional_tax,omitempty"`
	TaxSlabs              *TaxSlabTable `json:"tax_slabs,omitempty"`
	WorkingDaysInMonth    *int          `json:"working_days_in_month,omitempty"`
	HalfDayFraction       *Fraction     `json:"half_day_fraction,omitempty"`
	PayForApprovedLeaves  *bool         `json:"pay_for_approved_leaves,omitempty"`
	PayForExpenses        *bool         `json:"pay_for_expenses,omitempty"`
	FestivalHolidays      *[]string     `json:"festival_holidays,omitempty"`
	InternationalHolidays *[]string     `json:"international_holidays,omitempty"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	for _, pct := range []struct {
		field string
		value *Percent
	}{
		{"pf_employee_percent", r.PFEmployeePercent},
		{"pf_employer_percent", r.PFEmployerPercent},
		{"esi_employee_percent", r.ESIEmployeePercent},
		{"esi_employer_percent", r.ESIEmployerPercent},
	} {
		if pct.value != nil && pct.value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: pct.field, Message: "must be non-negative"})
		}
	}
	if r.ProfessionalTax != nil && r.ProfessionalTax.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "professional_tax", Message: "must be non-negative"})
	}
	if r.WorkingDaysInMonth != nil && (*r.WorkingDaysInMonth < 1 || *r.WorkingDaysInMonth > 31) {
		errs = append(errs, validator.ValidationError{Field: "working_days_in_month", Message: "must be between 1 and 31"})
	}
	if r.HalfDayFraction != nil && (r.HalfDayFraction.IsNegative() || r.HalfDayFraction.GreaterThan(oneFull)) {
		errs = append(errs, validator.ValidationError{Field: "half_day_fraction", Message: "must be between 0 and 1"})
	}
	for _, cal := range []struct {
		field string
		days  *[]string
	}{
		{"festival_holidays", r.FestivalHolidays},
		{"international_holidays", r.InternationalHolidays},
	} {
		if cal.days == nil {
			continue
		}
		for _, day := range *cal.days {
			if _, ok := validator.IsValidDate(day); !ok {
				errs = append(errs, validator.ValidationError{Field: cal.field, Message: "dates must be in YYYY-MM-DD format"})
				break
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PolicyResponse struct {
	ID                    string          `json:"id"`
	PFEmployeePercent     decimal.Decimal `json:"pf_employee_percent"`
	PFEmployerPercent     decimal.Decimal `json:"pf_employer_percent"`
	ESIEmployeePercent    decimal.Decimal `json:"esi_employee_percent"`
	ESIEmployerPercent    decimal.Decimal `json:"esi_employer_percent"`
	ProfessionalTax       decimal.Decimal `json:"professional_tax"`
	TaxSlabs              TaxSlabTable    `json:"tax_slabs"`
	WorkingDaysInMonth    int             `json:"working_days_in_month"`
	HalfDayFraction       decimal.Decimal `json:"half_day_fraction"`
	PayForApprovedLeaves  bool            `json:"pay_for_approved_leaves"`
	PayForExpenses        bool            `json:"pay_for_expenses"`
	FestivalHolidays      []string        `json:"festival_holidays"`
	InternationalHolidays []string        `json:"international_holidays"`
}

// ========== ROUNDING ==========

// Rounded returns a copy with every monetary amount rounded to two
// decimal places. Internal computation keeps full precision; only
// responses and persistence round.
func (e EarningsBreakdown) Rounded() EarningsBreakdown {
	e.Basic = e.Basic.Round(2)
	e.HRA = e.HRA.Round(2)
	e.Conveyance = e.Conveyance.Round(2)
	e.Medical = e.Medical.Round(2)
	e.SpecialAllowance = e.SpecialAllowance.Round(2)
	e.Bonus = e.Bonus.Round(2)
	e.OtherBenefits = e.OtherBenefits.Round(2)
	e.OvertimePay = e.OvertimePay.Round(2)
	e.Gross = e.Gross.Round(2)
	return e
}

func (d DeductionsBreakdown) Rounded() DeductionsBreakdown {
	d.PFEmployee = d.PFEmployee.Round(2)
	d.PFEmployer = d.PFEmployer.Round(2)
	d.ESIEmployee = d.ESIEmployee.Round(2)
	d.ESIEmployer = d.ESIEmployer.Round(2)
	d.ProfessionalTax = d.ProfessionalTax.Round(2)
	d.LoanRecovery = d.LoanRecovery.Round(2)
	d.TDSMonthly = d.TDSMonthly.Round(2)
	d.TotalDeductions = d.TotalDeductions.Round(2)
	return d
}

func (b SalaryBreakdown) Rounded() SalaryBreakdown {
	b.Earnings = b.Earnings.Rounded()
	b.Deductions = b.Deductions.Rounded()
	b.AnnualTaxable = b.AnnualTaxable.Round(2)
	b.AnnualTax = b.AnnualTax.Round(2)
	b.NetPay = b.NetPay.Round(2)
	return b
}

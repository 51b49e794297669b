package expense

import (
	"github.com/shopspring/decimal"

	"github.com/staffium/payroll-backend-go/internal/domain/payroll"
	"github.com/staffium/payroll-backend-go/internal/pkg/validator"
)

type SubmitExpenseRequest struct {
	EmployeeID  string         `json:"employee_id"`
	Title       string         `json:"title"`
	Category    string         `json:"category"`
	Amount      payroll.Amount `json:"amount"`
	ExpenseDate string         `json:"expense_date"` // "2006-01-02"
	Note        *string        `json:"note,omitempty"`
}

func (r *SubmitExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if _, ok := validator.IsValidDate(r.ExpenseDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "expense_date", Message: "must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProcessExpenseRequest struct {
	ID            string  `json:"-"`
	Approve       bool    `json:"-"`
	AdminResponse *string `json:"admin_response,omitempty"`
}

type ExpenseFilter struct {
	EmployeeID *string
	Status     *string
}

type ExpenseResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	Title         string          `json:"title"`
	Category      string          `json:"category,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	ExpenseDate   string          `json:"expense_date"`
	Note          *string         `json:"note,omitempty"`
	Status        string          `json:"status"`
	AdminResponse *string         `json:"admin_response,omitempty"`
	ProcessedBy   *string         `json:"processed_by,omitempty"`
}

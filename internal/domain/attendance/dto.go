package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/staffium/payroll-backend-go/internal/pkg/validator"
)

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // "2006-01-02"
	Status     string  `json:"status"`
	Note       *string `json:"note,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if !validator.IsInSlice(r.Status, []string{string(StatusPresent), string(StatusAbsent), string(StatusHalfDay)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'present', 'absent' or 'half_day'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	Note         *string `json:"note,omitempty"`
}

type MonthSummaryResponse struct {
	EmployeeID  string          `json:"employee_id"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	PresentDays int             `json:"present_days"`
	HalfDays    int             `json:"half_days"`
	AbsentDays  int             `json:"absent_days"`
	Holidays    int             `json:"holidays"`
	PayableDays decimal.Decimal `json:"payable_days"`
}

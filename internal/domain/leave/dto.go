package leave

import (
	"github.com/staffium/payroll-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"` // "2006-01-02"
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "is required"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProcessLeaveRequest struct {
	ID            string  `json:"-"`
	Approve       bool    `json:"-"`
	AdminResponse *string `json:"admin_response,omitempty"`
}

type LeaveFilter struct {
	EmployeeID *string
	Status     *string
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	Type          string  `json:"type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Reason        string  `json:"reason,omitempty"`
	Status        string  `json:"status"`
	AdminResponse *string `json:"admin_response,omitempty"`
	ProcessedBy   *string `json:"processed_by,omitempty"`
}

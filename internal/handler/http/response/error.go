package response

import (
	"errors"
	"net/http"

	"github.com/staffium/payroll-backend-go/internal/domain/attendance"
	"github.com/staffium/payroll-backend-go/internal/domain/employee"
	"github.com/staffium/payroll-backend-go/internal/domain/expense"
	"github.com/staffium/payroll-backend-go/internal/domain/leave"
	"github.com/staffium/payroll-backend-go/internal/domain/payroll"
	"github.com/staffium/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidTaxSlabs):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid salary period", nil)
	case errors.Is(err, payroll.ErrEmployeeNotSelected):
		BadRequest(w, "Employee must be selected before assigning salary", nil)
	case errors.Is(err, payroll.ErrPolicyNotFound):
		NotFound(w, "Payroll policy not found")
	case errors.Is(err, payroll.ErrSalaryRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, payroll.ErrSalaryRecordFinalized):
		Conflict(w, "Salary record already finalized")
	case errors.Is(err, payroll.ErrCannotDeleteFinalized):
		Conflict(w, "Cannot delete a finalized salary record")
	case errors.Is(err, payroll.ErrNothingToFinalize):
		Conflict(w, "No draft salary records to finalize")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrCodeExists):
		Conflict(w, "Employee code already exists")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Invalid attendance status", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Leave end date before start date", nil)

	// Expense domain errors
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")
	case errors.Is(err, expense.ErrExpenseAlreadyProcessed):
		Conflict(w, "Expense already processed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

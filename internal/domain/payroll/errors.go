package payroll

import "errors"

var (
	ErrInvalidTaxSlabs       = errors.New("invalid tax slab table")
	ErrPolicyNotFound        = errors.New("payroll policy not found")
	ErrSalaryRecordNotFound  = errors.New("salary record not found")
	ErrSalaryRecordFinalized = errors.New("salary record already finalized, cannot modify")
	ErrInvalidPeriod         = errors.New("invalid salary period")
	ErrEmployeeNotSelected   = errors.New("employee must be selected before assigning salary")
	ErrNothingToFinalize     = errors.New("no salary records to finalize")
	ErrCannotDeleteFinalized = errors.New("cannot delete finalized salary record")
)

package payroll

import "context"

// SalaryRepository defines data access for salary records.
type SalaryRepository interface {
	UpsertSalaryRecord(ctx context.Context, record SalaryRecord) (SalaryRecord, error)
	GetSalaryRecordByID(ctx context.Context, id string) (SalaryRecord, error)
	GetSalaryRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (SalaryRecord, error)
	ListSalaryRecords(ctx context.Context, filter SalaryFilter) ([]SalaryRecord, int64, error)
	FinalizeSalaryRecords(ctx context.Context, ids []string, finalizedBy string) error
	DeleteSalaryRecord(ctx context.Context, id string) error
	GetSalarySummary(ctx context.Context, month, year int) (SalarySummaryResponse, error)
}

// PolicyRepository defines data access for the payroll policy.
type PolicyRepository interface {
	GetPolicy(ctx context.Context) (Policy, error)
	UpdatePolicy(ctx context.Context, policy Policy) (Policy, error)
}

package payroll

import "context"

// SalaryService covers salary assignment, update, preview, listing,
// and finalization plus the payroll policy endpoints.
type SalaryService interface {
	Assign(ctx context.Context, req AssignSalaryRequest) (SalaryRecordResponse, error)
	Update(ctx context.Context, req UpdateSalaryRequest) (SalaryRecordResponse, error)
	Preview(ctx context.Context, req PreviewSalaryRequest) (SalaryBreakdownResponse, error)
	Get(ctx context.Context, id string) (SalaryRecordResponse, error)
	List(ctx context.Context, filter SalaryFilter) (ListSalaryResponse, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (SalaryRecordResponse, error)
	Finalize(ctx context.Context, req FinalizeSalariesRequest) error
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, month, year int) (SalarySummaryResponse, error)

	GetPolicy(ctx context.Context) (PolicyResponse, error)
	UpdatePolicy(ctx context.Context, req UpdatePolicyRequest) (PolicyResponse, error)
}

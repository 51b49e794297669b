package leave

import "context"

type LeaveRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status Status, adminResponse *string, processedBy string) error
}

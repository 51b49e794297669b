package leave

import "context"

type LeaveService interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveResponse, error)
	Process(ctx context.Context, req ProcessLeaveRequest) (LeaveResponse, error)
}

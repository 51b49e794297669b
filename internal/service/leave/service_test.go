package leave

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffium/payroll-backend-go/internal/domain/employee"
	"github.com/staffium/payroll-backend-go/internal/domain/leave"
)

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
	nextID   int
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	req.ID = fmt.Sprintf("leave-%d", f.nextID)
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		out = append(out, req)
	}
	return out, nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, id string, status leave.Status, adminResponse *string, processedBy string) error {
	req, ok := f.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	req.Status = status
	req.AdminResponse = adminResponse
	req.ProcessedBy = &processedBy
	f.requests[id] = req
	return nil
}

type fakeEmployeeRepo struct{}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id != "emp-1" {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, Name: "Asha Rao", IsActive: true}, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) SoftDelete(ctx context.Context, id string) error {
	return nil
}

func newTestService(t *testing.T) (leave.LeaveService, context.Context) {
	t.Helper()

	svc := NewLeaveService(nil, &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}, &fakeEmployeeRepo{})

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"user_id": "admin-1", "is_admin": true})
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	return svc, ctx
}

func TestApplyAndApprove(t *testing.T) {
	svc, ctx := newTestService(t)

	applied, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		EmployeeID: "emp-1",
		Type:       "casual",
		StartDate:  "2026-04-01",
		EndDate:    "2026-04-03",
		Reason:     "family function",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", applied.Status)

	note := "enjoy"
	processed, err := svc.Process(ctx, leave.ProcessLeaveRequest{
		ID:            applied.ID,
		Approve:       true,
		AdminResponse: &note,
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", processed.Status)
	require.NotNil(t, processed.ProcessedBy)
	assert.Equal(t, "admin-1", *processed.ProcessedBy)
}

func TestProcessTwiceRefused(t *testing.T) {
	svc, ctx := newTestService(t)

	applied, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		EmployeeID: "emp-1",
		Type:       "sick",
		StartDate:  "2026-04-01",
		EndDate:    "2026-04-01",
	})
	require.NoError(t, err)

	_, err = svc.Process(ctx, leave.ProcessLeaveRequest{ID: applied.ID, Approve: false})
	require.NoError(t, err)

	_, err = svc.Process(ctx, leave.ProcessLeaveRequest{ID: applied.ID, Approve: true})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestApplyInvalidRange(t *testing.T) {
	svc, ctx := newTestService(t)

	_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		EmployeeID: "emp-1",
		Type:       "casual",
		StartDate:  "2026-04-05",
		EndDate:    "2026-04-01",
	})
	require.Error(t, err)
}

package leave

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffium/payroll-backend-go/internal/domain/employee"
	"github.com/staffium/payroll-backend-go/internal/domain/leave"
	"github.com/staffium/payroll-backend-go/internal/pkg/database"
	"github.com/staffium/payroll-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	db           *database.DB
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
}

func NewLeaveService(
	db *database.DB,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:           db,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
	}
}

func getUserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	return toLeaveResponse(created), nil
}

func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveResponse, error) {
	rows, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]leave.LeaveResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toLeaveResponse(row))
	}
	return out, nil
}

func (s *LeaveServiceImpl) Process(ctx context.Context, req leave.ProcessLeaveRequest) (leave.LeaveResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := s.leaveRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	status := leave.StatusRejected
	if req.Approve {
		status = leave.StatusApproved
	}

	if err := s.leaveRepo.UpdateStatus(ctx, req.ID, status, req.AdminResponse, userID); err != nil {
		return leave.LeaveResponse{}, err
	}

	processed, err := s.leaveRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return toLeaveResponse(processed), nil
}

func toLeaveResponse(req leave.LeaveRequest) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:            req.ID,
		EmployeeID:    req.EmployeeID,
		Type:          req.Type,
		StartDate:     req.StartDate.Format("2006-01-02"),
		EndDate:       req.EndDate.Format("2006-01-02"),
		Reason:        req.Reason,
		Status:        string(req.Status),
		AdminResponse: req.AdminResponse,
		ProcessedBy:   req.ProcessedBy,
	}
	if req.EmployeeName != nil {
		resp.EmployeeName = *req.EmployeeName
	}
	return resp
}

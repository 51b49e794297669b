package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffium/payroll-backend-go/internal/domain/leave"
	"github.com/staffium/payroll-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	query := `
		INSERT INTO leave_requests (id, employee_id, type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, type, start_date, end_date, reason, status,
			admin_response, processed_by, processed_at, created_at, updated_at
	`

	var l leave.LeaveRequest
	err := q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.Type, req.StartDate, req.EndDate, req.Reason, req.Status,
	).Scan(
		&l.ID, &l.EmployeeID, &l.Type, &l.StartDate, &l.EndDate, &l.Reason, &l.Status,
		&l.AdminResponse, &l.ProcessedBy, &l.ProcessedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return l, nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.type, l.start_date, l.end_date, l.reason, l.status,
			   l.admin_response, l.processed_by, l.processed_at, l.created_at, l.updated_at,
			   e.name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	var l leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.EmployeeID, &l.Type, &l.StartDate, &l.EndDate, &l.Reason, &l.Status,
		&l.AdminResponse, &l.ProcessedBy, &l.ProcessedAt, &l.CreatedAt, &l.UpdatedAt,
		&l.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return l, nil
}

func (r *leaveRepository) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.type, l.start_date, l.end_date, l.reason, l.status,
			   l.admin_response, l.processed_by, l.processed_at, l.created_at, l.updated_at,
			   e.name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil {
		query += " AND l.employee_id = $" + strconv.Itoa(argPos)
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Status != nil {
		query += " AND l.status = $" + strconv.Itoa(argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	query += " ORDER BY l.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var out []leave.LeaveRequest
	for rows.Next() {
		var l leave.LeaveRequest
		if err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.Type, &l.StartDate, &l.EndDate, &l.Reason, &l.Status,
			&l.AdminResponse, &l.ProcessedBy, &l.ProcessedAt, &l.CreatedAt, &l.UpdatedAt,
			&l.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return out, nil
}

func (r *leaveRepository) UpdateStatus(ctx context.Context, id string, status leave.Status, adminResponse *string, processedBy string) error {
	q := GetQuerier(ctx, r.db)

	// Only pending requests transition; processing twice is a conflict
	// surfaced by the service before this runs.
	query := `
		UPDATE leave_requests
		SET status = $1, admin_response = $2, processed_by = $3, processed_at = NOW(), updated_at = NOW()
		WHERE id = $4 AND status = $5
	`

	tag, err := q.Exec(ctx, query, status, adminResponse, processedBy, id, leave.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to process leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	return nil
}

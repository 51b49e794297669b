package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/staffium/payroll-backend-go/internal/domain/attendance"
	"github.com/staffium/payroll-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	if att.ID == "" {
		att.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendances (id, employee_id, date, status, note)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status = EXCLUDED.status,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, employee_id, date, status, note, created_at, updated_at
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, att.ID, att.EmployeeID, att.Date, att.Status, att.Note).Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.Note, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) ListByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.date, a.status, a.note, a.created_at, a.updated_at, e.name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
		  AND EXTRACT(MONTH FROM a.date) = $2
		  AND EXTRACT(YEAR FROM a.date) = $3
		ORDER BY a.date
	`

	rows, err := q.Query(ctx, query, employeeID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var out []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.Note, &a.CreatedAt, &a.UpdatedAt, &a.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return out, nil
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.date, a.status, a.note, a.created_at, a.updated_at, e.name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.date = $1
		ORDER BY e.name
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	var out []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.Note, &a.CreatedAt, &a.UpdatedAt, &a.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return out, nil
}

func (r *attendanceRepository) GetMonthSummary(ctx context.Context, employeeID string, month, year int) (attendance.MonthSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'half_day'),
			COUNT(*) FILTER (WHERE status = 'absent')
		FROM attendances
		WHERE employee_id = $1
		  AND EXTRACT(MONTH FROM date) = $2
		  AND EXTRACT(YEAR FROM date) = $3
	`

	summary := attendance.MonthSummary{EmployeeID: employeeID, Month: month, Year: year}
	err := q.QueryRow(ctx, query, employeeID, month, year).Scan(
		&summary.PresentDays, &summary.HalfDays, &summary.AbsentDays,
	)
	if err != nil {
		return attendance.MonthSummary{}, fmt.Errorf("failed to get attendance summary: %w", err)
	}

	return summary, nil
}

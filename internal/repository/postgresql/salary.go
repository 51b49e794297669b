package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffium/payroll-backend-go/internal/domain/payroll"
	"github.com/staffium/payroll-backend-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) payroll.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `
	s.id, s.employee_id, s.month, s.year, s.assigned_date,
	s.earnings, s.deductions, s.net_pay, s.note, s.status,
	s.assigned_by, s.finalized_by, s.finalized_at, s.created_at, s.updated_at,
	e.name AS employee_name, e.email AS employee_email
`

func scanSalaryRecord(row pgx.Row) (payroll.SalaryRecord, error) {
	var s payroll.SalaryRecord
	var earningsJSON, deductionsJSON []byte

	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.Month, &s.Year, &s.AssignedDate,
		&earningsJSON, &deductionsJSON, &s.NetPay, &s.Note, &s.Status,
		&s.AssignedBy, &s.FinalizedBy, &s.FinalizedAt, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName, &s.EmployeeEmail,
	)
	if err != nil {
		return payroll.SalaryRecord{}, err
	}

	if err := json.Unmarshal(earningsJSON, &s.Earnings); err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to decode earnings: %w", err)
	}
	if err := json.Unmarshal(deductionsJSON, &s.Deductions); err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to decode deductions: %w", err)
	}

	return s, nil
}

func (r *salaryRepository) UpsertSalaryRecord(ctx context.Context, record payroll.SalaryRecord) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	earningsJSON, err := json.Marshal(record.Earnings)
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to encode earnings: %w", err)
	}
	deductionsJSON, err := json.Marshal(record.Deductions)
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to encode deductions: %w", err)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	// One record per employee per period; a draft upsert replaces the
	// previous breakdown wholesale. Finalized rows are guarded in the
	// service before this runs.
	query := `
		INSERT INTO salary_records (
			id, employee_id, month, year, assigned_date,
			earnings, deductions, net_pay, note, status, assigned_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (employee_id, month, year) DO UPDATE SET
			assigned_date = EXCLUDED.assigned_date,
			earnings = EXCLUDED.earnings,
			deductions = EXCLUDED.deductions,
			net_pay = EXCLUDED.net_pay,
			note = EXCLUDED.note,
			assigned_by = EXCLUDED.assigned_by,
			updated_at = NOW()
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Month, record.Year, record.AssignedDate,
		earningsJSON, deductionsJSON, record.NetPay, record.Note, record.Status, record.AssignedBy,
	).Scan(&id)
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to upsert salary record: %w", err)
	}

	return r.GetSalaryRecordByID(ctx, id)
}

func (r *salaryRepository) GetSalaryRecordByID(ctx context.Context, id string) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM salary_records s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1
	`

	record, err := scanSalaryRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return record, nil
}

func (r *salaryRepository) GetSalaryRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM salary_records s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1 AND s.month = $2 AND s.year = $3
	`

	record, err := scanSalaryRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to get salary record by period: %w", err)
	}

	return record, nil
}

func (r *salaryRepository) ListSalaryRecords(ctx context.Context, filter payroll.SalaryFilter) ([]payroll.SalaryRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filter.Month != nil {
		where += " AND s.month = $" + strconv.Itoa(argPos)
		args = append(args, *filter.Month)
		argPos++
	}
	if filter.Year != nil {
		where += " AND s.year = $" + strconv.Itoa(argPos)
		args = append(args, *filter.Year)
		argPos++
	}
	if filter.EmployeeID != nil {
		where += " AND s.employee_id = $" + strconv.Itoa(argPos)
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Status != nil {
		where += " AND s.status = $" + strconv.Itoa(argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM salary_records s
		JOIN employees e ON e.id = s.employee_id` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary records: %w", err)
	}

	query := `
		SELECT ` + salaryColumns + `
		FROM salary_records s
		JOIN employees e ON e.id = s.employee_id` + where + `
		ORDER BY s.year DESC, s.month DESC, e.name ASC
		LIMIT $` + strconv.Itoa(argPos) + ` OFFSET $` + strconv.Itoa(argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []payroll.SalaryRecord
	for rows.Next() {
		record, err := scanSalaryRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate salary records: %w", err)
	}

	return records, total, nil
}

func (r *salaryRepository) FinalizeSalaryRecords(ctx context.Context, ids []string, finalizedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_records
		SET status = $1, finalized_by = $2, finalized_at = NOW(), updated_at = NOW()
		WHERE id = ANY($3) AND status = $4
	`

	tag, err := q.Exec(ctx, query, payroll.SalaryStatusFinalized, finalizedBy, ids, payroll.SalaryStatusDraft)
	if err != nil {
		return fmt.Errorf("failed to finalize salary records: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrNothingToFinalize
	}

	return nil
}

func (r *salaryRepository) DeleteSalaryRecord(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salary_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSalaryRecordNotFound
	}

	return nil
}

func (r *salaryRepository) GetSalarySummary(ctx context.Context, month, year int) (payroll.SalarySummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM((earnings->>'gross')::numeric), 0),
			COALESCE(SUM((deductions->>'total_deductions')::numeric), 0),
			COALESCE(SUM(net_pay), 0),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COUNT(*) FILTER (WHERE status = 'finalized')
		FROM salary_records
		WHERE month = $1 AND year = $2
	`

	summary := payroll.SalarySummaryResponse{Month: month, Year: year}
	err := q.QueryRow(ctx, query, month, year).Scan(
		&summary.TotalEmployees,
		&summary.TotalGross,
		&summary.TotalDeductions,
		&summary.TotalNetPay,
		&summary.DraftCount,
		&summary.FinalizedCount,
	)
	if err != nil {
		return payroll.SalarySummaryResponse{}, fmt.Errorf("failed to get salary summary: %w", err)
	}

	return summary, nil
}

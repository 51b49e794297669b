package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffium/payroll-backend-go/internal/domain/expense"
	"github.com/staffium/payroll-backend-go/internal/pkg/database"
)

type expenseRepository struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, exp expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	if exp.ID == "" {
		exp.ID = uuid.New().String()
	}

	query := `
		INSERT INTO expenses (id, employee_id, title, category, amount, expense_date, note, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, employee_id, title, category, amount, expense_date, note, status,
			admin_response, processed_by, processed_at, created_at, updated_at
	`

	var e expense.Expense
	err := q.QueryRow(ctx, query,
		exp.ID, exp.EmployeeID, exp.Title, exp.Category, exp.Amount, exp.ExpenseDate, exp.Note, exp.Status,
	).Scan(
		&e.ID, &e.EmployeeID, &e.Title, &e.Category, &e.Amount, &e.ExpenseDate, &e.Note, &e.Status,
		&e.AdminResponse, &e.ProcessedBy, &e.ProcessedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}

	return e, nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT x.id, x.employee_id, x.title, x.category, x.amount, x.expense_date, x.note, x.status,
			   x.admin_response, x.processed_by, x.processed_at, x.created_at, x.updated_at,
			   e.name
		FROM expenses x
		JOIN employees e ON e.id = x.employee_id
		WHERE x.id = $1
	`

	var e expense.Expense
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.EmployeeID, &e.Title, &e.Category, &e.Amount, &e.ExpenseDate, &e.Note, &e.Status,
		&e.AdminResponse, &e.ProcessedBy, &e.ProcessedAt, &e.CreatedAt, &e.UpdatedAt,
		&e.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, fmt.Errorf("failed to get expense: %w", err)
	}

	return e, nil
}

func (r *expenseRepository) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT x.id, x.employee_id, x.title, x.category, x.amount, x.expense_date, x.note, x.status,
			   x.admin_response, x.processed_by, x.processed_at, x.created_at, x.updated_at,
			   e.name
		FROM expenses x
		JOIN employees e ON e.id = x.employee_id
		WHERE 1=1
	`
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil {
		query += " AND x.employee_id = $" + strconv.Itoa(argPos)
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Status != nil {
		query += " AND x.status = $" + strconv.Itoa(argPos)
		args = append(args, *filter.Status)
		argPos++
	}
	query += " ORDER BY x.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var out []expense.Expense
	for rows.Next() {
		var e expense.Expense
		if err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.Title, &e.Category, &e.Amount, &e.ExpenseDate, &e.Note, &e.Status,
			&e.AdminResponse, &e.ProcessedBy, &e.ProcessedAt, &e.CreatedAt, &e.UpdatedAt,
			&e.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return out, nil
}

func (r *expenseRepository) UpdateStatus(ctx context.Context, id string, status expense.Status, adminResponse *string, processedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE expenses
		SET status = $1, admin_response = $2, processed_by = $3, processed_at = NOW(), updated_at = NOW()
		WHERE id = $4 AND status = $5
	`

	tag, err := q.Exec(ctx, query, status, adminResponse, processedBy, id, expense.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to process expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseAlreadyProcessed
	}

	return nil
}

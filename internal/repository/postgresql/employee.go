package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffium/payroll-backend-go/internal/domain/employee"
	"github.com/staffium/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	if emp.ID == "" {
		emp.ID = uuid.New().String()
	}

	query := `
		INSERT INTO employees (id, code, name, email, mobile, address, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, code, name, email, mobile, address, is_active, created_at, updated_at
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query,
		emp.ID, emp.Code, emp.Name, emp.Email, emp.Mobile, emp.Address, emp.IsActive,
	).Scan(
		&e.ID, &e.Code, &e.Name, &e.Email, &e.Mobile, &e.Address, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_email") {
			return employee.Employee{}, employee.ErrEmailExists
		}
		if strings.Contains(err.Error(), "uk_employee_code") {
			return employee.Employee{}, employee.ErrCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, email, mobile, address, is_active, created_at, updated_at
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Code, &e.Name, &e.Email, &e.Mobile, &e.Address, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, email, mobile, address, is_active, created_at, updated_at
		FROM employees
		WHERE is_active = TRUE AND deleted_at IS NULL
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.Code, &e.Name, &e.Email, &e.Mobile, &e.Address, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET name = COALESCE($1, name),
			email = COALESCE($2, email),
			mobile = COALESCE($3, mobile),
			address = COALESCE($4, address),
			updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, req.Name, req.Email, req.Mobile, req.Address, req.ID)
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_email") {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET is_active = FALSE, deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

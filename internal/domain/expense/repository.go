package expense

import "context"

type ExpenseRepository interface {
	Create(ctx context.Context, exp Expense) (Expense, error)
	GetByID(ctx context.Context, id string) (Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]Expense, error)
	UpdateStatus(ctx context.Context, id string, status Status, adminResponse *string, processedBy string) error
}

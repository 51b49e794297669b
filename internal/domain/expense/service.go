package expense

import "context"

type ExpenseService interface {
	Submit(ctx context.Context, req SubmitExpenseRequest) (ExpenseResponse, error)
	List(ctx context.Context, filter ExpenseFilter) ([]ExpenseResponse, error)
	Process(ctx context.Context, req ProcessExpenseRequest) (ExpenseResponse, error)
}

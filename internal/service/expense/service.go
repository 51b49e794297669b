package expense

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffium/payroll-backend-go/internal/domain/employee"
	"github.com/staffium/payroll-backend-go/internal/domain/expense"
	"github.com/staffium/payroll-backend-go/internal/pkg/database"
	"github.com/staffium/payroll-backend-go/internal/pkg/validator"
)

type ExpenseServiceImpl struct {
	db           *database.DB
	expenseRepo  expense.ExpenseRepository
	employeeRepo employee.EmployeeRepository
}

func NewExpenseService(
	db *database.DB,
	expenseRepo expense.ExpenseRepository,
	employeeRepo employee.EmployeeRepository,
) expense.ExpenseService {
	return &ExpenseServiceImpl{
		db:           db,
		expenseRepo:  expenseRepo,
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

func (s *ExpenseServiceImpl) Submit(ctx context.Context, req expense.SubmitExpenseRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return expense.ExpenseResponse{}, err
	}

	expenseDate, _ := validator.IsValidDate(req.ExpenseDate)
	created, err := s.expenseRepo.Create(ctx, expense.Expense{
		EmployeeID:  req.EmployeeID,
		Title:       req.Title,
		Category:    req.Category,
		Amount:      req.Amount.Decimal.Round(2),
		ExpenseDate: expenseDate,
		Note:        req.Note,
		Status:      expense.StatusPending,
	})
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	return toExpenseResponse(created), nil
}

func (s *ExpenseServiceImpl) List(ctx context.Context, filter expense.ExpenseFilter) ([]expense.ExpenseResponse, error) {
	rows, err := s.expenseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]expense.ExpenseResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toExpenseResponse(row))
	}
	return out, nil
}

func (s *ExpenseServiceImpl) Process(ctx context.Context, req expense.ProcessExpenseRequest) (expense.ExpenseResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	exp, err := s.expenseRepo.GetByID(ctx, req.ID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	if exp.Status != expense.StatusPending {
		return expense.ExpenseResponse{}, expense.ErrExpenseAlreadyProcessed
	}

	status := expense.StatusRejected
	if req.Approve {
		status = expense.StatusApproved
	}

	if err := s.expenseRepo.UpdateStatus(ctx, req.ID, status, req.AdminResponse, userID); err != nil {
		return expense.ExpenseResponse{}, err
	}

	processed, err := s.expenseRepo.GetByID(ctx, req.ID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return toExpenseResponse(processed), nil
}

func toExpenseResponse(exp expense.Expense) expense.ExpenseResponse {
	resp := expense.ExpenseResponse{
		ID:            exp.ID,
		EmployeeID:    exp.EmployeeID,
		Title:         exp.Title,
		Category:      exp.Category,
		Amount:        exp.Amount,
		ExpenseDate:   exp.ExpenseDate.Format("2006-01-02"),
		Note:          exp.Note,
		Status:        string(exp.Status),
		AdminResponse: exp.AdminResponse,
		ProcessedBy:   exp.ProcessedBy,
	}
	if exp.EmployeeName != nil {
		resp.EmployeeName = *exp.EmployeeName
	}
	return resp
}

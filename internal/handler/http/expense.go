package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staffium/payroll-backend-go/internal/domain/expense"
	"github.com/staffium/payroll-backend-go/internal/handler/http/response"
)

type ExpenseHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type ExpenseHandlerImpl struct {
	expenseService expense.ExpenseService
}

func NewExpenseHandler(expenseService expense.ExpenseService) ExpenseHandler {
	return &ExpenseHandlerImpl{expenseService: expenseService}
}

func (h *ExpenseHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req expense.SubmitExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit expense decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	exp, err := h.expenseService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expense submitted successfully", exp)
}

func (h *ExpenseHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := expense.ExpenseFilter{}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}

	expenses, err := h.expenseService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, expenses)
}

func (h *ExpenseHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, true, "Expense approved")
}

func (h *ExpenseHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.process(w, r, false, "Expense rejected")
}

func (h *ExpenseHandlerImpl) process(w http.ResponseWriter, r *http.Request, approve bool, message string) {
	var req expense.ProcessExpenseRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("Process expense decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.ID = chi.URLParam(r, "id")
	req.Approve = approve

	exp, err := h.expenseService.Process(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, exp)
}

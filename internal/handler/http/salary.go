package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/staffium/payroll-backend-go/internal/domain/payroll"
	"github.com/staffium/payroll-backend-go/internal/handler/http/response"
)

type SalaryHandler interface {
	Assign(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByEmployeePeriod(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)

	GetPolicy(w http.ResponseWriter, r *http.Request)
	UpdatePolicy(w http.ResponseWriter, r *http.Request)
}

type SalaryHandlerImpl struct {
	salaryService payroll.SalaryService
}

func NewSalaryHandler(salaryService payroll.SalaryService) SalaryHandler {
	return &SalaryHandlerImpl{salaryService: salaryService}
}

func (h *SalaryHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req payroll.AssignSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Assign decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.salaryService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary assigned successfully", record)
}

func (h *SalaryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	record, err := h.salaryService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary updated successfully", record)
}

func (h *SalaryHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req payroll.PreviewSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Preview decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	breakdown, err := h.salaryService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, breakdown)
}

func (h *SalaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary record ID is required", nil)
		return
	}

	record, err := h.salaryService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

func (h *SalaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := payroll.SalaryFilter{}

	if v := r.URL.Query().Get("month"); v != "" {
		if month, err := strconv.Atoi(v); err == nil {
			filter.Month = &month
		}
	}
	if v := r.URL.Query().Get("year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			filter.Year = &year
		}
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.salaryService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int(list.TotalCount) / list.Limit
	if int(list.TotalCount)%list.Limit > 0 {
		totalPages++
	}
	response.SuccessWithMeta(w, list.Data, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: totalPages,
	})
}

func (h *SalaryHandlerImpl) GetByEmployeePeriod(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	record, err := h.salaryService.GetByEmployeePeriod(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

func (h *SalaryHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	var req payroll.FinalizeSalariesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Finalize decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.salaryService.Finalize(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary records finalized successfully", nil)
}

func (h *SalaryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary record ID is required", nil)
		return
	}

	if err := h.salaryService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary record deleted successfully", nil)
}

func (h *SalaryHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	summary, err := h.salaryService.Summary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

func (h *SalaryHandlerImpl) GetPolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.salaryService.GetPolicy(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, policy)
}

func (h *SalaryHandlerImpl) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	policy, err := h.salaryService.UpdatePolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll policy updated successfully", policy)
}

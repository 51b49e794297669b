package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffium/payroll-backend-go/internal/domain/expense"
	"github.com/staffium/payroll-backend-go/internal/domain/leave"
	"github.com/staffium/payroll-backend-go/internal/domain/payroll"
	"github.com/staffium/payroll-backend-go/internal/pkg/validator"
)

func TestHandleErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation errors", validator.ValidationErrors{{Field: "basic", Message: "bad"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid tax slabs", payroll.ErrInvalidTaxSlabs, http.StatusBadRequest, "BAD_REQUEST"},
		{"wrapped invalid tax slabs", errors.New("context: " + payroll.ErrInvalidTaxSlabs.Error()), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"salary not found", payroll.ErrSalaryRecordNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"salary finalized", payroll.ErrSalaryRecordFinalized, http.StatusConflict, "CONFLICT"},
		{"leave already processed", leave.ErrLeaveRequestAlreadyProcessed, http.StatusConflict, "CONFLICT"},
		{"expense already processed", expense.ErrExpenseAlreadyProcessed, http.StatusConflict, "CONFLICT"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleErrorValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "employee_id", Message: "is required"},
		{Field: "assigned_date", Message: "must be in YYYY-MM-DD format"},
	})

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "is required", body.Error.Details["employee_id"])
	assert.Equal(t, "must be in YYYY-MM-DD format", body.Error.Details["assigned_date"])
}

func TestHandleErrorWrappedSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("slab table: %w", payroll.ErrInvalidTaxSlabs))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/staffium/payroll-backend-go/internal/domain/employee"
	"github.com/staffium/payroll-backend-go/internal/domain/payroll"
	"github.com/staffium/payroll-backend-go/internal/fixtures"
	"github.com/staffium/payroll-backend-go/internal/pkg/database"
	"github.com/staffium/payroll-backend-go/internal/pkg/validator"
	"github.com/staffium/payroll-backend-go/internal/repository/postgresql"
)

type SalaryServiceImpl struct {
	db           *database.DB
	salaryRepo   payroll.SalaryRepository
	policyRepo   payroll.PolicyRepository
	employeeRepo employee.EmployeeRepository
}

func NewSalaryService(
	db *database.DB,
	salaryRepo payroll.SalaryRepository,
	policyRepo payroll.PolicyRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.SalaryService {
	return &SalaryServiceImpl{
		db:           db,
		salaryRepo:   salaryRepo,
		policyRepo:   policyRepo,
		employeeRepo: employeeRepo,
	}
}

// Helper to get user_id from JWT context
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

// inTransaction runs fn with a transaction bound to the context so
// every repository call inside shares it. Without a pool the calls run
// directly, which the in-memory repositories rely on.
func (s *SalaryServiceImpl) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

// loadPolicy falls back to the seeded defaults when no policy row
// exists yet, so a fresh install can assign salaries immediately.
func (s *SalaryServiceImpl) loadPolicy(ctx context.Context) (payroll.Policy, error) {
	policy, err := s.policyRepo.GetPolicy(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrPolicyNotFound) {
			return fixtures.DefaultPolicy(), nil
		}
		return payroll.Policy{}, err
	}
	return policy, nil
}

// ========== SALARY ==========

func (s *SalaryServiceImpl) Assign(ctx context.Context, req payroll.AssignSalaryRequest) (payroll.SalaryRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryRecordResponse{}, err
	}

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.SalaryRecordResponse{}, payroll.ErrEmployeeNotSelected
		}
		return payroll.SalaryRecordResponse{}, err
	}

	policy, err := s.loadPolicy(ctx)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}

	rates := policy.Rates()
	if req.Deductions != nil {
		rates = *req.Deductions
	}

	breakdown, err := payroll.ComputeSalary(req.Earnings, rates, policy.TaxSlabs)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}
	breakdown = breakdown.Rounded()

	assignedDate, _ := validator.IsValidDate(req.AssignedDate)
	month := int(assignedDate.Month())
	year := assignedDate.Year()

	var saved payroll.SalaryRecord
	err = s.inTransaction(ctx, func(txCtx context.Context) error {
		// A finalized record for the same period blocks reassignment; a
		// draft gets replaced wholesale by the upsert.
		existing, err := s.salaryRepo.GetSalaryRecordByEmployeePeriod(txCtx, req.EmployeeID, month, year)
		if err != nil && !errors.Is(err, payroll.ErrSalaryRecordNotFound) {
			return err
		}
		if err == nil && existing.Status == payroll.SalaryStatusFinalized {
			return payroll.ErrSalaryRecordFinalized
		}

		saved, err = s.salaryRepo.UpsertSalaryRecord(txCtx, payroll.SalaryRecord{
			EmployeeID:   req.EmployeeID,
			Month:        month,
			Year:         year,
			AssignedDate: assignedDate,
			Earnings:     breakdown.Earnings,
			Deductions:   breakdown.Deductions,
			NetPay:       breakdown.NetPay,
			Note:         req.Note,
			Status:       payroll.SalaryStatusDraft,
			AssignedBy:   &userID,
		})
		return err
	})
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}

	return toSalaryRecordResponse(saved), nil
}

func (s *SalaryServiceImpl) Update(ctx context.Context, req payroll.UpdateSalaryRequest) (payroll.SalaryRecordResponse, error) {
	record, err := s.salaryRepo.GetSalaryRecordByID(ctx, req.ID)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}
	if record.Status == payroll.SalaryStatusFinalized {
		return payroll.SalaryRecordResponse{}, payroll.ErrSalaryRecordFinalized
	}

	policy, err := s.loadPolicy(ctx)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}

	// Deductions always recompute from the new earnings. Absent an
	// explicit rates block the record's stored rates carry over, with
	// the TDS override cleared so the slab figure wins again.
	rates := ratesFromBreakdown(record.Deductions)
	if req.Deductions != nil {
		rates = *req.Deductions
	}

	breakdown, err := payroll.ComputeSalary(req.Earnings, rates, policy.TaxSlabs)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}
	breakdown = breakdown.Rounded()

	record.Earnings = breakdown.Earnings
	record.Deductions = breakdown.Deductions
	record.NetPay = breakdown.NetPay
	if req.Note != nil {
		record.Note = *req.Note
	}

	saved, err := s.salaryRepo.UpsertSalaryRecord(ctx, record)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}

	return toSalaryRecordResponse(saved), nil
}

func (s *SalaryServiceImpl) Preview(ctx context.Context, req payroll.PreviewSalaryRequest) (payroll.SalaryBreakdownResponse, error) {
	policy, err := s.loadPolicy(ctx)
	if err != nil {
		return payroll.SalaryBreakdownResponse{}, err
	}

	rates := policy.Rates()
	if req.Deductions != nil {
		rates = *req.Deductions
	}

	breakdown, err := payroll.ComputeSalary(req.Earnings, rates, policy.TaxSlabs)
	if err != nil {
		return payroll.SalaryBreakdownResponse{}, err
	}
	breakdown = breakdown.Rounded()

	return payroll.SalaryBreakdownResponse{
		Earnings:      breakdown.Earnings,
		Deductions:    breakdown.Deductions,
		AnnualTaxable: breakdown.AnnualTaxable,
		AnnualTax:     breakdown.AnnualTax,
		NetPay:        breakdown.NetPay,
	}, nil
}

func (s *SalaryServiceImpl) Get(ctx context.Context, id string) (payroll.SalaryRecordResponse, error) {
	record, err := s.salaryRepo.GetSalaryRecordByID(ctx, id)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}
	return toSalaryRecordResponse(record), nil
}

func (s *SalaryServiceImpl) List(ctx context.Context, filter payroll.SalaryFilter) (payroll.ListSalaryResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.salaryRepo.ListSalaryRecords(ctx, filter)
	if err != nil {
		return payroll.ListSalaryResponse{}, err
	}

	data := make([]payroll.SalaryRecordResponse, 0, len(records))
	for _, record := range records {
		data = append(data, toSalaryRecordResponse(record))
	}

	return payroll.ListSalaryResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *SalaryServiceImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.SalaryRecordResponse, error) {
	if !validator.IsValidPeriod(month, year) {
		return payroll.SalaryRecordResponse{}, payroll.ErrInvalidPeriod
	}

	record, err := s.salaryRepo.GetSalaryRecordByEmployeePeriod(ctx, employeeID, month, year)
	if err != nil {
		return payroll.SalaryRecordResponse{}, err
	}
	return toSalaryRecordResponse(record), nil
}

func (s *SalaryServiceImpl) Finalize(ctx context.Context, req payroll.FinalizeSalariesRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.salaryRepo.FinalizeSalaryRecords(ctx, req.RecordIDs, userID)
}

func (s *SalaryServiceImpl) Delete(ctx context.Context, id string) error {
	record, err := s.salaryRepo.GetSalaryRecordByID(ctx, id)
	if err != nil {
		return err
	}
	if record.Status == payroll.SalaryStatusFinalized {
		return payroll.ErrCannotDeleteFinalized
	}

	return s.salaryRepo.DeleteSalaryRecord(ctx, id)
}

func (s *SalaryServiceImpl) Summary(ctx context.Context, month, year int) (payroll.SalarySummaryResponse, error) {
	if !validator.IsValidPeriod(month, year) {
		return payroll.SalarySummaryResponse{}, payroll.ErrInvalidPeriod
	}

	return s.salaryRepo.GetSalarySummary(ctx, month, year)
}

// ========== POLICY ==========

func (s *SalaryServiceImpl) GetPolicy(ctx context.Context) (payroll.PolicyResponse, error) {
	policy, err := s.loadPolicy(ctx)
	if err != nil {
		return payroll.PolicyResponse{}, err
	}
	return toPolicyResponse(policy), nil
}

func (s *SalaryServiceImpl) UpdatePolicy(ctx context.Context, req payroll.UpdatePolicyRequest) (payroll.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PolicyResponse{}, err
	}

	policy, err := s.loadPolicy(ctx)
	if err != nil {
		return payroll.PolicyResponse{}, err
	}

	if req.PFEmployeePercent != nil {
		policy.PFEmployeePercent = req.PFEmployeePercent.Decimal
	}
	if req.PFEmployerPercent != nil {
		policy.PFEmployerPercent = req.PFEmployerPercent.Decimal
	}
	if req.ESIEmployeePercent != nil {
		policy.ESIEmployeePercent = req.ESIEmployeePercent.Decimal
	}
	if req.ESIEmployerPercent != nil {
		policy.ESIEmployerPercent = req.ESIEmployerPercent.Decimal
	}
	if req.ProfessionalTax != nil {
		policy.ProfessionalTax = req.ProfessionalTax.Decimal
	}
	if req.TaxSlabs != nil {
		if err := req.TaxSlabs.Validate(); err != nil {
			return payroll.PolicyResponse{}, err
		}
		policy.TaxSlabs = *req.TaxSlabs
	}
	if req.WorkingDaysInMonth != nil {
		policy.WorkingDaysInMonth = *req.WorkingDaysInMonth
	}
	if req.HalfDayFraction != nil {
		policy.HalfDayFraction = req.HalfDayFraction.Decimal
	}
	if req.PayForApprovedLeaves != nil {
		policy.PayForApprovedLeaves = *req.PayForApprovedLeaves
	}
	if req.PayForExpenses != nil {
		policy.PayForExpenses = *req.PayForExpenses
	}
	if req.FestivalHolidays != nil {
		policy.FestivalHolidays = parseHolidayDates(*req.FestivalHolidays)
	}
	if req.InternationalHolidays != nil {
		policy.InternationalHolidays = parseHolidayDates(*req.InternationalHolidays)
	}

	saved, err := s.policyRepo.UpdatePolicy(ctx, policy)
	if err != nil {
		return payroll.PolicyResponse{}, err
	}

	return toPolicyResponse(saved), nil
}

// ========== HELPERS ==========

// ratesFromBreakdown rebuilds engine rates from a stored deductions
// block. The TDS override is not persisted separately, so a rate-less
// update always falls back to the slab computation.
func ratesFromBreakdown(d payroll.DeductionsBreakdown) payroll.DeductionRates {
	return payroll.DeductionRates{
		PFEmployeePercent:  payroll.NewPercent(d.PFEmployeePercent),
		PFEmployerPercent:  payroll.NewPercent(d.PFEmployerPercent),
		ESIEmployeePercent: payroll.NewPercent(d.ESIEmployeePercent),
		ESIEmployerPercent: payroll.NewPercent(d.ESIEmployerPercent),
		ProfessionalTax:    payroll.NewAmount(d.ProfessionalTax),
		LoanRecovery:       payroll.NewAmount(d.LoanRecovery),
	}
}

func toSalaryRecordResponse(record payroll.SalaryRecord) payroll.SalaryRecordResponse {
	resp := payroll.SalaryRecordResponse{
		ID:           record.ID,
		EmployeeID:   record.EmployeeID,
		AssignedDate: record.AssignedDate.Format("2006-01-02"),
		Day:          record.AssignedDate.Day(),
		Month:        record.Month,
		Year:         record.Year,
		Earnings:     record.Earnings,
		Deductions:   record.Deductions,
		NetPay:       record.NetPay,
		Note:         record.Note,
		Status:       string(record.Status),
		AssignedBy:   record.AssignedBy,
		FinalizedBy:  record.FinalizedBy,
	}
	if record.EmployeeName != nil {
		resp.EmployeeName = *record.EmployeeName
	}
	if record.EmployeeEmail != nil {
		resp.EmployeeEmail = *record.EmployeeEmail
	}
	return resp
}

func toPolicyResponse(policy payroll.Policy) payroll.PolicyResponse {
	return payroll.PolicyResponse{
		ID:                    policy.ID,
		PFEmployeePercent:     policy.PFEmployeePercent,
		PFEmployerPercent:     policy.PFEmployerPercent,
		ESIEmployeePercent:    policy.ESIEmployeePercent,
		ESIEmployerPercent:    policy.ESIEmployerPercent,
		ProfessionalTax:       policy.ProfessionalTax,
		TaxSlabs:              policy.TaxSlabs,
		WorkingDaysInMonth:    policy.WorkingDaysInMonth,
		HalfDayFraction:       policy.HalfDayFraction,
		PayForApprovedLeaves:  policy.PayForApprovedLeaves,
		PayForExpenses:        policy.PayForExpenses,
		FestivalHolidays:      formatHolidayDates(policy.FestivalHolidays),
		InternationalHolidays: formatHolidayDates(policy.InternationalHolidays),
	}
}

func parseHolidayDates(dates []string) []time.Time {
	result := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if parsed, ok := validator.IsValidDate(d); ok {
			result = append(result, parsed)
		}
	}
	return result
}

func formatHolidayDates(dates []time.Time) []string {
	result := make([]string, 0, len(dates))
	for _, d := range dates {
		result = append(result, d.Format("2006-01-02"))
	}
	return result
}

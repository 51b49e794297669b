package payroll

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffium/payroll-backend-go/internal/domain/employee"
	"github.com/staffium/payroll-backend-go/internal/domain/payroll"
)

// ========== FAKES ==========

type fakeSalaryRepo struct {
	records map[string]payroll.SalaryRecord
	nextID  int
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{records: make(map[string]payroll.SalaryRecord)}
}

func (f *fakeSalaryRepo) UpsertSalaryRecord(ctx context.Context, record payroll.SalaryRecord) (payroll.SalaryRecord, error) {
	if record.ID == "" {
		for id, existing := range f.records {
			if existing.EmployeeID == record.EmployeeID && existing.Month == record.Month && existing.Year == record.Year {
				record.ID = id
				break
			}
		}
	}
	if record.ID == "" {
		f.nextID++
		record.ID = fmt.Sprintf("rec-%d", f.nextID)
	}
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeSalaryRepo) GetSalaryRecordByID(ctx context.Context, id string) (payroll.SalaryRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
	}
	return record, nil
}

func (f *fakeSalaryRepo) GetSalaryRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.SalaryRecord, error) {
	for _, record := range f.records {
		if record.EmployeeID == employeeID && record.Month == month && record.Year == year {
			return record, nil
		}
	}
	return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
}

func (f *fakeSalaryRepo) ListSalaryRecords(ctx context.Context, filter payroll.SalaryFilter) ([]payroll.SalaryRecord, int64, error) {
	var out []payroll.SalaryRecord
	for _, record := range f.records {
		out = append(out, record)
	}
	return out, int64(len(out)), nil
}

func (f *fakeSalaryRepo) FinalizeSalaryRecords(ctx context.Context, ids []string, finalizedBy string) error {
	finalized := 0
	for _, id := range ids {
		record, ok := f.records[id]
		if !ok || record.Status != payroll.SalaryStatusDraft {
			continue
		}
		record.Status = payroll.SalaryStatusFinalized
		record.FinalizedBy = &finalizedBy
		f.records[id] = record
		finalized++
	}
	if finalized == 0 {
		return payroll.ErrNothingToFinalize
	}
	return nil
}

func (f *fakeSalaryRepo) DeleteSalaryRecord(ctx context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return payroll.ErrSalaryRecordNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeSalaryRepo) GetSalarySummary(ctx context.Context, month, year int) (payroll.SalarySummaryResponse, error) {
	summary := payroll.SalarySummaryResponse{Month: month, Year: year}
	for _, record := range f.records {
		if record.Month != month || record.Year != year {
			continue
		}
		summary.TotalEmployees++
		summary.TotalGross = summary.TotalGross.Add(record.Earnings.Gross)
		summary.TotalDeductions = summary.TotalDeductions.Add(record.Deductions.TotalDeductions)
		summary.TotalNetPay = summary.TotalNetPay.Add(record.NetPay)
		if record.Status == payroll.SalaryStatusFinalized {
			summary.FinalizedCount++
		} else {
			summary.DraftCount++
		}
	}
	return summary, nil
}

type fakePolicyRepo struct {
	policy payroll.Policy
}

func (f *fakePolicyRepo) GetPolicy(ctx context.Context) (payroll.Policy, error) {
	return f.policy, nil
}

func (f *fakePolicyRepo) UpdatePolicy(ctx context.Context, policy payroll.Policy) (payroll.Policy, error) {
	f.policy = policy
	return policy, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) SoftDelete(ctx context.Context, id string) error {
	delete(f.employees, id)
	return nil
}

// ========== HELPERS ==========

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dPtr(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func testPolicy() payroll.Policy {
	return payroll.Policy{
		ID:                "policy-1",
		PFEmployeePercent: d("12"),
		PFEmployerPercent: d("12"),
		TaxSlabs: payroll.TaxSlabTable{
			{UpperBound: dPtr("250000"), Rate: d("0")},
			{UpperBound: dPtr("500000"), Rate: d("0.05")},
			{UpperBound: dPtr("1000000"), Rate: d("0.20")},
			{UpperBound: nil, Rate: d("0.30")},
		},
		WorkingDaysInMonth: 26,
		HalfDayFraction:    d("0.5"),
	}
}

func testEarnings() payroll.EarningsInput {
	return payroll.EarningsInput{
		Basic:      payroll.NewAmount(d("20000")),
		HRA:        payroll.NewAmount(d("8000")),
		Conveyance: payroll.NewAmount(d("1600")),
		Medical:    payroll.NewAmount(d("1250")),
	}
}

func newTestService(t *testing.T) (payroll.SalaryService, *fakeSalaryRepo, *fakePolicyRepo, context.Context) {
	t.Helper()

	salaryRepo := newFakeSalaryRepo()
	policyRepo := &fakePolicyRepo{policy: testPolicy()}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", Name: "Asha Rao", Email: "asha@staffium.dev", IsActive: true},
	}}

	svc := NewSalaryService(nil, salaryRepo, policyRepo, employeeRepo)

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"user_id": "admin-1", "is_admin": true})
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	return svc, salaryRepo, policyRepo, ctx
}

// ========== TESTS ==========

func TestAssignComputesAndPersistsBreakdown(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	resp, err := svc.Assign(ctx, payroll.AssignSalaryRequest{
		EmployeeID:   "emp-1",
		AssignedDate: "2026-03-15",
		Earnings:     testEarnings(),
	})
	require.NoError(t, err)

	assert.Equal(t, 15, resp.Day)
	assert.Equal(t, 3, resp.Month)
	assert.Equal(t, 2026, resp.Year)
	assert.Equal(t, "draft", resp.Status)
	require.NotNil(t, resp.AssignedBy)
	assert.Equal(t, "admin-1", *resp.AssignedBy)

	assert.True(t, resp.Earnings.Gross.Equal(d("30850")), "gross = %s", resp.Earnings.Gross)
	assert.True(t, resp.Deductions.PFEmployee.Equal(d("2400")), "pf = %s", resp.Deductions.PFEmployee)
	assert.True(t, resp.Deductions.TDSMonthly.Equal(d("380.83")), "tds = %s", resp.Deductions.TDSMonthly)
	assert.True(t, resp.Deductions.TotalDeductions.Equal(d("2780.83")), "total = %s", resp.Deductions.TotalDeductions)
	assert.True(t, resp.NetPay.Equal(d("28069.17")), "net = %s", resp.NetPay)
}

func TestAssignUnknownEmployee(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	_, err := svc.Assign(ctx, payroll.AssignSalaryRequest{
		EmployeeID:   "emp-404",
		AssignedDate: "2026-03-15",
		Earnings:     testEarnings(),
	})
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotSelected)
}

func TestAssignReplacesDraftForSamePeriod(t *testing.T) {
	svc, repo, _, ctx := newTestService(t)

	first, err := svc.Assign(ctx, payroll.AssignSalaryRequest{
		EmployeeID:   "emp-1",
		AssignedDate: "2026-03-01",
		Earnings:     testEarnings(),
	})
	require.NoError(t, err)

	earnings := testEarnings()
	earnings.Bonus = payroll.NewAmount(d("5000"))
	second, err := svc.Assign(ctx, payroll.AssignSalaryRequest{
		EmployeeID:   "emp-1",
		AssignedDate: "2026-03-20",
		Earnings:     earnings,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same period must replace, not duplicate")
	assert.Len(t, repo.records, 1)
	assert.True(t, second.Earnings.Gross.Equal(d("35850")))
}

func TestAssignRejectsFinalizedPeriod(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	resp, err := svc.Assign(ctx, payroll.AssignSalaryRequest{
		EmployeeID:   "emp-1",
		AssignedDate: "2026-03-01",
		Earnings:     testEarnings(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Finalize(ctx, payroll.FinalizeSalariesRequest{RecordIDs: []string{resp.ID}}))

	_, err = svc.Assign(ctx, payroll.AssignSalaryRequest{
		EmployeeID:   "emp-1",
		AssignedDate: "2026-03-25",
		Earnings:     testEarnings(),
	})
	assert.ErrorIs(t, err, payroll.ErrSalaryRecordFinalized)
}

func TestAssignValidation(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	_, err := svc.Assign(ctx, payroll.AssignSalaryRequest{EmployeeID: "", AssignedDate: "not-a-date"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, payroll.ErrSalaryRecordNotFound)
}

func TestUpdateRecomputesDeductions(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	resp, err := svc.Assign(ctx, payroll.AssignSalaryRequest{
		EmployeeID:   "emp-1",
		AssignedDate: "2026-03-01",
		Earnings:     testEarnings(),
	})
	require.NoError(t, err)

	earnings := testEarnings()
	earnings.Basic = payroll.NewAmount(d("25000"))
	updated, err := svc.Update(ctx, payroll.UpdateSalaryRequest{
		ID:       resp.ID,
		Earnings: earnings,
	})
	require.NoError(t, err)

	// PF tracks the new basic even without an explicit rates block.
	assert.True(t, updated.Deductions.PFEmployee.Equal(d("3000")), "pf = %s", updated.Deductions.PFEmployee)
	assert.True(t, updated.Earnings.Gross.Equal(d("35850")))
}

func TestUpdateRejectsFinalized(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	resp, err := svc.Assign(ctx, payroll.AssignSalaryRequest{
		EmployeeID:   "emp-1",
		AssignedDate: "2026-03-01",
		Earnings:     testEarnings(),
	})
	require.NoError(t, err)
	require.NoError(t, svc.Finalize(ctx, payroll.FinalizeSalariesRequest{RecordIDs: []string{resp.ID}}))

	_, err = svc.Update(ctx, payroll.UpdateSalaryRequest{ID: resp.ID, Earnings: testEarnings()})
	assert.ErrorIs(t, err, payroll.ErrSalaryRecordFinalized)
}

func TestPreviewUsesTDSOverride(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	rates := testPolicy().Rates()
	rates.TDSMonthlyOverride = payroll.NewAmount(d("500"))

	resp, err := svc.Preview(ctx, payroll.PreviewSalaryRequest{
		Earnings:   testEarnings(),
		Deductions: &rates,
	})
	require.NoError(t, err)

	assert.True(t, resp.Deductions.TDSMonthly.Equal(d("500")))
	// The slab figure stays visible alongside the override.
	assert.True(t, resp.AnnualTax.Equal(d("4570")), "annual tax = %s", resp.AnnualTax)
	assert.True(t, resp.NetPay.Equal(d("27950")), "net = %s", resp.NetPay)
}

func TestFinalizeNothingToDo(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	err := svc.Finalize(ctx, payroll.FinalizeSalariesRequest{RecordIDs: []string{"rec-missing"}})
	assert.ErrorIs(t, err, payroll.ErrNothingToFinalize)
}

func TestDeleteFinalizedRefused(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	resp, err := svc.Assign(ctx, payroll.AssignSalaryRequest{
		EmployeeID:   "emp-1",
		AssignedDate: "2026-03-01",
		Earnings:     testEarnings(),
	})
	require.NoError(t, err)
	require.NoError(t, svc.Finalize(ctx, payroll.FinalizeSalariesRequest{RecordIDs: []string{resp.ID}}))

	err = svc.Delete(ctx, resp.ID)
	assert.ErrorIs(t, err, payroll.ErrCannotDeleteFinalized)
}

func TestSummaryAggregatesPeriod(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	_, err := svc.Assign(ctx, payroll.AssignSalaryRequest{
		EmployeeID:   "emp-1",
		AssignedDate: "2026-03-01",
		Earnings:     testEarnings(),
	})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, 3, 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalEmployees)
	assert.Equal(t, 1, summary.DraftCount)
	assert.True(t, summary.TotalGross.Equal(d("30850")))

	_, err = svc.Summary(ctx, 13, 2026)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestUpdatePolicyRejectsInvalidSlabs(t *testing.T) {
	svc, _, _, ctx := newTestService(t)

	bad := payroll.TaxSlabTable{
		{UpperBound: nil, Rate: d("0.1")},
		{UpperBound: dPtr("500000"), Rate: d("0.2")},
	}
	_, err := svc.UpdatePolicy(ctx, payroll.UpdatePolicyRequest{TaxSlabs: &bad})
	assert.ErrorIs(t, err, payroll.ErrInvalidTaxSlabs)
}

func TestUpdatePolicyAppliesPartialChanges(t *testing.T) {
	svc, _, policyRepo, ctx := newTestService(t)

	esi := payroll.NewPercent(d("1.75"))
	holidays := []string{"2026-03-14", "2026-08-15"}
	resp, err := svc.UpdatePolicy(ctx, payroll.UpdatePolicyRequest{
		ESIEmployeePercent: &esi,
		FestivalHolidays:   &holidays,
	})
	require.NoError(t, err)

	assert.True(t, resp.ESIEmployeePercent.Equal(d("1.75")))
	assert.Equal(t, holidays, resp.FestivalHolidays)
	// Untouched fields survive.
	assert.True(t, resp.PFEmployeePercent.Equal(d("12")))
	assert.Len(t, policyRepo.policy.FestivalHolidays, 2)
}

package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffium/payroll-backend-go/internal/domain/payroll"
	"github.com/staffium/payroll-backend-go/internal/pkg/database"
)

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) payroll.PolicyRepository {
	return &policyRepository{db: db}
}

// holidayDates round-trips []time.Time as a JSONB array of
// "YYYY-MM-DD" strings.
func encodeHolidays(dates []time.Time) ([]byte, error) {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	return json.Marshal(out)
}

func decodeHolidays(raw []byte) ([]time.Time, error) {
	var strs []string
	if err := json.Unmarshal(raw, &strs); err != nil {
		return nil, err
	}
	out := make([]time.Time, 0, len(strs))
	for _, s := range strs {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *policyRepository) GetPolicy(ctx context.Context) (payroll.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, pf_employee_percent, pf_employer_percent,
			   esi_employee_percent, esi_employer_percent, professional_tax,
			   tax_slabs, working_days_in_month, half_day_fraction,
			   pay_for_approved_leaves, pay_for_expenses,
			   festival_holidays, international_holidays,
			   created_at, updated_at
		FROM payroll_policies
		ORDER BY created_at
		LIMIT 1
	`

	var p payroll.Policy
	var slabsJSON, festivalJSON, internationalJSON []byte

	err := q.QueryRow(ctx, query).Scan(
		&p.ID, &p.PFEmployeePercent, &p.PFEmployerPercent,
		&p.ESIEmployeePercent, &p.ESIEmployerPercent, &p.ProfessionalTax,
		&slabsJSON, &p.WorkingDaysInMonth, &p.HalfDayFraction,
		&p.PayForApprovedLeaves, &p.PayForExpenses,
		&festivalJSON, &internationalJSON,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Policy{}, payroll.ErrPolicyNotFound
		}
		return payroll.Policy{}, fmt.Errorf("failed to get payroll policy: %w", err)
	}

	if err := json.Unmarshal(slabsJSON, &p.TaxSlabs); err != nil {
		return payroll.Policy{}, fmt.Errorf("failed to decode tax slabs: %w", err)
	}
	if p.FestivalHolidays, err = decodeHolidays(festivalJSON); err != nil {
		return payroll.Policy{}, fmt.Errorf("failed to decode festival holidays: %w", err)
	}
	if p.InternationalHolidays, err = decodeHolidays(internationalJSON); err != nil {
		return payroll.Policy{}, fmt.Errorf("failed to decode international holidays: %w", err)
	}

	return p, nil
}

func (r *policyRepository) UpdatePolicy(ctx context.Context, policy payroll.Policy) (payroll.Policy, error) {
	q := GetQuerier(ctx, r.db)

	slabsJSON, err := json.Marshal(policy.TaxSlabs)
	if err != nil {
		return payroll.Policy{}, fmt.Errorf("failed to encode tax slabs: %w", err)
	}
	festivalJSON, err := encodeHolidays(policy.FestivalHolidays)
	if err != nil {
		return payroll.Policy{}, fmt.Errorf("failed to encode festival holidays: %w", err)
	}
	internationalJSON, err := encodeHolidays(policy.InternationalHolidays)
	if err != nil {
		return payroll.Policy{}, fmt.Errorf("failed to encode international holidays: %w", err)
	}

	// A fresh install has no policy row yet; the first save creates it.
	if policy.ID == "" {
		policy.ID = uuid.New().String()

		query := `
			INSERT INTO payroll_policies (
				id, pf_employee_percent, pf_employer_percent,
				esi_employee_percent, esi_employer_percent, professional_tax,
				tax_slabs, working_days_in_month, half_day_fraction,
				pay_for_approved_leaves, pay_for_expenses,
				festival_holidays, international_holidays
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`
		_, err := q.Exec(ctx, query,
			policy.ID, policy.PFEmployeePercent, policy.PFEmployerPercent,
			policy.ESIEmployeePercent, policy.ESIEmployerPercent, policy.ProfessionalTax,
			slabsJSON, policy.WorkingDaysInMonth, policy.HalfDayFraction,
			policy.PayForApprovedLeaves, policy.PayForExpenses,
			festivalJSON, internationalJSON,
		)
		if err != nil {
			return payroll.Policy{}, fmt.Errorf("failed to create payroll policy: %w", err)
		}
		return r.GetPolicy(ctx)
	}

	query := `
		UPDATE payroll_policies
		SET pf_employee_percent = $1, pf_employer_percent = $2,
			esi_employee_percent = $3, esi_employer_percent = $4,
			professional_tax = $5, tax_slabs = $6,
			working_days_in_month = $7, half_day_fraction = $8,
			pay_for_approved_leaves = $9, pay_for_expenses = $10,
			festival_holidays = $11, international_holidays = $12,
			updated_at = NOW()
		WHERE id = $13
	`

	tag, err := q.Exec(ctx, query,
		policy.PFEmployeePercent, policy.PFEmployerPercent,
		policy.ESIEmployeePercent, policy.ESIEmployerPercent,
		policy.ProfessionalTax, slabsJSON,
		policy.WorkingDaysInMonth, policy.HalfDayFraction,
		policy.PayForApprovedLeaves, policy.PayForExpenses,
		festivalJSON, internationalJSON,
		policy.ID,
	)
	if err != nil {
		return payroll.Policy{}, fmt.Errorf("failed to update payroll policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.Policy{}, payroll.ErrPolicyNotFound
	}

	return r.GetPolicy(ctx)
}

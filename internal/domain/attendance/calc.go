package attendance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffium/payroll-backend-go/internal/domain/payroll"
)

// HolidaysInMonth counts distinct policy holidays falling inside the
// given month. Festival and international calendars are merged; a date
// listed in both counts once.
func HolidaysInMonth(policy payroll.Policy, month, year int) int {
	seen := make(map[string]bool)
	for _, calendar := range [][]time.Time{policy.FestivalHolidays, policy.InternationalHolidays} {
		for _, day := range calendar {
			if int(day.Month()) != month || day.Year() != year {
				continue
			}
			seen[day.Format("2006-01-02")] = true
		}
	}
	return len(seen)
}

// PayableDays derives the number of paid days for a month from the
// attendance summary and policy dials: full credit for present days
// and holidays, the policy fraction (e.g. 0.5) for half days.
func PayableDays(summary MonthSummary, policy payroll.Policy) decimal.Decimal {
	present := decimal.NewFromInt(int64(summary.PresentDays))
	half := decimal.NewFromInt(int64(summary.HalfDays)).Mul(policy.HalfDayFraction)
	holidays := decimal.NewFromInt(int64(HolidaysInMonth(policy, summary.Month, summary.Year)))
	return present.Add(half).Add(holidays)
}

package attendance

import "context"

type AttendanceRepository interface {
	Upsert(ctx context.Context, att Attendance) (Attendance, error)
	ListByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]Attendance, error)
	ListByDate(ctx context.Context, date string) ([]Attendance, error)
	GetMonthSummary(ctx context.Context, employeeID string, month, year int) (MonthSummary, error)
}

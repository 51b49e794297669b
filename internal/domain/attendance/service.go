package attendance

import "context"

type AttendanceService interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	ListByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]AttendanceResponse, error)
	ListByDate(ctx context.Context, date string) ([]AttendanceResponse, error)
	MonthSummary(ctx context.Context, employeeID string, month, year int) (MonthSummaryResponse, error)
}

package attendance

import (
	"context"
	"errors"

	"github.com/staffium/payroll-backend-go/internal/domain/attendance"
	"github.com/staffium/payroll-backend-go/internal/domain/employee"
	"github.com/staffium/payroll-backend-go/internal/domain/payroll"
	"github.com/staffium/payroll-backend-go/internal/fixtures"
	"github.com/staffium/payroll-backend-go/internal/pkg/database"
	"github.com/staffium/payroll-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	policyRepo     payroll.PolicyRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	policyRepo payroll.PolicyRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		policyRepo:     policyRepo,
		employeeRepo:   employeeRepo,
	}
}

func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	att := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     attendance.Status(req.Status),
		Note:       req.Note,
	}

	// One row per employee per day; re-marking overwrites.
	saved, err := s.attendanceRepo.Upsert(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toAttendanceResponse(saved), nil
}

func (s *AttendanceServiceImpl) ListByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]attendance.AttendanceResponse, error) {
	if !validator.IsValidPeriod(month, year) {
		return nil, payroll.ErrInvalidPeriod
	}

	rows, err := s.attendanceRepo.ListByEmployeeMonth(ctx, employeeID, month, year)
	if err != nil {
		return nil, err
	}

	out := make([]attendance.AttendanceResponse, 0, len(rows))
	for _, att := range rows {
		out = append(out, toAttendanceResponse(att))
	}
	return out, nil
}

func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, date string) ([]attendance.AttendanceResponse, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: "must be in YYYY-MM-DD format"}}
	}

	rows, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	out := make([]attendance.AttendanceResponse, 0, len(rows))
	for _, att := range rows {
		out = append(out, toAttendanceResponse(att))
	}
	return out, nil
}

func (s *AttendanceServiceImpl) MonthSummary(ctx context.Context, employeeID string, month, year int) (attendance.MonthSummaryResponse, error) {
	if !validator.IsValidPeriod(month, year) {
		return attendance.MonthSummaryResponse{}, payroll.ErrInvalidPeriod
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.MonthSummaryResponse{}, err
	}

	summary, err := s.attendanceRepo.GetMonthSummary(ctx, employeeID, month, year)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.MonthSummaryResponse{}, err
	}
	summary.EmployeeID = employeeID
	summary.Month = month
	summary.Year = year

	policy, err := s.policyRepo.GetPolicy(ctx)
	if err != nil {
		if !errors.Is(err, payroll.ErrPolicyNotFound) {
			return attendance.MonthSummaryResponse{}, err
		}
		policy = fixtures.DefaultPolicy()
	}

	return attendance.MonthSummaryResponse{
		EmployeeID:  employeeID,
		Month:       month,
		Year:        year,
		PresentDays: summary.PresentDays,
		HalfDays:    summary.HalfDays,
		AbsentDays:  summary.AbsentDays,
		Holidays:    attendance.HolidaysInMonth(policy, month, year),
		PayableDays: attendance.PayableDays(summary, policy),
	}, nil
}

func toAttendanceResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:         att.ID,
		EmployeeID: att.EmployeeID,
		Date:       att.Date.Format("2006-01-02"),
		Status:     string(att.Status),
		Note:       att.Note,
	}
	if att.EmployeeName != nil {
		resp.EmployeeName = *att.EmployeeName
	}
	return resp
}

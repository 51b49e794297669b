package attendance

import "time"

// Status enum
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
)

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	Note       *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

// MonthSummary aggregates one employee's attendance for a month.
type MonthSummary struct {
	EmployeeID  string
	Month       int
	Year        int
	PresentDays int
	HalfDays    int
	AbsentDays  int
}

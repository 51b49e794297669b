package leave

import "time"

// Status enum
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type LeaveRequest struct {
	ID            string
	EmployeeID    string
	Type          string
	StartDate     time.Time
	EndDate       time.Time
	Reason        string
	Status        Status
	AdminResponse *string
	ProcessedBy   *string
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}

package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Expense struct {
	ID            string
	EmployeeID    string
	Title         string
	Category      string
	Amount        decimal.Decimal
	ExpenseDate   time.Time
	Note          *string
	Status        Status
	AdminResponse *string
	ProcessedBy   *string
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}

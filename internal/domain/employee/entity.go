package employee

import "time"

type Employee struct {
	ID        string
	Code      string
	Name      string
	Email     string
	Mobile    string
	Address   *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("admin@staffium.io"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2025-03-31")
	assert.True(t, ok)
	_, ok = IsValidDate("31/03/2025")
	assert.False(t, ok)
}

func TestIsValidMobile(t *testing.T) {
	assert.True(t, IsValidMobile("+91 98765 43210"))
	assert.True(t, IsValidMobile("9876543210"))
	assert.False(t, IsValidMobile("12345"))
	assert.False(t, IsValidMobile("98765abc10"))
}

func TestIsValidPeriod(t *testing.T) {
	assert.True(t, IsValidPeriod(1, 2025))
	assert.False(t, IsValidPeriod(0, 2025))
	assert.False(t, IsValidPeriod(13, 2025))
	assert.False(t, IsValidPeriod(6, 1999))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "employee_id", Message: "is required"},
		{Field: "assigned_date", Message: "must be in YYYY-MM-DD format"},
	}
	assert.Equal(t, "employee_id: is required; assigned_date: must be in YYYY-MM-DD format", errs.Error())
	assert.Equal(t, "is required", errs.ToMap()["employee_id"])
}

package employee

import (
	"github.com/staffium/payroll-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Mobile  string  `json:"mobile"`
	Address *string `json:"address,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if !validator.IsEmpty(r.Mobile) && !validator.IsValidMobile(r.Mobile) {
		errs = append(errs, validator.ValidationError{Field: "mobile", Message: "must be a valid mobile number"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID      string  `json:"-"`
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Mobile  *string `json:"mobile,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "cannot be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.Mobile != nil && !validator.IsValidMobile(*r.Mobile) {
		errs = append(errs, validator.ValidationError{Field: "mobile", Message: "must be a valid mobile number"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID       string  `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Mobile   string  `json:"mobile,omitempty"`
	Address  *string `json:"address,omitempty"`
	IsActive bool    `json:"is_active"`
}

// Package dto provides data transfer objects for HTTP request handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/paylink/terminal/internal/validation"
)

// LoginRequest is the operator login form.
type LoginRequest struct {
	Password string `form:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 1024),
		),
	)
}

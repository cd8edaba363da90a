// Package dto provides data transfer objects for the terminal HTTP handlers.
package dto

import (
	"strings"

	validation "github.com/jellydator/validation"

	terminalDomain "github.com/paylink/terminal/internal/terminal/domain"
	customValidation "github.com/paylink/terminal/internal/validation"
)

// GenerateRequest is the terminal payment form.
type GenerateRequest struct {
	Amount string `form:"amount"`
	Title  string `form:"title"`
	Name   string `form:"name"`
	Email  string `form:"email"`
}

// Normalize trims surrounding whitespace from every field.
func (r *GenerateRequest) Normalize() {
	r.Amount = strings.TrimSpace(r.Amount)
	r.Title = strings.TrimSpace(r.Title)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// Validate checks if the generate request is valid. Only the amount is required.
func (r *GenerateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Amount,
			validation.Required,
			customValidation.Amount,
		),
		validation.Field(&r.Title, validation.Length(0, 120)),
		validation.Field(&r.Name, validation.Length(0, 120)),
		validation.Field(&r.Email,
			validation.Length(0, 254),
			validation.When(r.Email != "", customValidation.Email),
		),
	)
}

// ToDomain converts the form into a payment request.
func (r *GenerateRequest) ToDomain() terminalDomain.PaymentRequest {
	return terminalDomain.PaymentRequest{
		Amount: r.Amount,
		Title:  r.Title,
		Name:   r.Name,
		Email:  r.Email,
	}
}

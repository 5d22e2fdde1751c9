// Package dto provides data transfer objects for the recipient HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/sharelink/internal/user/usecase"
	appValidation "github.com/allisson/sharelink/internal/validation"
)

// CreateRecipientRequest represents the API request for registering a recipient.
type CreateRecipientRequest struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Validate checks required fields and the email format.
func (r *CreateRecipientRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Email, validation.Required, appValidation.NotBlank, appValidation.Email),
	)
}

// ToInput converts the request to the use case input.
func (r *CreateRecipientRequest) ToInput() usecase.CreateRecipientInput {
	return usecase.CreateRecipientInput{
		Name:       r.Name,
		Email:      r.Email,
		Attributes: r.Attributes,
	}
}

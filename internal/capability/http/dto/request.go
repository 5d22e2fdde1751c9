// Package dto provides data transfer objects for the viewer and link issuance HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
	capabilityUseCase "github.com/allisson/sharelink/internal/capability/usecase"
	customValidation "github.com/allisson/sharelink/internal/validation"
)

// ValidatePasswordRequest submits a token together with the template password.
type ValidatePasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Validate checks the request shape. An empty password is rejected by the gate itself.
func (r *ValidatePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required, customValidation.NotBlank),
	)
}

// ToPresentation maps the request to a gate presentation.
func (r *ValidatePasswordRequest) ToPresentation(viewer *capabilityDomain.Viewer) capabilityUseCase.Presentation {
	return capabilityUseCase.Presentation{
		Token:    r.Token,
		Password: r.Password,
		Viewer:   viewer,
	}
}

// Package dto provides data transfer objects for the template HTTP API.
package dto

import (
	"encoding/json"

	validation "github.com/jellydator/validation"

	templateUseCase "github.com/allisson/sharelink/internal/template/usecase"
	customValidation "github.com/allisson/sharelink/internal/validation"
)

// SaveTemplateRequest contains the parameters for creating or replacing a template.
type SaveTemplateRequest struct {
	Name           string          `json:"name"`
	Layout         json.RawMessage `json:"layout"`
	MaxHits        int             `json:"max_hits"`
	Password       string          `json:"password,omitempty"`
	TTLSeconds     int64           `json:"ttl_seconds"`
	RequiredFields []string        `json:"required_fields"`
}

// Validate checks the request shape. Business rules are enforced by the use case.
func (r *SaveTemplateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Layout, validation.Required, customValidation.JSONObject),
		validation.Field(&r.MaxHits, validation.Required, validation.Min(1)),
		validation.Field(&r.TTLSeconds, validation.Min(int64(0))),
	)
}

// ToInput maps the request to the use case input.
func (r *SaveTemplateRequest) ToInput() templateUseCase.SaveTemplateInput {
	return templateUseCase.SaveTemplateInput{
		Name:           r.Name,
		Layout:         r.Layout,
		MaxHits:        r.MaxHits,
		Password:       r.Password,
		TTLSeconds:     r.TTLSeconds,
		RequiredFields: r.RequiredFields,
	}
}

package dto

import (
	"encoding/json"
	"time"

	templateDomain "github.com/allisson/sharelink/internal/template/domain"
)

// TemplateResponse represents a template in API responses. The password hash is never exposed.
type TemplateResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Layout         json.RawMessage `json:"layout"`
	MaxHits        int             `json:"max_hits"`
	HasPassword    bool            `json:"has_password"`
	TTLSeconds     int64           `json:"ttl_seconds"`
	RequiredFields []string        `json:"required_fields"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MapTemplateToResponse converts a domain template to its API representation.
func MapTemplateToResponse(template *templateDomain.Template) TemplateResponse {
	fields := template.RequiredFields
	if fields == nil {
		fields = []string{}
	}
	return TemplateResponse{
		ID:             template.ID.String(),
		Name:           template.Name,
		Layout:         template.Layout,
		MaxHits:        template.MaxHits,
		HasPassword:    template.HasPassword(),
		TTLSeconds:     template.TTLSeconds,
		RequiredFields: fields,
		CreatedAt:      template.CreatedAt,
		UpdatedAt:      template.UpdatedAt,
	}
}

// Package usecase implements template management: transactional save of a template
// with its required fields, and lookups by name or id.
package usecase

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	templateDomain "github.com/allisson/sharelink/internal/template/domain"
)

// SaveTemplateInput contains the data for creating or replacing a template.
//
// A save replaces every attribute of an existing template with the same name;
// an empty Password removes password protection.
type SaveTemplateInput struct {
	Name           string
	Layout         json.RawMessage
	MaxHits        int
	Password       string
	TTLSeconds     int64
	RequiredFields []string
}

// TemplateRepository defines the interface for Template persistence operations.
type TemplateRepository interface {
	Upsert(ctx context.Context, template *templateDomain.Template) (bool, error)
	Get(ctx context.Context, templateID uuid.UUID) (*templateDomain.Template, error)
	GetByName(ctx context.Context, name string) (*templateDomain.Template, error)
	DeleteRequiredFields(ctx context.Context, templateID uuid.UUID) error
	CreateRequiredField(ctx context.Context, templateID uuid.UUID, position int, name string) error
	ListRequiredFields(ctx context.Context, templateID uuid.UUID) ([]string, error)
}

// TemplateUseCase defines the interface for template business logic.
type TemplateUseCase interface {
	// Save creates the template or replaces the one with the same name. The returned flag is
	// true when an existing template was replaced.
	Save(ctx context.Context, input SaveTemplateInput) (*templateDomain.Template, bool, error)

	// Get retrieves a template by name with its required fields.
	Get(ctx context.Context, name string) (*templateDomain.Template, error)

	// GetByID retrieves a template by id with its required fields.
	GetByID(ctx context.Context, templateID uuid.UUID) (*templateDomain.Template, error)
}

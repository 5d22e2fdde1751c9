// Package domain defines the template entity: the resource descriptor a capability
// token points at.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/sharelink/internal/errors"
)

// MaxTTLSeconds caps the lifetime of links issued for a template at ten years.
const MaxTTLSeconds int64 = 10 * 365 * 24 * 60 * 60

// Template describes a shareable document family.
//
// Layout is the opaque rendering template. PasswordHash is an Argon2id hash and is
// empty when the template is not password protected. RequiredFields are the claim
// names a claim-checked token must carry at least one of.
type Template struct {
	ID             uuid.UUID
	Name           string
	Layout         json.RawMessage
	MaxHits        int
	PasswordHash   string
	TTLSeconds     int64
	RequiredFields []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasPassword reports whether presentations must pass the password gate.
func (t *Template) HasPassword() bool {
	return t.PasswordHash != ""
}

// Domain-specific errors for template operations.
var (
	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.Wrap(errors.ErrNotFound, "template not found")
)

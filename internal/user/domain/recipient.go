// Package domain defines the recipient entity. A recipient is the person a share link is
// issued for; its id is the claim value carried by the capability token.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/sharelink/internal/errors"
)

// Recipient represents a link recipient.
type Recipient struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Attributes map[string]string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Fields returns the values available to the renderer for this recipient. Attributes never
// override the built-in id, name and email fields.
func (r *Recipient) Fields() map[string]string {
	fields := make(map[string]string, len(r.Attributes)+3)
	for k, v := range r.Attributes {
		fields[k] = v
	}
	fields["id"] = r.ID.String()
	fields["name"] = r.Name
	fields["email"] = r.Email
	return fields
}

// Domain-specific errors for recipient operations.
var (
	// ErrRecipientNotFound indicates the requested recipient does not exist.
	ErrRecipientNotFound = errors.Wrap(errors.ErrNotFound, "recipient not found")

	// ErrRecipientAlreadyExists indicates a recipient with the same email already exists.
	ErrRecipientAlreadyExists = errors.Wrap(errors.ErrConflict, "recipient already exists")
)

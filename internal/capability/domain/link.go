package domain

import (
	"time"

	"github.com/google/uuid"
)

// Link is a shareable URL issued for one recipient of a template.
type Link struct {
	TemplateID    uuid.UUID
	RecipientID   uuid.UUID
	RecipientName string
	URL           string
	Token         string
	ExpiresAt     time.Time
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Viewer is the identity presenting a token, when one is known.
type Viewer struct {
	ID    string
	Name  string
	Email string
}

// Recipient is the person a claim-checked token was issued for.
type Recipient struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// ViewDescriptor is returned by every successful presentation.
type ViewDescriptor struct {
	ResourceID  string
	Viewer      *Viewer
	Recipient   *Recipient
	HasPassword bool
	ExpiresAt   time.Time
	Hits        int64
	MaxHits     int
}

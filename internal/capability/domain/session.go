package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is one presentation of a token. Rows are append-only.
//
// TokenHash is the hex SHA-256 of the presented token string; the raw bearer
// token is never persisted.
type Session struct {
	ID        uuid.UUID
	TokenHash string
	ViewerID  *string
	CreatedAt time.Time
}

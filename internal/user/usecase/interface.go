// Package usecase implements recipient management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/sharelink/internal/user/domain"
)

// CreateRecipientInput contains the data for registering a recipient.
type CreateRecipientInput struct {
	Name       string
	Email      string
	Attributes map[string]string
}

// RecipientRepository defines the interface for recipient persistence.
type RecipientRepository interface {
	Create(ctx context.Context, recipient *domain.Recipient) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Recipient, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Recipient, error)
}

// RecipientUseCase defines the interface for recipient business logic.
type RecipientUseCase interface {
	Create(ctx context.Context, input CreateRecipientInput) (*domain.Recipient, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Recipient, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Recipient, error)
}

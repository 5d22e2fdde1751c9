package dto

import (
	"time"

	"github.com/allisson/sharelink/internal/user/domain"
)

// RecipientResponse represents a recipient in API responses.
type RecipientResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Attributes map[string]string `json:"attributes"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ListRecipientsResponse represents a page of recipients.
type ListRecipientsResponse struct {
	Data []RecipientResponse `json:"data"`
}

// MapRecipientToResponse converts a domain recipient to its API representation.
func MapRecipientToResponse(recipient *domain.Recipient) RecipientResponse {
	attributes := recipient.Attributes
	if attributes == nil {
		attributes = map[string]string{}
	}
	return RecipientResponse{
		ID:         recipient.ID.String(),
		Name:       recipient.Name,
		Email:      recipient.Email,
		Attributes: attributes,
		CreatedAt:  recipient.CreatedAt,
		UpdatedAt:  recipient.UpdatedAt,
	}
}

// MapRecipientsToListResponse converts a slice of domain recipients to a list response.
func MapRecipientsToListResponse(recipients []*domain.Recipient) ListRecipientsResponse {
	data := make([]RecipientResponse, 0, len(recipients))
	for _, recipient := range recipients {
		data = append(data, MapRecipientToResponse(recipient))
	}
	return ListRecipientsResponse{Data: data}
}

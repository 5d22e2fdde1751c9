package dto

import (
	"time"

	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
)

// ViewerResponse is the authenticated identity that presented a token.
type ViewerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// RecipientResponse is the recipient a claim-checked token was issued for.
type RecipientResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ViewResponse is returned by every successful token presentation.
type ViewResponse struct {
	ResourceID  string             `json:"resource_id"`
	Viewer      *ViewerResponse    `json:"viewer,omitempty"`
	Recipient   *RecipientResponse `json:"recipient,omitempty"`
	HasPassword bool               `json:"has_password"`
	ExpiresAt   time.Time          `json:"expires_at"`
	Hits        int64              `json:"hits"`
	MaxHits     int                `json:"max_hits"`
}

// MapViewToResponse converts a view descriptor to its API representation.
func MapViewToResponse(view *capabilityDomain.ViewDescriptor) ViewResponse {
	resp := ViewResponse{
		ResourceID:  view.ResourceID,
		HasPassword: view.HasPassword,
		ExpiresAt:   view.ExpiresAt,
		Hits:        view.Hits,
		MaxHits:     view.MaxHits,
	}
	if view.Viewer != nil {
		resp.Viewer = &ViewerResponse{
			ID:    view.Viewer.ID,
			Name:  view.Viewer.Name,
			Email: view.Viewer.Email,
		}
	}
	if view.Recipient != nil {
		resp.Recipient = &RecipientResponse{
			ID:    view.Recipient.ID.String(),
			Name:  view.Recipient.Name,
			Email: view.Recipient.Email,
		}
	}
	return resp
}

// PresentationCountResponse reports the recorded presentations of a token.
type PresentationCountResponse struct {
	Hits int64 `json:"hits"`
}

// LinkResponse is an issued share link.
type LinkResponse struct {
	TemplateID    string    `json:"template_id"`
	RecipientID   string    `json:"recipient_id"`
	RecipientName string    `json:"recipient_name"`
	URL           string    `json:"url"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// ListLinksResponse wraps the links issued for a template.
type ListLinksResponse struct {
	Data []LinkResponse `json:"data"`
}

// MapLinkToResponse converts an issued link to its API representation.
func MapLinkToResponse(link *capabilityDomain.Link) LinkResponse {
	return LinkResponse{
		TemplateID:    link.TemplateID.String(),
		RecipientID:   link.RecipientID.String(),
		RecipientName: link.RecipientName,
		URL:           link.URL,
		ExpiresAt:     link.ExpiresAt,
	}
}

// MapLinksToListResponse converts issued links to the list response.
func MapLinksToListResponse(links []*capabilityDomain.Link) ListLinksResponse {
	data := make([]LinkResponse, 0, len(links))
	for _, link := range links {
		data = append(data, MapLinkToResponse(link))
	}
	return ListLinksResponse{Data: data}
}

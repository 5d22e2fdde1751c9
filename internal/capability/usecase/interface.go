// Package usecase implements the presentation gate and link issuance for capability tokens.
package usecase

import (
	"context"

	"github.com/google/uuid"

	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
	"github.com/allisson/sharelink/internal/render"
	templateDomain "github.com/allisson/sharelink/internal/template/domain"
	userDomain "github.com/allisson/sharelink/internal/user/domain"
)

// Presentation is one submission of a token to the gate.
type Presentation struct {
	Token string

	// TargetID is the recipient id the caller claims access to. Used by claim-checked flows.
	TargetID string

	// Password is the shared template password. Used by the password and document flows.
	Password string

	// Viewer is the authenticated identity presenting the token, or nil for anonymous viewers.
	Viewer *capabilityDomain.Viewer
}

// TokenCipher seals and opens capability tokens.
type TokenCipher interface {
	Issue(payload capabilityDomain.Payload, ttlSeconds int64) (string, int64, error)
	Open(token string) (capabilityDomain.Payload, error)
}

// SessionLedger records token presentations.
type SessionLedger interface {
	// Record appends a presentation and returns the token's presentation count including it.
	Record(ctx context.Context, session *capabilityDomain.Session) (int64, error)

	// CountByTokenHash returns the number of recorded presentations of a token.
	CountByTokenHash(ctx context.Context, tokenHash string) (int64, error)
}

// TemplateStore resolves templates with their required fields loaded.
type TemplateStore interface {
	Get(ctx context.Context, name string) (*templateDomain.Template, error)
	GetByID(ctx context.Context, templateID uuid.UUID) (*templateDomain.Template, error)
}

// RecipientStore resolves recipients.
type RecipientStore interface {
	Get(ctx context.Context, id uuid.UUID) (*userDomain.Recipient, error)
	List(ctx context.Context, offset, limit int) ([]*userDomain.Recipient, error)
}

// GateUseCase evaluates token presentations.
//
// Every flow decrypts the token, resolves the template, records the presentation and checks
// the hit limit before any flow-specific check runs, so rejected attempts still consume hits.
type GateUseCase interface {
	// ViewDirect runs the base checks only.
	ViewDirect(ctx context.Context, p Presentation) (*capabilityDomain.ViewDescriptor, error)

	// ViewClaimChecked additionally requires the token to grant access to p.TargetID.
	ViewClaimChecked(ctx context.Context, p Presentation) (*capabilityDomain.ViewDescriptor, error)

	// ValidatePassword additionally checks p.Password against the template password.
	ValidatePassword(ctx context.Context, p Presentation) (*capabilityDomain.ViewDescriptor, error)

	// RenderDocument runs the claim and password checks and renders the document for the
	// recipient.
	RenderDocument(
		ctx context.Context,
		p Presentation,
	) (*capabilityDomain.ViewDescriptor, *render.Artifact, error)

	// PresentationCount returns how many times token has been presented.
	PresentationCount(ctx context.Context, token string) (int64, error)
}

// IssuerUseCase issues share links.
type IssuerUseCase interface {
	// IssueLinks issues one link per recipient for the named template.
	IssueLinks(ctx context.Context, templateName string) ([]*capabilityDomain.Link, error)

	// IssueLink issues a link for a single recipient.
	IssueLink(ctx context.Context, templateName string, recipientID uuid.UUID) (*capabilityDomain.Link, error)
}

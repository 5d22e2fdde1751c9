package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authService "github.com/allisson/sharelink/internal/auth/service"
	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
	capabilityService "github.com/allisson/sharelink/internal/capability/service"
	"github.com/allisson/sharelink/internal/database"
	apperrors "github.com/allisson/sharelink/internal/errors"
	"github.com/allisson/sharelink/internal/render"
	templateDomain "github.com/allisson/sharelink/internal/template/domain"
	userDomain "github.com/allisson/sharelink/internal/user/domain"
)

type gateUseCase struct {
	txManager       database.TxManager
	cipher          TokenCipher
	templates       TemplateStore
	recipients      RecipientStore
	ledger          SessionLedger
	passwordService authService.PasswordService
	renderer        render.Renderer
	timeout         time.Duration
	logger          *slog.Logger
}

// gateChecks selects the flow-specific steps run after the hit limit check.
type gateChecks struct {
	claim    bool
	password bool
}

// evaluation is the state accumulated by a successful presentation.
type evaluation struct {
	template   *templateDomain.Template
	recipient  *userDomain.Recipient
	descriptor *capabilityDomain.ViewDescriptor
}

// ViewDirect runs decrypt, resolve, record and hit limit checks.
func (g *gateUseCase) ViewDirect(
	ctx context.Context,
	p Presentation,
) (*capabilityDomain.ViewDescriptor, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	eval, err := g.evaluate(ctx, p, gateChecks{})
	if err != nil {
		return nil, err
	}
	return eval.descriptor, nil
}

// ViewClaimChecked runs the base checks plus claim authorization for p.TargetID.
func (g *gateUseCase) ViewClaimChecked(
	ctx context.Context,
	p Presentation,
) (*capabilityDomain.ViewDescriptor, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	eval, err := g.evaluate(ctx, p, gateChecks{claim: true})
	if err != nil {
		return nil, err
	}
	return eval.descriptor, nil
}

// ValidatePassword runs the base checks plus the password gate.
func (g *gateUseCase) ValidatePassword(
	ctx context.Context,
	p Presentation,
) (*capabilityDomain.ViewDescriptor, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	eval, err := g.evaluate(ctx, p, gateChecks{password: true})
	if err != nil {
		return nil, err
	}
	return eval.descriptor, nil
}

// RenderDocument runs every check and renders the template with the recipient fields.
func (g *gateUseCase) RenderDocument(
	ctx context.Context,
	p Presentation,
) (*capabilityDomain.ViewDescriptor, *render.Artifact, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	eval, err := g.evaluate(ctx, p, gateChecks{claim: true, password: true})
	if err != nil {
		return nil, nil, err
	}

	artifact, err := g.renderer.Render(ctx, eval.template.Layout, eval.recipient.Fields())
	if err != nil {
		if isContextError(ctx, err) {
			return nil, nil, unavailable("render timed out", err)
		}
		return nil, nil, apperrors.Wrap(err, "failed to render document")
	}
	return eval.descriptor, artifact, nil
}

// PresentationCount returns the number of recorded presentations of token.
func (g *gateUseCase) PresentationCount(ctx context.Context, token string) (int64, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	count, err := g.ledger.CountByTokenHash(ctx, capabilityService.HashToken(token))
	if err != nil {
		return 0, unavailable("failed to count presentations", err)
	}
	return count, nil
}

func (g *gateUseCase) evaluate(ctx context.Context, p Presentation, checks gateChecks) (*evaluation, error) {
	tokenHash := capabilityService.HashToken(p.Token)

	payload, err := g.cipher.Open(p.Token)
	if err != nil {
		if errors.Is(err, capabilityDomain.ErrTamperedToken) {
			g.logger.WarnContext(ctx, "tampered token presented",
				slog.String("token_hash", tokenHash),
				slog.String("viewer_id", viewerID(p.Viewer)),
			)
		}
		return nil, err
	}

	template, err := g.resolveTemplate(ctx, payload.ResourceID)
	if err != nil {
		return nil, err
	}

	hits, err := g.record(ctx, tokenHash, p.Viewer)
	if err != nil {
		return nil, err
	}
	if hits > int64(template.MaxHits) {
		return nil, capabilityDomain.ErrHitLimitExceeded
	}

	eval := &evaluation{template: template}

	if checks.claim {
		if !payload.HasClaimName(template.RequiredFields) || !payload.HasClaimValue(p.TargetID) {
			return nil, capabilityDomain.ErrInvalidClaim
		}
		recipient, err := g.resolveRecipient(ctx, p.TargetID)
		if err != nil {
			return nil, err
		}
		eval.recipient = recipient
	}

	if checks.password && template.HasPassword() {
		if !g.passwordService.Compare(p.Password, template.PasswordHash) {
			return nil, capabilityDomain.ErrPasswordMismatch
		}
	}

	eval.descriptor = &capabilityDomain.ViewDescriptor{
		ResourceID:  payload.ResourceID,
		Viewer:      p.Viewer,
		HasPassword: template.HasPassword(),
		ExpiresAt:   time.Unix(payload.ExpiresAt, 0).UTC(),
		Hits:        hits,
		MaxHits:     template.MaxHits,
	}
	if eval.recipient != nil {
		eval.descriptor.Recipient = &capabilityDomain.Recipient{
			ID:    eval.recipient.ID,
			Name:  eval.recipient.Name,
			Email: eval.recipient.Email,
		}
	}

	return eval, nil
}

func (g *gateUseCase) resolveTemplate(ctx context.Context, resourceID string) (*templateDomain.Template, error) {
	templateID, err := uuid.Parse(resourceID)
	if err != nil {
		return nil, capabilityDomain.ErrResourceNotFound
	}

	template, err := g.templates.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, capabilityDomain.ErrResourceNotFound
		}
		return nil, unavailable("failed to resolve template", err)
	}
	return template, nil
}

func (g *gateUseCase) resolveRecipient(ctx context.Context, targetID string) (*userDomain.Recipient, error) {
	recipientID, err := uuid.Parse(targetID)
	if err != nil {
		return nil, capabilityDomain.ErrResourceNotFound
	}

	recipient, err := g.recipients.Get(ctx, recipientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, capabilityDomain.ErrResourceNotFound
		}
		return nil, unavailable("failed to resolve recipient", err)
	}
	return recipient, nil
}

// record appends the session and bumps the counter in one transaction.
func (g *gateUseCase) record(
	ctx context.Context,
	tokenHash string,
	viewer *capabilityDomain.Viewer,
) (int64, error) {
	session := &capabilityDomain.Session{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		CreatedAt: time.Now().UTC(),
	}
	if viewer != nil {
		id := viewer.ID
		session.ViewerID = &id
	}

	var hits int64
	err := g.txManager.WithTx(ctx, func(ctx context.Context) error {
		count, err := g.ledger.Record(ctx, session)
		if err != nil {
			return err
		}
		hits = count
		return nil
	})
	if err != nil {
		return 0, unavailable("failed to record presentation", err)
	}
	return hits, nil
}

func (g *gateUseCase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func viewerID(viewer *capabilityDomain.Viewer) string {
	if viewer == nil {
		return ""
	}
	return viewer.ID
}

func isContextError(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// unavailable marks a store or timeout failure as retryable.
func unavailable(message string, err error) error {
	return fmt.Errorf("%s: %w: %w", message, apperrors.ErrUnavailable, err)
}

// NewGateUseCase creates the presentation gate. A zero timeout disables the per-presentation
// deadline.
func NewGateUseCase(
	txManager database.TxManager,
	cipher TokenCipher,
	templates TemplateStore,
	recipients RecipientStore,
	ledger SessionLedger,
	passwordService authService.PasswordService,
	renderer render.Renderer,
	timeout time.Duration,
	logger *slog.Logger,
) GateUseCase {
	return &gateUseCase{
		txManager:       txManager,
		cipher:          cipher,
		templates:       templates,
		recipients:      recipients,
		ledger:          ledger,
		passwordService: passwordService,
		renderer:        renderer,
		timeout:         timeout,
		logger:          logger,
	}
}

package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
	apperrors "github.com/allisson/sharelink/internal/errors"
	"github.com/allisson/sharelink/internal/metrics"
	"github.com/allisson/sharelink/internal/render"
)

const metricsDomain = "capability"

// gateUseCaseWithMetrics decorates GateUseCase with metrics instrumentation.
type gateUseCaseWithMetrics struct {
	next    GateUseCase
	metrics metrics.BusinessMetrics
}

// NewGateUseCaseWithMetrics wraps a GateUseCase with metrics recording.
func NewGateUseCaseWithMetrics(useCase GateUseCase, m metrics.BusinessMetrics) GateUseCase {
	return &gateUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (g *gateUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	g.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	g.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// recordPresentation counts the gate outcome when the metrics backend supports it.
func (g *gateUseCaseWithMetrics) recordPresentation(ctx context.Context, flow string, err error) {
	if pm, ok := g.metrics.(metrics.PresentationMetrics); ok {
		pm.RecordPresentation(ctx, flow, presentationOutcome(err))
	}
}

// presentationOutcome is "granted", the rejection code, "unavailable" or "error".
func presentationOutcome(err error) string {
	if err == nil {
		return "granted"
	}
	var coded interface{ ErrorCode() string }
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	if errors.Is(err, apperrors.ErrUnavailable) {
		return "unavailable"
	}
	return "error"
}

// ViewDirect records metrics for direct views.
func (g *gateUseCaseWithMetrics) ViewDirect(
	ctx context.Context,
	p Presentation,
) (*capabilityDomain.ViewDescriptor, error) {
	start := time.Now()
	view, err := g.next.ViewDirect(ctx, p)
	g.record(ctx, "view_direct", start, err)
	g.recordPresentation(ctx, "view_direct", err)
	return view, err
}

// ViewClaimChecked records metrics for claim-checked views.
func (g *gateUseCaseWithMetrics) ViewClaimChecked(
	ctx context.Context,
	p Presentation,
) (*capabilityDomain.ViewDescriptor, error) {
	start := time.Now()
	view, err := g.next.ViewClaimChecked(ctx, p)
	g.record(ctx, "view_claim_checked", start, err)
	g.recordPresentation(ctx, "view_claim_checked", err)
	return view, err
}

// ValidatePassword records metrics for password validations.
func (g *gateUseCaseWithMetrics) ValidatePassword(
	ctx context.Context,
	p Presentation,
) (*capabilityDomain.ViewDescriptor, error) {
	start := time.Now()
	view, err := g.next.ValidatePassword(ctx, p)
	g.record(ctx, "validate_password", start, err)
	g.recordPresentation(ctx, "validate_password", err)
	return view, err
}

// RenderDocument records metrics for document rendering.
func (g *gateUseCaseWithMetrics) RenderDocument(
	ctx context.Context,
	p Presentation,
) (*capabilityDomain.ViewDescriptor, *render.Artifact, error) {
	start := time.Now()
	view, artifact, err := g.next.RenderDocument(ctx, p)
	g.record(ctx, "render_document", start, err)
	g.recordPresentation(ctx, "render_document", err)
	return view, artifact, err
}

// PresentationCount records metrics for presentation count lookups.
func (g *gateUseCaseWithMetrics) PresentationCount(ctx context.Context, token string) (int64, error) {
	start := time.Now()
	count, err := g.next.PresentationCount(ctx, token)
	g.record(ctx, "presentation_count", start, err)
	return count, err
}

// issuerUseCaseWithMetrics decorates IssuerUseCase with metrics instrumentation.
type issuerUseCaseWithMetrics struct {
	next    IssuerUseCase
	metrics metrics.BusinessMetrics
}

// NewIssuerUseCaseWithMetrics wraps an IssuerUseCase with metrics recording.
func NewIssuerUseCaseWithMetrics(useCase IssuerUseCase, m metrics.BusinessMetrics) IssuerUseCase {
	return &issuerUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// IssueLinks records metrics for bulk link issuance.
func (i *issuerUseCaseWithMetrics) IssueLinks(
	ctx context.Context,
	templateName string,
) ([]*capabilityDomain.Link, error) {
	start := time.Now()
	links, err := i.next.IssueLinks(ctx, templateName)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, metricsDomain, "issue_links", status)
	i.metrics.RecordDuration(ctx, metricsDomain, "issue_links", time.Since(start), status)

	return links, err
}

// IssueLink records metrics for single link issuance.
func (i *issuerUseCaseWithMetrics) IssueLink(
	ctx context.Context,
	templateName string,
	recipientID uuid.UUID,
) (*capabilityDomain.Link, error) {
	start := time.Now()
	link, err := i.next.IssueLink(ctx, templateName, recipientID)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, metricsDomain, "issue_link", status)
	i.metrics.RecordDuration(ctx, metricsDomain, "issue_link", time.Since(start), status)

	return link, err
}

package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
	"github.com/allisson/sharelink/internal/capability/usecase"
	"github.com/allisson/sharelink/internal/capability/usecase/mocks"
	apperrors "github.com/allisson/sharelink/internal/errors"
	"github.com/allisson/sharelink/internal/metrics"
	"github.com/allisson/sharelink/internal/render"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func expectMetrics(ctx context.Context, m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", ctx, "capability", operation, status).Once()
	m.On("RecordDuration", ctx, "capability", operation, mock.AnythingOfType("time.Duration"), status).Once()
}

func TestGateMetricsDecorator(t *testing.T) {
	ctx := context.Background()
	p := usecase.Presentation{Token: "a.b.c"}

	t.Run("ViewDirect_Success", func(t *testing.T) {
		next := &mocks.MockGateUseCase{}
		m := &mockBusinessMetrics{}
		decorator := usecase.NewGateUseCaseWithMetrics(next, m)
		view := &capabilityDomain.ViewDescriptor{Hits: 1}

		next.On("ViewDirect", ctx, p).Return(view, nil).Once()
		expectMetrics(ctx, m, "view_direct", "success")

		got, err := decorator.ViewDirect(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, view, got)
		next.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("ViewClaimChecked_Error", func(t *testing.T) {
		next := &mocks.MockGateUseCase{}
		m := &mockBusinessMetrics{}
		decorator := usecase.NewGateUseCaseWithMetrics(next, m)

		next.On("ViewClaimChecked", ctx, p).Return(nil, capabilityDomain.ErrInvalidClaim).Once()
		expectMetrics(ctx, m, "view_claim_checked", "error")

		_, err := decorator.ViewClaimChecked(ctx, p)
		assert.ErrorIs(t, err, capabilityDomain.ErrInvalidClaim)
		m.AssertExpectations(t)
	})

	t.Run("ValidatePassword_Error", func(t *testing.T) {
		next := &mocks.MockGateUseCase{}
		m := &mockBusinessMetrics{}
		decorator := usecase.NewGateUseCaseWithMetrics(next, m)

		next.On("ValidatePassword", ctx, p).Return(nil, capabilityDomain.ErrPasswordMismatch).Once()
		expectMetrics(ctx, m, "validate_password", "error")

		_, err := decorator.ValidatePassword(ctx, p)
		assert.ErrorIs(t, err, capabilityDomain.ErrPasswordMismatch)
		m.AssertExpectations(t)
	})

	t.Run("RenderDocument_Success", func(t *testing.T) {
		next := &mocks.MockGateUseCase{}
		m := &mockBusinessMetrics{}
		decorator := usecase.NewGateUseCaseWithMetrics(next, m)
		artifact := &render.Artifact{ContentType: render.ContentTypeJSON, Body: []byte(`{}`)}

		next.On("RenderDocument", ctx, p).Return(&capabilityDomain.ViewDescriptor{}, artifact, nil).Once()
		expectMetrics(ctx, m, "render_document", "success")

		_, got, err := decorator.RenderDocument(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, artifact, got)
		m.AssertExpectations(t)
	})

	t.Run("PresentationCount_Success", func(t *testing.T) {
		next := &mocks.MockGateUseCase{}
		m := &mockBusinessMetrics{}
		decorator := usecase.NewGateUseCaseWithMetrics(next, m)

		next.On("PresentationCount", ctx, "a.b.c").Return(int64(2), nil).Once()
		expectMetrics(ctx, m, "presentation_count", "success")

		count, err := decorator.PresentationCount(ctx, "a.b.c")
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
		m.AssertExpectations(t)
	})
}

func TestIssuerMetricsDecorator(t *testing.T) {
	ctx := context.Background()

	t.Run("IssueLinks_Success", func(t *testing.T) {
		next := &mocks.MockIssuerUseCase{}
		m := &mockBusinessMetrics{}
		decorator := usecase.NewIssuerUseCaseWithMetrics(next, m)

		next.On("IssueLinks", ctx, "certificate").Return([]*capabilityDomain.Link{{}}, nil).Once()
		expectMetrics(ctx, m, "issue_links", "success")

		links, err := decorator.IssueLinks(ctx, "certificate")
		assert.NoError(t, err)
		assert.Len(t, links, 1)
		m.AssertExpectations(t)
	})

	t.Run("IssueLink_Error", func(t *testing.T) {
		next := &mocks.MockIssuerUseCase{}
		m := &mockBusinessMetrics{}
		decorator := usecase.NewIssuerUseCaseWithMetrics(next, m)
		id := uuid.Must(uuid.NewV7())

		next.On("IssueLink", ctx, "certificate", id).Return(nil, assert.AnError).Once()
		expectMetrics(ctx, m, "issue_link", "error")

		_, err := decorator.IssueLink(ctx, "certificate", id)
		assert.ErrorIs(t, err, assert.AnError)
		m.AssertExpectations(t)
	})
}

// mockPresentationMetrics also counts gate outcomes.
type mockPresentationMetrics struct {
	mockBusinessMetrics
}

func (m *mockPresentationMetrics) RecordPresentation(ctx context.Context, flow, outcome string) {
	m.Called(ctx, flow, outcome)
}

var _ metrics.PresentationMetrics = (*mockPresentationMetrics)(nil)

func TestGateMetricsDecorator_PresentationOutcome(t *testing.T) {
	ctx := context.Background()
	p := usecase.Presentation{Token: "a.b.c", TargetID: "r1"}

	tests := []struct {
		name    string
		err     error
		outcome string
	}{
		{"Granted", nil, "granted"},
		{"Expired", capabilityDomain.ErrTokenExpired, "token_expired"},
		{"HitLimit", fmt.Errorf("gate: %w", capabilityDomain.ErrHitLimitExceeded), "hit_limit_exceeded"},
		{"Unavailable", fmt.Errorf("ledger: %w", apperrors.ErrUnavailable), "unavailable"},
		{"Unknown", assert.AnError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &mocks.MockGateUseCase{}
			m := &mockPresentationMetrics{}
			decorator := usecase.NewGateUseCaseWithMetrics(next, m)

			var view *capabilityDomain.ViewDescriptor
			status := "error"
			if tt.err == nil {
				view = &capabilityDomain.ViewDescriptor{Hits: 1}
				status = "success"
			}
			next.On("ViewClaimChecked", ctx, p).Return(view, tt.err).Once()
			expectMetrics(ctx, &m.mockBusinessMetrics, "view_claim_checked", status)
			m.On("RecordPresentation", ctx, "view_claim_checked", tt.outcome).Once()

			_, err := decorator.ViewClaimChecked(ctx, p)
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
			m.AssertExpectations(t)
		})
	}

	t.Run("PresentationCount_NotCounted", func(t *testing.T) {
		next := &mocks.MockGateUseCase{}
		m := &mockPresentationMetrics{}
		decorator := usecase.NewGateUseCaseWithMetrics(next, m)

		next.On("PresentationCount", ctx, "a.b.c").Return(int64(2), nil).Once()
		expectMetrics(ctx, &m.mockBusinessMetrics, "presentation_count", "success")

		_, err := decorator.PresentationCount(ctx, "a.b.c")
		assert.NoError(t, err)
		m.AssertNotCalled(t, "RecordPresentation", mock.Anything, mock.Anything, mock.Anything)
	})
}

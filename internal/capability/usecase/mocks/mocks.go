// Package mocks provides testify mocks for the capability use case layer.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
	"github.com/allisson/sharelink/internal/capability/usecase"
	"github.com/allisson/sharelink/internal/render"
	templateDomain "github.com/allisson/sharelink/internal/template/domain"
	userDomain "github.com/allisson/sharelink/internal/user/domain"
)

// MockSessionLedger is a mock implementation of usecase.SessionLedger.
type MockSessionLedger struct {
	mock.Mock
}

func (m *MockSessionLedger) Record(ctx context.Context, session *capabilityDomain.Session) (int64, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionLedger) CountByTokenHash(ctx context.Context, tokenHash string) (int64, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(int64), args.Error(1)
}

// MockTemplateStore is a mock implementation of usecase.TemplateStore.
type MockTemplateStore struct {
	mock.Mock
}

func (m *MockTemplateStore) Get(ctx context.Context, name string) (*templateDomain.Template, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*templateDomain.Template), args.Error(1)
}

func (m *MockTemplateStore) GetByID(ctx context.Context, templateID uuid.UUID) (*templateDomain.Template, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*templateDomain.Template), args.Error(1)
}

// MockRecipientStore is a mock implementation of usecase.RecipientStore.
type MockRecipientStore struct {
	mock.Mock
}

func (m *MockRecipientStore) Get(ctx context.Context, id uuid.UUID) (*userDomain.Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.Recipient), args.Error(1)
}

func (m *MockRecipientStore) List(ctx context.Context, offset, limit int) ([]*userDomain.Recipient, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*userDomain.Recipient), args.Error(1)
}

// MockGateUseCase is a mock implementation of usecase.GateUseCase.
type MockGateUseCase struct {
	mock.Mock
}

func (m *MockGateUseCase) ViewDirect(
	ctx context.Context,
	p usecase.Presentation,
) (*capabilityDomain.ViewDescriptor, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capabilityDomain.ViewDescriptor), args.Error(1)
}

func (m *MockGateUseCase) ViewClaimChecked(
	ctx context.Context,
	p usecase.Presentation,
) (*capabilityDomain.ViewDescriptor, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capabilityDomain.ViewDescriptor), args.Error(1)
}

func (m *MockGateUseCase) ValidatePassword(
	ctx context.Context,
	p usecase.Presentation,
) (*capabilityDomain.ViewDescriptor, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capabilityDomain.ViewDescriptor), args.Error(1)
}

func (m *MockGateUseCase) RenderDocument(
	ctx context.Context,
	p usecase.Presentation,
) (*capabilityDomain.ViewDescriptor, *render.Artifact, error) {
	args := m.Called(ctx, p)
	var view *capabilityDomain.ViewDescriptor
	if v := args.Get(0); v != nil {
		view = v.(*capabilityDomain.ViewDescriptor)
	}
	var artifact *render.Artifact
	if a := args.Get(1); a != nil {
		artifact = a.(*render.Artifact)
	}
	return view, artifact, args.Error(2)
}

func (m *MockGateUseCase) PresentationCount(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

// MockIssuerUseCase is a mock implementation of usecase.IssuerUseCase.
type MockIssuerUseCase struct {
	mock.Mock
}

func (m *MockIssuerUseCase) IssueLinks(ctx context.Context, templateName string) ([]*capabilityDomain.Link, error) {
	args := m.Called(ctx, templateName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*capabilityDomain.Link), args.Error(1)
}

func (m *MockIssuerUseCase) IssueLink(
	ctx context.Context,
	templateName string,
	recipientID uuid.UUID,
) (*capabilityDomain.Link, error) {
	args := m.Called(ctx, templateName, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*capabilityDomain.Link), args.Error(1)
}

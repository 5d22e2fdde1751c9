// Package mocks provides testify mocks for the template use case layer.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	templateDomain "github.com/allisson/sharelink/internal/template/domain"
	templateUseCase "github.com/allisson/sharelink/internal/template/usecase"
)

// MockTemplateRepository is a mock implementation of usecase.TemplateRepository.
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Upsert(ctx context.Context, template *templateDomain.Template) (bool, error) {
	args := m.Called(ctx, template)
	return args.Bool(0), args.Error(1)
}

func (m *MockTemplateRepository) Get(ctx context.Context, templateID uuid.UUID) (*templateDomain.Template, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*templateDomain.Template), args.Error(1)
}

func (m *MockTemplateRepository) GetByName(ctx context.Context, name string) (*templateDomain.Template, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*templateDomain.Template), args.Error(1)
}

func (m *MockTemplateRepository) DeleteRequiredFields(ctx context.Context, templateID uuid.UUID) error {
	return m.Called(ctx, templateID).Error(0)
}

func (m *MockTemplateRepository) CreateRequiredField(
	ctx context.Context,
	templateID uuid.UUID,
	position int,
	name string,
) error {
	return m.Called(ctx, templateID, position, name).Error(0)
}

func (m *MockTemplateRepository) ListRequiredFields(ctx context.Context, templateID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockTemplateUseCase is a mock implementation of usecase.TemplateUseCase.
type MockTemplateUseCase struct {
	mock.Mock
}

func (m *MockTemplateUseCase) Save(
	ctx context.Context,
	input templateUseCase.SaveTemplateInput,
) (*templateDomain.Template, bool, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*templateDomain.Template), args.Bool(1), args.Error(2)
}

func (m *MockTemplateUseCase) Get(ctx context.Context, name string) (*templateDomain.Template, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*templateDomain.Template), args.Error(1)
}

func (m *MockTemplateUseCase) GetByID(
	ctx context.Context,
	templateID uuid.UUID,
) (*templateDomain.Template, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*templateDomain.Template), args.Error(1)
}

var (
	_ templateUseCase.TemplateRepository = (*MockTemplateRepository)(nil)
	_ templateUseCase.TemplateUseCase    = (*MockTemplateUseCase)(nil)
)

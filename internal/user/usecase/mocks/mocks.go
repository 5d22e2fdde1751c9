// Package mocks provides testify mocks for the recipient use case layer.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/sharelink/internal/user/domain"
	"github.com/allisson/sharelink/internal/user/usecase"
)

// MockRecipientRepository is a mock implementation of usecase.RecipientRepository.
type MockRecipientRepository struct {
	mock.Mock
}

func (m *MockRecipientRepository) Create(ctx context.Context, recipient *domain.Recipient) error {
	return m.Called(ctx, recipient).Error(0)
}

func (m *MockRecipientRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipient), args.Error(1)
}

func (m *MockRecipientRepository) List(ctx context.Context, offset, limit int) ([]*domain.Recipient, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Recipient), args.Error(1)
}

// MockRecipientUseCase is a mock implementation of usecase.RecipientUseCase.
type MockRecipientUseCase struct {
	mock.Mock
}

func (m *MockRecipientUseCase) Create(
	ctx context.Context,
	input usecase.CreateRecipientInput,
) (*domain.Recipient, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipient), args.Error(1)
}

func (m *MockRecipientUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipient), args.Error(1)
}

func (m *MockRecipientUseCase) List(ctx context.Context, offset, limit int) ([]*domain.Recipient, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Recipient), args.Error(1)
}

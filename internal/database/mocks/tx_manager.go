// Package mocks provides testify mocks for the database package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager.
// When RunFn is true, WithTx invokes fn with the given context before returning
// the configured error, so repository expectations inside the transaction are exercised.
type MockTxManager struct {
	mock.Mock
	RunFn bool
}

// NewMockTxManager creates a MockTxManager that executes the transactional function.
func NewMockTxManager() *MockTxManager {
	return &MockTxManager{RunFn: true}
}

// WithTx mocks the WithTx method.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if m.RunFn {
		if err := fn(ctx); err != nil {
			return err
		}
	}
	return args.Error(0)
}

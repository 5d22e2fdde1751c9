// Package http provides HTTP middleware and utilities for operator authentication.
package http

import (
	"context"

	authDomain "github.com/allisson/sharelink/internal/auth/domain"
)

// operatorKey is a context key type for storing authenticated operators.
type operatorKey struct{}

// WithOperator stores an authenticated operator in the context.
// This is typically called by the authentication middleware after successful key validation.
func WithOperator(ctx context.Context, operator *authDomain.Operator) context.Context {
	return context.WithValue(ctx, operatorKey{}, operator)
}

// GetOperator retrieves an authenticated operator from the context.
// Returns (operator, true) if an operator is present, or (nil, false) if none was set.
func GetOperator(ctx context.Context) (*authDomain.Operator, bool) {
	operator, ok := ctx.Value(operatorKey{}).(*authDomain.Operator)
	return operator, ok && operator != nil
}

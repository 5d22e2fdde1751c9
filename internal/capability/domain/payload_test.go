package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/sharelink/internal/errors"
)

func TestPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		wantErr bool
	}{
		{
			name:    "Success_NoClaims",
			payload: Payload{ResourceID: "t1"},
		},
		{
			name: "Success_DuplicateNames",
			payload: Payload{
				ResourceID:  "t1",
				ClaimNames:  []string{"userId", "userId"},
				ClaimValues: []string{"u1", "u2"},
			},
		},
		{
			name:    "Error_MissingResource",
			payload: Payload{},
			wantErr: true,
		},
		{
			name: "Error_LengthMismatch",
			payload: Payload{
				ResourceID:  "t1",
				ClaimNames:  []string{"userId"},
				ClaimValues: []string{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPayload)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPayload_Claims(t *testing.T) {
	p := Payload{
		ResourceID:  "t1",
		ClaimNames:  []string{"userId", "userId", "course"},
		ClaimValues: []string{"u1", "u3", "go"},
	}

	assert.True(t, p.HasClaimName([]string{"course"}))
	assert.True(t, p.HasClaimName([]string{"other", "userId"}))
	assert.False(t, p.HasClaimName([]string{"other"}))
	assert.False(t, p.HasClaimName(nil))

	assert.True(t, p.HasClaimValue("u1"))
	assert.True(t, p.HasClaimValue("u3"))
	assert.False(t, p.HasClaimValue("u2"))
}

func TestError_Categories(t *testing.T) {
	tests := []struct {
		err  *Error
		kind error
		code string
	}{
		{ErrMalformedToken, apperrors.ErrBadRequest, "malformed_token"},
		{ErrTamperedToken, apperrors.ErrUnauthorized, "token_tampered"},
		{ErrTokenExpired, apperrors.ErrUnauthorized, "token_expired"},
		{ErrResourceNotFound, apperrors.ErrNotFound, "resource_not_found"},
		{ErrHitLimitExceeded, apperrors.ErrBadRequest, "hit_limit_exceeded"},
		{ErrInvalidClaim, apperrors.ErrBadRequest, "invalid_claim"},
		{ErrPasswordMismatch, apperrors.ErrBadRequest, "password_mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.code, tt.err.ErrorCode())
		})
	}

	assert.Contains(t, ErrHitLimitExceeded.Error(), "hit limit exceeded")
	assert.NotErrorIs(t, ErrTokenExpired, ErrTamperedToken)
}

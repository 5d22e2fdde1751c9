package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/sharelink/internal/errors"
)

var (
	hashA = strings.Repeat("a", 64)
	hashB = strings.Repeat("b", 64)
)

func TestParseKeyring(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLen int
		wantErr bool
	}{
		{name: "Success_Empty", raw: "", wantLen: 0},
		{name: "Success_Single", raw: "ops:" + hashA, wantLen: 1},
		{name: "Success_MultipleWithSpaces", raw: "ops:" + hashA + " , ci:" + strings.ToUpper(hashB), wantLen: 2},
		{name: "Error_MissingHash", raw: "ops", wantErr: true},
		{name: "Error_EmptyName", raw: ":" + hashA, wantErr: true},
		{name: "Error_ShortHash", raw: "ops:abcd", wantErr: true},
		{name: "Error_NotHex", raw: "ops:" + strings.Repeat("z", 64), wantErr: true},
		{name: "Error_Duplicate", raw: "ops:" + hashA + ",ops:" + hashB, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := ParseKeyring(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOperatorKeys)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, k.Len())
		})
	}
}

func TestKeyring_Authenticate(t *testing.T) {
	k, err := ParseKeyring("ops:" + hashA + ",ci:" + strings.ToUpper(hashB))
	require.NoError(t, err)

	op, err := k.Authenticate(hashA)
	require.NoError(t, err)
	assert.Equal(t, "ops", op.Name)
	assert.Equal(t, "operator:ops", op.ViewerID())

	op, err = k.Authenticate(hashB)
	require.NoError(t, err)
	assert.Equal(t, "ci", op.Name)

	_, err = k.Authenticate(strings.Repeat("c", 64))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)

	empty, err := ParseKeyring("")
	require.NoError(t, err)
	_, err = empty.Authenticate(hashA)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// Package service provides the AEAD primitives sealing capability tokens and the KMS
// plumbing used to unwrap the deployment token key.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/sharelink/internal/crypto/domain"
)

// Sealed is the detached output of one AEAD seal: nonce, authentication tag and ciphertext.
type Sealed struct {
	Nonce      []byte
	Tag        []byte
	Ciphertext []byte
}

// AEAD defines authenticated encryption with detached nonce and tag.
type AEAD interface {
	// Seal encrypts plaintext under a fresh random nonce. AAD may be nil.
	Seal(plaintext, aad []byte) (Sealed, error)

	// Open verifies and decrypts s. Any authentication failure returns ErrDecryptionFailed.
	Open(s Sealed, aad []byte) ([]byte, error)
}

// KMSService opens KMS keepers.
type KMSService interface {
	// OpenKeeper opens a secrets.Keeper for the configured KMS provider.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

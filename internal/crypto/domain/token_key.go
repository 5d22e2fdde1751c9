package domain

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// TokenKey is the single deployment-wide symmetric key sealing every capability token.
//
// It is loaded once at startup and kept for the lifetime of the process. There is no
// fallback: a process without a configured key refuses to start, so tokens issued by
// one instance always open on another instance sharing the same configuration.
type TokenKey struct {
	Algorithm Algorithm
	Key       []byte
}

// Close zeroes the key material.
func (k *TokenKey) Close() {
	if k == nil {
		return
	}
	Zero(k.Key)
	k.Key = nil
}

// DecodeKeyMaterial decodes a 32-byte key given either as 64 hex characters or as
// standard/URL base64 (padded or not).
func DecodeKeyMaterial(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrTokenKeyNotSet
	}

	if len(encoded) == hex.EncodedLen(KeySize) {
		if key, err := hex.DecodeString(encoded); err == nil {
			return key, nil
		}
	}

	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if key, err := enc.DecodeString(encoded); err == nil {
			return key, nil
		}
	}

	return nil, ErrInvalidTokenKeyEncoding
}

// LoadTokenKey builds the TokenKey from its configured representation.
//
// When keeper is nil, encoded is the raw key material (hex or base64). Otherwise encoded
// is the base64 KMS ciphertext produced by the create-token-key command and is unwrapped
// through keeper.
func LoadTokenKey(
	ctx context.Context,
	encoded string,
	algorithm string,
	keeper KMSKeeper,
) (*TokenKey, error) {
	alg, err := ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}

	material, err := DecodeKeyMaterial(encoded)
	if err != nil {
		return nil, err
	}

	if keeper != nil {
		plaintext, err := keeper.Decrypt(ctx, material)
		Zero(material)
		if err != nil {
			return nil, fmt.Errorf("failed to unwrap TOKEN_KEY with KMS: %w", err)
		}
		material = plaintext
	}

	if len(material) != KeySize {
		size := len(material)
		Zero(material)
		return nil, fmt.Errorf("%w: token key must be %d bytes, got %d", ErrInvalidKeySize, KeySize, size)
	}

	return &TokenKey{Algorithm: alg, Key: material}, nil
}

// Zero overwrites b with zeros. A nil slice is a no-op.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

package domain

import (
	"github.com/allisson/sharelink/internal/errors"
)

// Cryptographic error definitions.
//
// Key configuration errors are fatal at startup; they never reach an HTTP client.
var (
	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the symmetric key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates AEAD authentication failed (wrong key, bit flip, truncation).
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrTokenKeyNotSet indicates TOKEN_KEY is missing from the configuration.
	ErrTokenKeyNotSet = errors.Wrap(errors.ErrInvalidInput, "TOKEN_KEY is not set")

	// ErrInvalidTokenKeyEncoding indicates TOKEN_KEY is neither hex nor base64.
	ErrInvalidTokenKeyEncoding = errors.Wrap(errors.ErrInvalidInput, "TOKEN_KEY must be hex or base64 encoded")
)

package domain

// Algorithm represents the AEAD construction used to seal capability tokens.
//
// Both algorithms use a 256-bit key, a 12-byte nonce and a 16-byte tag, so the
// token wire format is identical regardless of which one a deployment selects.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM. Preferred on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305. Preferred where AES is not hardware accelerated.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the required symmetric key length in bytes.
	KeySize = 32
	// NonceSize is the AEAD nonce length in bytes.
	NonceSize = 12
	// TagSize is the AEAD authentication tag length in bytes.
	TagSize = 16
)

// ParseAlgorithm converts a configuration value into an Algorithm.
// Returns ErrUnsupportedAlgorithm for unknown values.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AESGCM:
		return AESGCM, nil
	case ChaCha20:
		return ChaCha20, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}

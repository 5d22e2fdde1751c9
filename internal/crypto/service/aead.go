package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/allisson/sharelink/internal/crypto/domain"
)

// detachedAEAD adapts a cipher.AEAD to the detached nonce/tag/ciphertext layout.
//
// Go's AEADs append the tag to the ciphertext; Seal splits it off and Open
// re-joins it, so callers never see the combined form.
type detachedAEAD struct {
	aead cipher.AEAD
}

// NewAESGCM creates an AES-256-GCM cipher. The key must be exactly 32 bytes.
func NewAESGCM(key []byte) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &detachedAEAD{aead: aead}, nil
}

// NewChaCha20Poly1305 creates a ChaCha20-Poly1305 cipher. The key must be exactly 32 bytes.
func NewChaCha20Poly1305(key []byte) (AEAD, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}

	return &detachedAEAD{aead: aead}, nil
}

func (d *detachedAEAD) Seal(plaintext, aad []byte) (Sealed, error) {
	nonce := make([]byte, d.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return Sealed{}, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := d.aead.Seal(nil, nonce, plaintext, aad)
	split := len(out) - d.aead.Overhead()

	return Sealed{
		Nonce:      nonce,
		Tag:        out[split:],
		Ciphertext: out[:split],
	}, nil
}

func (d *detachedAEAD) Open(s Sealed, aad []byte) ([]byte, error) {
	if len(s.Nonce) != d.aead.NonceSize() || len(s.Tag) != d.aead.Overhead() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	combined := make([]byte, 0, len(s.Ciphertext)+len(s.Tag))
	combined = append(combined, s.Ciphertext...)
	combined = append(combined, s.Tag...)

	plaintext, err := d.aead.Open(nil, s.Nonce, combined, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}

// NewTokenAEAD creates the cipher for a deployment token key using the key's algorithm.
func NewTokenAEAD(tokenKey *cryptoDomain.TokenKey) (AEAD, error) {
	if tokenKey == nil || len(tokenKey.Key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	switch tokenKey.Algorithm {
	case cryptoDomain.AESGCM:
		return NewAESGCM(tokenKey.Key)
	case cryptoDomain.ChaCha20:
		return NewChaCha20Poly1305(tokenKey.Key)
	default:
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
}

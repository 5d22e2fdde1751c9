package service

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
	cryptoService "github.com/allisson/sharelink/internal/crypto/service"
	apperrors "github.com/allisson/sharelink/internal/errors"
)

const segmentSeparator = "."

// wirePayload is the canonical serialized form sealed inside a token.
type wirePayload struct {
	TemplateID string   `json:"templateId"`
	Names      []string `json:"name"`
	Values     []string `json:"value"`
	Exp        *int64   `json:"exp"`
}

// TokenCipher seals payloads into opaque tokens of the form
// base64url(nonce) "." base64url(tag) "." base64url(ciphertext).
type TokenCipher struct {
	aead cryptoService.AEAD
	now  func() time.Time
}

// TokenCipherOption configures a TokenCipher.
type TokenCipherOption func(*TokenCipher)

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) TokenCipherOption {
	return func(c *TokenCipher) {
		c.now = now
	}
}

// NewTokenCipher creates a TokenCipher sealing with aead.
func NewTokenCipher(aead cryptoService.AEAD, opts ...TokenCipherOption) *TokenCipher {
	c := &TokenCipher{aead: aead, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue seals payload with expiresAt = now + ttlSeconds and returns the token and its expiry.
// A ttl of 0 yields a token that is already expired.
func (c *TokenCipher) Issue(payload capabilityDomain.Payload, ttlSeconds int64) (string, int64, error) {
	if ttlSeconds < 0 {
		return "", 0, apperrors.Wrap(apperrors.ErrInvalidInput, "ttl must not be negative")
	}
	if err := payload.Validate(); err != nil {
		return "", 0, err
	}

	now := c.now().Unix()
	if ttlSeconds > math.MaxInt64-now {
		return "", 0, apperrors.Wrap(apperrors.ErrInvalidInput, "ttl overflows expiry")
	}
	exp := now + ttlSeconds
	wire := wirePayload{
		TemplateID: payload.ResourceID,
		Names:      nonNil(payload.ClaimNames),
		Values:     nonNil(payload.ClaimValues),
		Exp:        &exp,
	}

	plaintext, err := json.Marshal(wire)
	if err != nil {
		return "", 0, apperrors.Wrap(err, "failed to serialize payload")
	}

	sealed, err := c.aead.Seal(plaintext, nil)
	if err != nil {
		return "", 0, apperrors.Wrap(err, "failed to seal payload")
	}

	token := strings.Join([]string{
		Encode(sealed.Nonce),
		Encode(sealed.Tag),
		Encode(sealed.Ciphertext),
	}, segmentSeparator)

	return token, exp, nil
}

// Open authenticates and decrypts token.
//
// Expiry is evaluated only after the tag has been verified. A token is expired
// from the second equal to its expiresAt onward.
func (c *TokenCipher) Open(token string) (capabilityDomain.Payload, error) {
	segments := strings.Split(token, segmentSeparator)
	if len(segments) != 3 {
		return capabilityDomain.Payload{}, capabilityDomain.ErrMalformedToken
	}

	decoded := make([][]byte, len(segments))
	for i, segment := range segments {
		b, err := Decode(segment)
		if err != nil {
			return capabilityDomain.Payload{}, err
		}
		decoded[i] = b
	}

	plaintext, err := c.aead.Open(cryptoService.Sealed{
		Nonce:      decoded[0],
		Tag:        decoded[1],
		Ciphertext: decoded[2],
	}, nil)
	if err != nil {
		return capabilityDomain.Payload{}, capabilityDomain.ErrTamperedToken
	}

	var wire wirePayload
	if err := json.Unmarshal(plaintext, &wire); err != nil {
		return capabilityDomain.Payload{}, capabilityDomain.ErrMalformedToken
	}
	if wire.Exp == nil || wire.TemplateID == "" || len(wire.Names) != len(wire.Values) {
		return capabilityDomain.Payload{}, capabilityDomain.ErrMalformedToken
	}

	if c.now().Unix() >= *wire.Exp {
		return capabilityDomain.Payload{}, capabilityDomain.ErrTokenExpired
	}

	return capabilityDomain.Payload{
		ResourceID:  wire.TemplateID,
		ClaimNames:  wire.Names,
		ClaimValues: wire.Values,
		ExpiresAt:   *wire.Exp,
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

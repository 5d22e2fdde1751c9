// Package service implements the capability token codec and cipher.
package service

import (
	"encoding/base64"

	capabilityDomain "github.com/allisson/sharelink/internal/capability/domain"
)

var segmentEncoding = base64.RawURLEncoding.Strict()

// Encode renders b in unpadded base64url: only [A-Za-z0-9_-], safe inside a query parameter.
func Encode(b []byte) string {
	return segmentEncoding.EncodeToString(b)
}

// Decode is the exact inverse of Encode.
//
// The input is checked against the alphabet first because the base64 decoder
// silently drops CR and LF. Non-canonical trailing bits are rejected.
func Decode(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if !isSegmentChar(s[i]) {
			return nil, capabilityDomain.ErrMalformedToken
		}
	}

	b, err := segmentEncoding.DecodeString(s)
	if err != nil {
		return nil, capabilityDomain.ErrMalformedToken
	}
	return b, nil
}

func isSegmentChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	default:
		return false
	}
}

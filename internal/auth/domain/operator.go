// Package domain defines operator identities authenticated by bearer API keys.
package domain

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/allisson/sharelink/internal/errors"
)

// Operator is an authenticated caller of the management API.
type Operator struct {
	Name    string
	KeyHash string
}

// ViewerID is the identity recorded in the presentation ledger when an operator presents a token.
func (o *Operator) ViewerID() string {
	return "operator:" + o.Name
}

// Keyring holds the configured operator key hashes.
type Keyring struct {
	operators []Operator
}

// Domain-specific errors for operator authentication.
var (
	// ErrInvalidOperatorKeys indicates OPERATOR_API_KEYS is malformed.
	ErrInvalidOperatorKeys = errors.Wrap(errors.ErrInvalidInput, "invalid OPERATOR_API_KEYS")

	// ErrInvalidCredentials indicates the presented API key matches no operator.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)

// ParseKeyring parses "name:sha256hex" entries separated by commas. An empty string yields
// an empty keyring, which rejects every key.
func ParseKeyring(raw string) (*Keyring, error) {
	k := &Keyring{}
	if strings.TrimSpace(raw) == "" {
		return k, nil
	}

	seen := make(map[string]struct{})
	for part := range strings.SplitSeq(raw, ",") {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 || p[0] == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOperatorKeys, part)
		}

		name, hash := p[0], strings.ToLower(p[1])
		if decoded, err := hex.DecodeString(hash); err != nil || len(decoded) != 32 {
			return nil, fmt.Errorf("%w: key hash for %s must be 64 hex characters", ErrInvalidOperatorKeys, name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate operator %s", ErrInvalidOperatorKeys, name)
		}
		seen[name] = struct{}{}

		k.operators = append(k.operators, Operator{Name: name, KeyHash: hash})
	}

	return k, nil
}

// Len returns the number of configured operators.
func (k *Keyring) Len() int {
	return len(k.operators)
}

// Authenticate finds the operator owning keyHash. Every entry is compared in constant time.
func (k *Keyring) Authenticate(keyHash string) (*Operator, error) {
	var found *Operator
	for i := range k.operators {
		op := &k.operators[i]
		if subtle.ConstantTimeCompare([]byte(op.KeyHash), []byte(keyHash)) == 1 {
			found = op
		}
	}
	if found == nil {
		return nil, ErrInvalidCredentials
	}
	return found, nil
}

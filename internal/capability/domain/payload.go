// Package domain defines the capability token model: the payload sealed inside a token,
// the presentation ledger rows and the typed rejections of the presentation gate.
package domain

// Payload is the set of claims sealed inside a capability token.
//
// ClaimNames and ClaimValues are parallel: position i asserts the pair
// (ClaimNames[i], ClaimValues[i]). Duplicate names are legal and each position
// is checked independently. ExpiresAt is an absolute Unix second set by the
// issuing side.
type Payload struct {
	ResourceID  string
	ClaimNames  []string
	ClaimValues []string
	ExpiresAt   int64
}

// Validate checks the structural invariants of a payload before it is sealed.
func (p Payload) Validate() error {
	if p.ResourceID == "" {
		return ErrInvalidPayload
	}
	if len(p.ClaimNames) != len(p.ClaimValues) {
		return ErrInvalidPayload
	}
	return nil
}

// HasClaimName reports whether any claim name of p appears in names.
func (p Payload) HasClaimName(names []string) bool {
	distinct := make(map[string]struct{}, len(p.ClaimNames))
	for _, n := range p.ClaimNames {
		distinct[n] = struct{}{}
	}
	for _, n := range names {
		if _, ok := distinct[n]; ok {
			return true
		}
	}
	return false
}

// HasClaimValue reports whether value appears anywhere in the claim values.
func (p Payload) HasClaimValue(value string) bool {
	for _, v := range p.ClaimValues {
		if v == value {
			return true
		}
	}
	return false
}

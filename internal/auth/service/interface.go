// Package service provides credential primitives: random API keys with SHA-256 lookup
// hashes, and Argon2id hashing for template passwords.
package service

// PasswordService hashes and verifies shared template passwords.
type PasswordService interface {
	// Hash returns an Argon2id PHC string for plain.
	Hash(plain string) (string, error)

	// Compare reports whether plain matches hash. Verification runs in constant time.
	Compare(plain, hash string) bool
}

// TokenService generates operator API keys and their lookup hashes.
type TokenService interface {
	// GenerateToken returns a random URL-safe key and its SHA-256 hex hash.
	GenerateToken() (plainToken string, tokenHash string, error error)

	// HashToken returns the SHA-256 hex hash of a key.
	HashToken(plainToken string) string
}

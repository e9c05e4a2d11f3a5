package usecase

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher abstracts one-way password hashing so tests can substitute
// a cheaper implementation.
type PasswordHasher interface {
	// Hash derives a salted digest from a plaintext password.
	Hash(plain string) (string, error)
	// Verify reports whether plain matches digest. Malformed digests
	// verify as false, never as an error.
	Verify(plain, digest string) bool
}

// bcryptHasher implements PasswordHasher using bcrypt.
// The salt is embedded in the digest encoding, so verification is
// self-contained and bcrypt's own constant-time compare applies.
type bcryptHasher struct {
	cost int
}

var _ PasswordHasher = (*bcryptHasher)(nil)

// NewBcryptHasher creates a PasswordHasher with the given bcrypt cost.
// A cost of 0 falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *bcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

// Hash derives a bcrypt digest from the plaintext password.
func (h *bcryptHasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plain matches the bcrypt digest.
func (h *bcryptHasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

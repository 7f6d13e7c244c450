package admin

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Domain errors
var (
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("new password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("new passwords do not match")
	ErrWrongPassword    = errors.New("incorrect admin password")
)

// DefaultPassword is the admin password every fresh studio instance starts with.
const DefaultPassword = "admin123"

// MinPasswordLength is the shortest accepted replacement password.
const MinPasswordLength = 6

// HashCost is the bcrypt cost used for new hashes. Tests lower it.
var HashCost = bcrypt.DefaultCost

// Credentials guards the admin dashboard.
type Credentials struct {
	PasswordHash string
}

// NewCredentials hashes plaintext into a fresh credential.
// PRE: plaintext is non-empty
// POST: PasswordHash is a bcrypt hash of plaintext
func NewCredentials(plaintext string) (Credentials, error) {
	if plaintext == "" {
		return Credentials{}, ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), HashCost)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{PasswordHash: string(hash)}, nil
}

// Check verifies plaintext against the stored hash.
// INVARIANT: Credentials are not mutated
func (c *Credentials) Check(plaintext string) error {
	if c.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// Change replaces the password after verifying the current one.
// Checks run in order: current password, confirmation match, minimum length.
// PRE: none
// POST: PasswordHash is replaced only when every check passes
func (c *Credentials) Change(current, next, confirm string) error {
	if err := c.Check(current); err != nil {
		return err
	}
	if next != confirm {
		return ErrPasswordMismatch
	}
	if len([]rune(next)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	updated, err := NewCredentials(next)
	if err != nil {
		return err
	}
	*c = updated
	return nil
}

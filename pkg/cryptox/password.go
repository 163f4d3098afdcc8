package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used when none is configured.
const DefaultHashCost = 10

var (
	ErrInvalidHashCost  = errors.New("cryptox: bcrypt cost out of range")
	ErrPasswordTooLong  = errors.New("cryptox: password exceeds 72 bytes")
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
)

// PasswordHasher hashes and checks passwords with bcrypt. The zero value uses
// DefaultHashCost.
type PasswordHasher struct {
	Cost int
}

// NewPasswordHasher returns a hasher for the given bcrypt cost. A cost of 0
// selects DefaultHashCost.
func NewPasswordHasher(cost int) (PasswordHasher, error) {
	if cost == 0 {
		cost = DefaultHashCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return PasswordHasher{}, fmt.Errorf("%w: %d not in [%d, %d]",
			ErrInvalidHashCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return PasswordHasher{Cost: cost}, nil
}

func (h PasswordHasher) cost() int {
	if h.Cost == 0 {
		return DefaultHashCost
	}
	return h.Cost
}

// Hash returns the bcrypt hash of plaintext. Every call uses a fresh salt.
func (h PasswordHasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost())
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(out), nil
}

// Verify compares plaintext against hash. It returns ErrPasswordMismatch on
// a wrong password and a wrapped error when hash is not a bcrypt hash.
func (h PasswordHasher) Verify(plaintext, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("cryptox: compare password: %w", err)
	}
}

// Compare reports whether plaintext matches hash.
func (h PasswordHasher) Compare(plaintext, hash string) bool {
	return h.Verify(plaintext, hash) == nil
}

package jwtx

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token lifetimes. Access tokens are short lived, refresh tokens only
// exist to mint new access tokens.
const (
	DefaultAccessTokenTTL  = 300 * time.Second
	DefaultRefreshTokenTTL = 3600 * time.Second
)

// TokenType distinguishes access tokens from refresh tokens inside the claims.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Valid reports whether t is one of the known token types.
func (t TokenType) Valid() bool {
	return t == TokenTypeAccess || t == TokenTypeRefresh
}

// Claims are the token claims shared by access and refresh tokens. The
// subject holds the numeric user id in decimal form.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the user the token was issued to
	Email string `json:"email"`

	// Type is "access" or "refresh"
	Type TokenType `json:"type"`
}

// NewClaims builds claims for userID valid from now until now+ttl.
func NewClaims(
	userID int64,
	email string,
	typ TokenType,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: email,
		Type:  typ,
	}
}

// NewJTI returns a random identifier for the "jti" claim. It keeps two tokens
// minted in the same second for the same user distinct.
func NewJTI() string {
	return uuid.NewString()
}

// UserID parses the subject back into the numeric user id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidClaim
	}
	return id, nil
}

// IsRefresh reports whether the claims belong to a refresh token.
func (c *Claims) IsRefresh() bool {
	return c.Type == TokenTypeRefresh
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateType ensures the token carries a known type and a usable subject.
func (c *Claims) ValidateType() error {
	if !c.Type.Valid() {
		return ErrInvalidClaim
	}
	if _, err := c.UserID(); err != nil {
		return err
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway adds a small grace period for clock skew.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}

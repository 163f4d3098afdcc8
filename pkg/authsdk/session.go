package authsdk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshBuffer makes the session rotate tokens slightly before they expire.
const refreshBuffer = 30 * time.Second

// ErrSessionExpired is returned when both tokens of a Session have expired.
var ErrSessionExpired = errors.New("authsdk: session expired, log in again")

// Session represents an authenticated session with automatic token rotation.
// Sessions are safe for concurrent use.
type Session struct {
	client *SDKClient

	mu               sync.RWMutex
	accessToken      string
	refreshToken     string
	accessExpiresAt  time.Time
	refreshExpiresAt time.Time
}

// newSession creates a new authenticated session from a token pair.
func newSession(client *SDKClient, pair *TokenPairResponse) *Session {
	return &Session{
		client:           client,
		accessToken:      pair.AccessToken,
		refreshToken:     pair.RefreshToken,
		accessExpiresAt:  tokenExpiry(pair.AccessToken),
		refreshExpiresAt: tokenExpiry(pair.RefreshToken),
	}
}

// tokenExpiry reads the exp claim without verifying the signature; the
// server remains the authority on validity. Unknown expiry is treated as
// already expired so the session rotates eagerly.
func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Add(-refreshBuffer)
}

// getValidToken returns a valid access token, rotating tokens if needed.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.accessExpiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock (another goroutine may have refreshed)
	if time.Now().Before(s.accessExpiresAt) {
		return s.accessToken, nil
	}

	if err := s.rotateLocked(ctx); err != nil {
		return "", err
	}
	return s.accessToken, nil
}

// Refresh rotates the session tokens now, regardless of their expiry.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshExpiresAt = time.Time{}
	return s.rotateLocked(ctx)
}

// rotateLocked renews the refresh token when it is close to expiry and then
// mints a fresh access token. Callers must hold the write lock.
func (s *Session) rotateLocked(ctx context.Context) error {
	if s.refreshToken == "" {
		return ErrSessionExpired
	}

	if !time.Now().Before(s.refreshExpiresAt) {
		refresh, err := s.client.RotateRefreshToken(ctx, s.refreshToken)
		if err != nil {
			if HasCode(err, ErrorCodeTokenExpired) {
				return ErrSessionExpired
			}
			return fmt.Errorf("failed to rotate refresh token: %w", err)
		}
		s.refreshToken = refresh
		s.refreshExpiresAt = tokenExpiry(refresh)
	}

	access, err := s.client.RotateAccessToken(ctx, s.refreshToken)
	if err != nil {
		if HasCode(err, ErrorCodeTokenExpired) {
			return ErrSessionExpired
		}
		return fmt.Errorf("failed to rotate access token: %w", err)
	}
	s.accessToken = access
	s.accessExpiresAt = tokenExpiry(access)

	return nil
}

// AccessToken returns the current access token without checking expiration.
// For most use cases, prefer using the Session methods which handle refresh automatically.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Me returns the profile of the session's user.
// Automatically rotates the access token if expired.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}

	return s.client.GetMe(ctx, token)
}

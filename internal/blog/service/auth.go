package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/quill/internal/blog/domain"
	"github.com/aussiebroadwan/quill/internal/blog/store"
	"github.com/aussiebroadwan/quill/pkg/cryptox"
	"github.com/aussiebroadwan/quill/pkg/jwtx"
	"github.com/aussiebroadwan/quill/pkg/slogx"
	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	ErrUserNotFound         = errors.New("user_not_found")
	ErrBadCredentials       = errors.New("bad_credentials")
	ErrRefreshTokenRequired = errors.New("refresh_token_required")
	ErrPasswordLength       = errors.New("password_length")
	ErrInvalidRegistration  = errors.New("invalid_registration")
	ErrAlreadyRegistered    = errors.New("already_registered")
)

// AuthService runs the email/password flows and issues tokens. All fields
// are set once at startup and never mutated afterwards.
type AuthService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Verifier  jwtx.Verifier
	Passwords cryptox.PasswordHasher

	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is overridable in tests.
	Now func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// timingHash returns a hash at the configured cost. Unknown emails are
// compared against it so both login failures cost one bcrypt comparison.
func (s *AuthService) timingHash() string {
	s.dummyOnce.Do(func() {
		if h, err := s.Passwords.Hash("quill-unknown-user"); err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AuthenticateWithEmailAndPassword resolves the user by email and checks the
// password against the stored hash.
func (s *AuthService) AuthenticateWithEmailAndPassword(
	ctx context.Context,
	creds domain.Credentials,
) (domain.User, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = s.Passwords.Compare(creds.Password, s.timingHash())
			l.Info("login for unknown email")
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if !s.Passwords.Compare(creds.Password, u.PasswordHash) {
		l.Info("login with wrong password", slog.Int64("user_id", u.ID))
		return domain.User{}, ErrBadCredentials
	}

	return u, nil
}

// LoginWithEmail authenticates the credentials and issues a token pair.
func (s *AuthService) LoginWithEmail(ctx context.Context, creds domain.Credentials) (domain.TokenPair, error) {
	u, err := s.AuthenticateWithEmailAndPassword(ctx, creds)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return s.LoginUser(u)
}

// RegisterWithEmail validates the registration, stores the user with a
// hashed password and logs them straight in.
func (s *AuthService) RegisterWithEmail(ctx context.Context, reg domain.Registration) (domain.TokenPair, error) {
	if err := validateRegistration(reg); err != nil {
		return domain.TokenPair{}, err
	}

	hash, err := s.Passwords.Hash(reg.Password)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.Store.Users().CreateUser(ctx, domain.User{
		Nickname:     reg.Nickname,
		Email:        reg.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.TokenPair{}, ErrAlreadyRegistered
		}
		return domain.TokenPair{}, err
	}

	slogx.FromContext(ctx).Info("user registered", slog.Int64("user_id", u.ID))
	return s.LoginUser(u)
}

// validateRegistration wraps field errors so callers can match on the
// sentinel and still reach the per-field validation.Errors.
func validateRegistration(reg domain.Registration) error {
	err := reg.Validate()
	if err == nil {
		return nil
	}

	var fields validation.Errors
	if !errors.As(err, &fields) {
		return err
	}
	if _, ok := fields["password"]; ok {
		return fmt.Errorf("%w: %w", ErrPasswordLength, fields)
	}
	return fmt.Errorf("%w: %w", ErrInvalidRegistration, fields)
}

// RotateToken verifies a refresh token and signs a new token for the same
// subject and email. wantRefresh selects whether a refresh or an access token
// is minted. Access tokens are refused with ErrRefreshTokenRequired.
func (s *AuthService) RotateToken(ctx context.Context, token string, wantRefresh bool) (string, error) {
	claims, err := s.VerifyToken(token)
	if err != nil {
		return "", err
	}

	if !claims.IsRefresh() {
		slogx.FromContext(ctx).Info("rotation attempted with access token", slog.String("sub", claims.Subject))
		return "", ErrRefreshTokenRequired
	}

	id, err := claims.UserID()
	if err != nil {
		return "", err
	}

	return s.SignToken(domain.User{ID: id, Email: claims.Email}, wantRefresh)
}

// VerifyToken checks the signature and lifetime of token.
func (s *AuthService) VerifyToken(token string) (jwtx.Claims, error) {
	return s.Verifier.Verify(token)
}

// SignToken issues an access or refresh token for u.
func (s *AuthService) SignToken(u domain.User, refresh bool) (string, error) {
	typ, ttl := jwtx.TokenTypeAccess, s.AccessTTL
	if refresh {
		typ, ttl = jwtx.TokenTypeRefresh, s.RefreshTTL
	}

	claims := jwtx.NewClaims(u.ID, u.Email, typ, ttl, s.Issuer, s.now())
	return s.Signer.Sign(claims)
}

// LoginUser issues a fresh access and refresh token pair for u.
func (s *AuthService) LoginUser(u domain.User) (domain.TokenPair, error) {
	access, err := s.SignToken(u, false)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refresh, err := s.SignToken(u, true)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

package authsdk

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/quill/pkg/httpx"
)

// LoginWithEmail exchanges email and password for a token pair.
func (c *SDKClient) LoginWithEmail(ctx context.Context, email, password string) (*TokenPairResponse, error) {
	var pair TokenPairResponse
	err := c.call(ctx, http.MethodPost, "/auth/login/email", nil,
		httpx.BasicHeader(email, password), http.StatusOK, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// RegisterWithEmail creates an account and returns its first token pair.
func (c *SDKClient) RegisterWithEmail(ctx context.Context, req RegisterRequest) (*TokenPairResponse, error) {
	var pair TokenPairResponse
	err := c.call(ctx, http.MethodPost, "/auth/register/email", req, "", http.StatusCreated, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// RotateAccessToken mints a new access token from a refresh token.
func (c *SDKClient) RotateAccessToken(ctx context.Context, refreshToken string) (string, error) {
	var out AccessTokenResponse
	err := c.call(ctx, http.MethodPost, "/auth/token/access", nil,
		httpx.BearerHeader(refreshToken), http.StatusOK, &out)
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// RotateRefreshToken mints a new refresh token from a refresh token.
func (c *SDKClient) RotateRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	var out RefreshTokenResponse
	err := c.call(ctx, http.MethodPost, "/auth/token/refresh", nil,
		httpx.BearerHeader(refreshToken), http.StatusOK, &out)
	if err != nil {
		return "", err
	}
	return out.RefreshToken, nil
}

// GetMe fetches the profile of the user owning accessToken.
func (c *SDKClient) GetMe(ctx context.Context, accessToken string) (*UserResponse, error) {
	var user UserResponse
	err := c.call(ctx, http.MethodGet, "/users/me", nil,
		httpx.BearerHeader(accessToken), http.StatusOK, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

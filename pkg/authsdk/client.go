package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the blog service. It covers the public
// endpoints and creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login logs in with email and password and returns a Session.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	pair, err := c.LoginWithEmail(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return newSession(c, pair), nil
}

// Register creates an account and returns a Session for it.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	pair, err := c.RegisterWithEmail(ctx, req)
	if err != nil {
		return nil, err
	}
	return newSession(c, pair), nil
}

// NewSessionFromTokens creates a Session from previously issued tokens.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken string) *Session {
	return newSession(c, &TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

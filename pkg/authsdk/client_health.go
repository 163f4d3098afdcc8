package authsdk

import (
	"context"
	"net/http"
)

// GetLiveness reports whether the blog process is up. It does not touch the
// database.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.probe(ctx, "/livez")
}

// GetReadiness reports whether the blog service can take traffic. A degraded
// database or signer comes back as an *APIError with status 503.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.probe(ctx, "/readyz")
}

func (c *SDKClient) probe(ctx context.Context, path string) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.call(ctx, http.MethodGet, path, nil, "", http.StatusOK, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

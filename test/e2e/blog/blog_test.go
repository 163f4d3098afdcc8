//go:build e2e

package blog_test

import (
	"testing"

	"github.com/aussiebroadwan/quill/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints verifies the liveness and readiness probes.
func TestHealthEndpoints(t *testing.T) {
	baseURL, cleanup := setupBlogContainer(t, nil)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
	require.NotEmpty(t, health.Version)

	ready, err := client.GetReadiness(t.Context())
	assertHealthy(t, ready, err)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)
}

// TestAccountLifecycle registers, logs in, rotates tokens and reads the profile.
func TestAccountLifecycle(t *testing.T) {
	baseURL, cleanup := setupBlogContainer(t, nil)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	registered := registerUser(t, client, "writer", "writer@quill.test", "pw12")

	me, err := registered.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "writer", me.Nickname)
	require.Equal(t, "USER", me.Role)

	session, err := client.Login(t.Context(), "writer@quill.test", "pw12")
	require.NoError(t, err)

	before := session.RefreshToken()
	require.NoError(t, session.Refresh(t.Context()))
	require.NotEqual(t, before, session.RefreshToken())

	me2, err := session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, me.ID, me2.ID)

	t.Logf("User %d registered, logged in and rotated tokens", me.ID)
}

// TestInvalidCredentials verifies both login failures look the same.
func TestInvalidCredentials(t *testing.T) {
	baseURL, cleanup := setupBlogContainer(t, nil)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	registerUser(t, client, "writer", "writer@quill.test", "pw12")

	_, errWrong := client.LoginWithEmail(t.Context(), "writer@quill.test", "nope")
	assertCode(t, errWrong, authsdk.ErrorCodeInvalidCredentials)

	_, errUnknown := client.LoginWithEmail(t.Context(), "ghost@quill.test", "pw12")
	assertCode(t, errUnknown, authsdk.ErrorCodeInvalidCredentials)

	require.Equal(t, errWrong.Error(), errUnknown.Error())
}

// TestDuplicateRegistration verifies email and nickname uniqueness.
func TestDuplicateRegistration(t *testing.T) {
	baseURL, cleanup := setupBlogContainer(t, nil)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	registerUser(t, client, "writer", "writer@quill.test", "pw12")

	_, err := client.RegisterWithEmail(t.Context(), authsdk.RegisterRequest{
		Nickname: "writer2", Email: "writer@quill.test", Password: "pw12",
	})
	assertCode(t, err, authsdk.ErrorCodeAlreadyRegistered)

	_, err = client.RegisterWithEmail(t.Context(), authsdk.RegisterRequest{
		Nickname: "writer", Email: "other@quill.test", Password: "pw12",
	})
	assertCode(t, err, authsdk.ErrorCodeAlreadyRegistered)
}

// TestAccessTokenCannotRotate verifies rotation endpoints only take refresh tokens.
func TestAccessTokenCannotRotate(t *testing.T) {
	baseURL, cleanup := setupBlogContainer(t, nil)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	session := registerUser(t, client, "writer", "writer@quill.test", "pw12")

	_, err := client.RotateAccessToken(t.Context(), session.AccessToken())
	assertCode(t, err, authsdk.ErrorCodeRefreshTokenRequired)

	_, err = client.RotateRefreshToken(t.Context(), session.AccessToken())
	assertCode(t, err, authsdk.ErrorCodeRefreshTokenRequired)
}

// TestShortAccessTokens verifies an expired access token is reported as
// expired and the session recovers by rotating.
func TestShortAccessTokens(t *testing.T) {
	baseURL, cleanup := setupBlogContainer(t, map[string]string{
		"BLOG_ACCESS_TTL": "1s",
	})
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	session := registerUser(t, client, "writer", "writer@quill.test", "pw12")

	// The session treats the 1s token as already stale and rotates before use.
	me, err := session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "writer", me.Nickname)
}

package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	bloghttp "github.com/aussiebroadwan/quill/internal/blog/http"
	"github.com/aussiebroadwan/quill/internal/blog/service"
	"github.com/aussiebroadwan/quill/internal/blog/store/drivers/sqlite"
	"github.com/aussiebroadwan/quill/pkg/authsdk"
	"github.com/aussiebroadwan/quill/pkg/cryptox"
	"github.com/aussiebroadwan/quill/pkg/httpx"
	"github.com/aussiebroadwan/quill/pkg/jwtx"
	"github.com/aussiebroadwan/quill/pkg/slogx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testIssuer  = "quill"
	testVersion = "test"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type testEnv struct {
	srv    *httptest.Server
	client *authsdk.SDKClient
	signer jwtx.Signer
	store  *sqlite.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "blog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{Issuer: testIssuer})

	router := bloghttp.NewRouter(signer, verifier, testVersion, st, slogx.Discard())
	router.AuthService = &service.AuthService{
		Store:      st,
		Signer:     signer,
		Verifier:   verifier,
		Passwords:  cryptox.PasswordHasher{Cost: bcrypt.MinCost},
		Issuer:     testIssuer,
		AccessTTL:  jwtx.DefaultAccessTokenTTL,
		RefreshTTL: jwtx.DefaultRefreshTokenTTL,
	}
	router.UserService = &service.UserService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testEnv{
		srv:    srv,
		client: authsdk.NewSDKClient(srv.URL),
		signer: signer,
		store:  st,
	}
}

func (e *testEnv) register(t *testing.T, nickname, email, password string) *authsdk.TokenPairResponse {
	t.Helper()
	pair, err := e.client.RegisterWithEmail(context.Background(), authsdk.RegisterRequest{
		Nickname: nickname,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return pair
}

// mint signs a token directly so tests can craft expired or foreign tokens.
func (e *testEnv) mint(t *testing.T, userID int64, typ jwtx.TokenType, ttl time.Duration, issuedAt time.Time) string {
	t.Helper()
	tok, err := e.signer.Sign(jwtx.NewClaims(userID, "a@x.com", typ, ttl, testIssuer, issuedAt))
	require.NoError(t, err)
	return tok
}

// post sends a bare request with the given Authorization header and returns
// the status and decoded error body.
func (e *testEnv) post(t *testing.T, path, authorization string) (int, authsdk.ErrorResponse) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, e.srv.URL+path, nil)
	require.NoError(t, err)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body authsdk.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, authsdk.HasCode(err, code), "expected %s, got %v", code, err)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	pair := env.register(t, "writer", "a@x.com", "pw12")
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	me, err := env.client.GetMe(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "writer", me.Nickname)
	require.Equal(t, "a@x.com", me.Email)
	require.Equal(t, "USER", me.Role)
	require.Positive(t, me.ID)

	login, err := env.client.LoginWithEmail(ctx, "a@x.com", "pw12")
	require.NoError(t, err)
	require.NotEqual(t, pair.AccessToken, login.AccessToken)

	me2, err := env.client.GetMe(ctx, login.AccessToken)
	require.NoError(t, err)
	require.Equal(t, me.ID, me2.ID)
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "writer", "a@x.com", "pw12")

	_, errUnknown := env.client.LoginWithEmail(ctx, "nobody@x.com", "pw12")
	requireCode(t, errUnknown, authsdk.ErrorCodeInvalidCredentials)

	_, errWrong := env.client.LoginWithEmail(ctx, "a@x.com", "nope")
	requireCode(t, errWrong, authsdk.ErrorCodeInvalidCredentials)

	require.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLogin_BadHeader(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "writer", "a@x.com", "pw12")

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong scheme", "Bearer " + httpx.EncodeBasic("a@x.com", "pw12")},
		{"lowercase scheme", "basic " + httpx.EncodeBasic("a@x.com", "pw12")},
		{"extra space", "Basic  " + httpx.EncodeBasic("a@x.com", "pw12")},
		{"not base64", "Basic !!!"},
		{"no colon", "Basic " + httpx.EncodeBasic("a@x.com", "")[:8]},
		{"colon in password", httpx.BasicHeader("a@x.com", "p:w")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := env.post(t, "/auth/login/email", tc.header)
			require.Equal(t, http.StatusUnauthorized, status)
			require.Equal(t, authsdk.ErrorCodeInvalidHeader, body.Error)
		})
	}
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tests := []struct {
		name  string
		req   authsdk.RegisterRequest
		field string
	}{
		{"password too short", authsdk.RegisterRequest{Nickname: "w", Email: "a@x.com", Password: "abc"}, "password"},
		{"password too long", authsdk.RegisterRequest{Nickname: "w", Email: "a@x.com", Password: "abcdefghi"}, "password"},
		{"nickname too long", authsdk.RegisterRequest{Nickname: strings.Repeat("n", 21), Email: "a@x.com", Password: "pw12"}, "nickname"},
		{"nickname missing", authsdk.RegisterRequest{Email: "a@x.com", Password: "pw12"}, "nickname"},
		{"bad email", authsdk.RegisterRequest{Nickname: "w", Email: "not-an-email", Password: "pw12"}, "email"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.client.RegisterWithEmail(ctx, tc.req)

			var valErr *authsdk.ValidationError
			require.ErrorAs(t, err, &valErr)
			require.Contains(t, valErr.Details, tc.field)
		})
	}
}

func TestRegister_Boundaries(t *testing.T) {
	env := newTestEnv(t)

	env.register(t, "n", "four@x.com", "abcd")
	env.register(t, strings.Repeat("n", 20), "eight@x.com", "abcdefgh")
}

func TestRegister_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	for name, body := range map[string]string{
		"not json":      "{",
		"unknown field": `{"nickname":"w","email":"a@x.com","password":"pw12","role":"ADMIN"}`,
		"trailing data": `{"nickname":"w","email":"a@x.com","password":"pw12"} {}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(env.srv.URL+"/auth/register/email", "application/json", strings.NewReader(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var out authsdk.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			require.Equal(t, authsdk.ErrorCodeInvalidRequest, out.Error)
		})
	}
}

func TestRegister_Conflict(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "writer", "a@x.com", "pw12")

	t.Run("email taken", func(t *testing.T) {
		_, err := env.client.RegisterWithEmail(ctx, authsdk.RegisterRequest{
			Nickname: "other", Email: "a@x.com", Password: "pw12",
		})
		requireCode(t, err, authsdk.ErrorCodeAlreadyRegistered)

		var apiErr *authsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	})

	t.Run("nickname taken", func(t *testing.T) {
		_, err := env.client.RegisterWithEmail(ctx, authsdk.RegisterRequest{
			Nickname: "writer", Email: "b@x.com", Password: "pw12",
		})
		requireCode(t, err, authsdk.ErrorCodeAlreadyRegistered)
	})
}

func TestRotation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	pair := env.register(t, "writer", "a@x.com", "pw12")

	t.Run("refresh token mints access token", func(t *testing.T) {
		access, err := env.client.RotateAccessToken(ctx, pair.RefreshToken)
		require.NoError(t, err)

		me, err := env.client.GetMe(ctx, access)
		require.NoError(t, err)
		require.Equal(t, "a@x.com", me.Email)
	})

	t.Run("refresh token mints refresh token", func(t *testing.T) {
		refresh, err := env.client.RotateRefreshToken(ctx, pair.RefreshToken)
		require.NoError(t, err)
		require.NotEqual(t, pair.RefreshToken, refresh)

		// The new refresh token is itself usable.
		_, err = env.client.RotateAccessToken(ctx, refresh)
		require.NoError(t, err)
	})

	t.Run("access token is refused", func(t *testing.T) {
		_, err := env.client.RotateAccessToken(ctx, pair.AccessToken)
		requireCode(t, err, authsdk.ErrorCodeRefreshTokenRequired)

		_, err = env.client.RotateRefreshToken(ctx, pair.AccessToken)
		requireCode(t, err, authsdk.ErrorCodeRefreshTokenRequired)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		expired := env.mint(t, 1, jwtx.TokenTypeRefresh, time.Minute, time.Now().Add(-time.Hour))
		_, err := env.client.RotateAccessToken(ctx, expired)
		requireCode(t, err, authsdk.ErrorCodeTokenExpired)
	})

	t.Run("forged refresh token", func(t *testing.T) {
		forger, err := jwtx.NewSignerHS256([]byte("fedcba9876543210fedcba9876543210"))
		require.NoError(t, err)
		forged, err := forger.Sign(jwtx.NewClaims(1, "a@x.com", jwtx.TokenTypeRefresh, time.Hour, testIssuer, time.Now()))
		require.NoError(t, err)

		_, err = env.client.RotateAccessToken(ctx, forged)
		requireCode(t, err, authsdk.ErrorCodeInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := env.client.RotateRefreshToken(ctx, "garbage")
		requireCode(t, err, authsdk.ErrorCodeInvalidToken)
	})

	t.Run("bad header", func(t *testing.T) {
		for _, header := range []string{"", pair.RefreshToken, "Basic " + pair.RefreshToken, "Bearer " + pair.RefreshToken + " x"} {
			status, body := env.post(t, "/auth/token/access", header)
			require.Equal(t, http.StatusUnauthorized, status)
			require.Equal(t, authsdk.ErrorCodeInvalidHeader, body.Error)
		}
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	pair := env.register(t, "writer", "a@x.com", "pw12")

	t.Run("refresh token is refused", func(t *testing.T) {
		_, err := env.client.GetMe(ctx, pair.RefreshToken)
		requireCode(t, err, authsdk.ErrorCodeInvalidToken)
	})

	t.Run("expired access token", func(t *testing.T) {
		expired := env.mint(t, 1, jwtx.TokenTypeAccess, time.Minute, time.Now().Add(-time.Hour))
		_, err := env.client.GetMe(ctx, expired)
		requireCode(t, err, authsdk.ErrorCodeTokenExpired)
	})

	t.Run("unknown user", func(t *testing.T) {
		ghost := env.mint(t, 9999, jwtx.TokenTypeAccess, time.Minute, time.Now())
		_, err := env.client.GetMe(ctx, ghost)
		requireCode(t, err, authsdk.ErrorCodeInvalidToken)
	})
}

func TestSessionRotatesThroughServer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "writer", "a@x.com", "pw12")

	session, err := env.client.Login(ctx, "a@x.com", "pw12")
	require.NoError(t, err)

	before := session.AccessToken()
	require.NoError(t, session.Refresh(ctx))
	require.NotEqual(t, before, session.AccessToken())

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "writer", me.Nickname)
}

func TestHealth(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	live, err := env.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, testVersion, live.Version)

	ready, err := env.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)

	// A closed database makes the service unready but still alive.
	require.NoError(t, env.store.Close())

	_, err = env.client.GetReadiness(ctx)
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)

	_, err = env.client.GetLiveness(ctx)
	require.NoError(t, err)
}

func TestRequestIDEchoed(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.srv.URL + "/livez")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NotEmpty(t, resp.Header.Get(slogx.RequestIDHeader))
}

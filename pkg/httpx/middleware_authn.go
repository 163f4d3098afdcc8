package httpx

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/quill/pkg/jwtx"
	"github.com/aussiebroadwan/quill/pkg/slogx"
)

// AuthnMiddleware requires a valid access token in a Bearer Authorization
// header. Refresh tokens are refused so they can only be used for rotation.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			header := r.Header.Get("Authorization")
			if header == "" {
				writeBearerError(w, "", "invalid_header", "missing bearer token")
				return
			}

			raw, err := ExtractToken(header, SchemeBearer)
			if err != nil {
				writeBearerError(w, ChallengeInvalidRequest, "invalid_header", "malformed bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrExpired) {
					writeBearerError(w, ChallengeInvalidToken, "token_expired", "token expired")
					return
				}
				writeBearerError(w, ChallengeInvalidToken, "invalid_token", "token verification failed")
				log.Warn("jwt verify failed", "err", err)
				return
			}

			if claims.Type != jwtx.TokenTypeAccess {
				writeBearerError(w, ChallengeInvalidToken, "invalid_token", "access token required")
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				writeBearerError(w, ChallengeInvalidToken, "invalid_token", "token verification failed")
				return
			}

			// Inject into context for downstream handlers.
			ctx = contextWithAuth(ctx, userID, claims)
			ctx = slogx.WithUserID(ctx, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750 challenge error codes.
const (
	ChallengeInvalidRequest = "invalid_request"
	ChallengeInvalidToken   = "invalid_token"
)

// BearerChallenge builds a WWW-Authenticate value. An empty challenge yields
// a bare "Bearer", used when the request carried no credentials at all.
func BearerChallenge(challenge, desc string) string {
	if challenge == "" {
		return SchemeBearer
	}
	return SchemeBearer + ` error="` + challenge + `", error_description="` + desc + `"`
}

// writeBearerError sends the RFC 6750 challenge in the header and the API
// error code in a JSON body shaped like the rest of the API errors.
func writeBearerError(w http.ResponseWriter, challenge, code, desc string) {
	w.Header().Set("WWW-Authenticate", BearerChallenge(challenge, desc))
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             code,
		"error_description": desc,
	})
}

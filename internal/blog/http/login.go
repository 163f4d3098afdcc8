package http

import (
	"net/http"

	"github.com/aussiebroadwan/quill/internal/blog/domain"
	"github.com/aussiebroadwan/quill/internal/blog/service"
	"github.com/aussiebroadwan/quill/pkg/authsdk"
	"github.com/aussiebroadwan/quill/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP logs a user in with HTTP Basic credentials.
//
//	@Summary		Log in with email
//	@Description	Authenticates with "Basic base64(email:password)" and returns an access and refresh token.
//	@Description	Unknown emails and wrong passwords get the same response.
//	@Tags			Auth
//	@Security		BasicAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.TokenPairResponse	"Access and refresh token"
//	@Failure		401	{object}	authsdk.ErrorResponse		"invalid_header or invalid_credentials"
//	@Failure		500	{object}	authsdk.ErrorResponse		"Internal server error"
//	@Router			/auth/login/email [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, err := httpx.ExtractToken(r.Header.Get("Authorization"), httpx.SchemeBasic)
	if err != nil {
		writeError(w, r, err)
		return
	}

	email, password, err := httpx.DecodeBasic(raw)
	if err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.AuthService.LoginWithEmail(r.Context(), domain.Credentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

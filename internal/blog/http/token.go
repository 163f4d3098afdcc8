package http

import (
	"net/http"

	"github.com/aussiebroadwan/quill/internal/blog/service"
	"github.com/aussiebroadwan/quill/pkg/authsdk"
	"github.com/aussiebroadwan/quill/pkg/httpx"
)

// TokenHandler rotates a refresh token into a new access token, or into a new
// refresh token when Refresh is set.
type TokenHandler struct {
	AuthService *service.AuthService
	Refresh     bool
}

// ServeHTTP handles both rotation endpoints.
//
//	@Summary		Rotate tokens
//	@Description	Exchanges a refresh token for a new access token (/auth/token/access) or a new refresh token (/auth/token/refresh).
//	@Description	Access tokens are refused with refresh_token_required.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.AccessTokenResponse	"New access token (access endpoint)"
//	@Success		200	{object}	authsdk.RefreshTokenResponse	"New refresh token (refresh endpoint)"
//	@Failure		401	{object}	authsdk.ErrorResponse			"invalid_header, invalid_token, token_expired or refresh_token_required"
//	@Failure		500	{object}	authsdk.ErrorResponse			"Internal server error"
//	@Router			/auth/token/access [post]
//	@Router			/auth/token/refresh [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, err := httpx.ExtractToken(r.Header.Get("Authorization"), httpx.SchemeBearer)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.AuthService.RotateToken(r.Context(), raw, h.Refresh)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if h.Refresh {
		httpx.WriteJSON(w, http.StatusOK, authsdk.RefreshTokenResponse{RefreshToken: token})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.AccessTokenResponse{AccessToken: token})
}

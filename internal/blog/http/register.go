package http

import (
	"net/http"

	"github.com/aussiebroadwan/quill/internal/blog/domain"
	"github.com/aussiebroadwan/quill/internal/blog/service"
	"github.com/aussiebroadwan/quill/pkg/authsdk"
	"github.com/aussiebroadwan/quill/pkg/httpx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP creates an account and logs it in.
//
//	@Summary		Register with email
//	@Description	Creates a user with role USER. Nickname is at most 20 characters, password 4 to 8 characters.
//	@Description	Email and nickname must both be unused.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest			true	"New account"
//	@Success		201		{object}	authsdk.TokenPairResponse		"Access and refresh token"
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"Field validation failed"
//	@Failure		409		{object}	authsdk.ErrorResponse			"Email or nickname already registered"
//	@Failure		500		{object}	authsdk.ErrorResponse			"Internal server error"
//	@Router			/auth/register/email [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.AuthService.RegisterWithEmail(r.Context(), domain.Registration{
		Nickname: req.Nickname,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/quill/internal/blog/service"
	"github.com/aussiebroadwan/quill/internal/blog/store"
	"github.com/aussiebroadwan/quill/pkg/authsdk"
	"github.com/aussiebroadwan/quill/pkg/httpx"
	"github.com/aussiebroadwan/quill/pkg/slogx"
)

type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns the profile of the authenticated user.
//
//	@Summary		Get current user
//	@Description	Returns the user owning the access token.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse	"id, nickname, email, role"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid, expired or missing access token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/users/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		// The token outlived its account.
		if errors.Is(err, store.ErrNotFound) {
			authsdk.ErrInvalidToken.WriteError(w)
			return
		}
		log.Warn("failed to load user", slog.Int64("user_id", userID), slog.Any("err", err))
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{
		ID:       user.ID,
		Nickname: user.Nickname,
		Email:    user.Email,
		Role:     string(user.Role),
	})
}

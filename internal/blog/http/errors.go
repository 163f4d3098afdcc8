package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/quill/internal/blog/service"
	"github.com/aussiebroadwan/quill/pkg/authsdk"
	"github.com/aussiebroadwan/quill/pkg/httpx"
	"github.com/aussiebroadwan/quill/pkg/jwtx"
	"github.com/aussiebroadwan/quill/pkg/slogx"
	validation "github.com/go-ozzo/ozzo-validation"
)

// writeError maps flow errors onto their wire form. Unknown errors are logged
// and reported as a generic server error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, httpx.ErrInvalidHeaderFormat),
		errors.Is(err, httpx.ErrInvalidBasicPayload):
		authsdk.ErrInvalidHeader.WriteError(w)

	case errors.Is(err, jwtx.ErrExpired):
		authsdk.ErrTokenExpired.WriteError(w)

	case errors.Is(err, jwtx.ErrInvalidSig),
		errors.Is(err, jwtx.ErrMalformed),
		errors.Is(err, jwtx.ErrNotYetValid),
		errors.Is(err, jwtx.ErrIssuer),
		errors.Is(err, jwtx.ErrInvalidClaim):
		authsdk.ErrInvalidToken.WriteError(w)

	case errors.Is(err, service.ErrRefreshTokenRequired):
		authsdk.ErrRefreshTokenRequired.WriteError(w)

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBadCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w)

	case errors.Is(err, service.ErrPasswordLength),
		errors.Is(err, service.ErrInvalidRegistration):
		validationError(err).WriteError(w)

	case errors.Is(err, service.ErrAlreadyRegistered):
		authsdk.ErrAlreadyRegistered.WriteError(w)

	case errors.Is(err, httpx.ErrInvalidJSON):
		authsdk.ErrInvalidRequest.WriteError(w)

	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("err", err))
		authsdk.ErrServerError.WriteError(w)
	}
}

func validationError(err error) *authsdk.ValidationError {
	details := map[string]string{}

	var fields validation.Errors
	if errors.As(err, &fields) {
		for name, fieldErr := range fields {
			details[name] = fieldErr.Error()
		}
	}

	return &authsdk.ValidationError{
		Message: "invalid registration",
		Details: details,
	}
}

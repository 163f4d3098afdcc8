package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/quill/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeInvalidHeader        = "invalid_header"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeTokenExpired         = "token_expired"
	ErrorCodeRefreshTokenRequired = "refresh_token_required"
	ErrorCodeInvalidCredentials   = "invalid_credentials"
	ErrorCodeValidation           = "validation_error"
	ErrorCodeAlreadyRegistered    = "already_registered"
	ErrorCodeServerError          = "server_error"
)

// ============================================================================
// APIError - error type shared by server and client
// ============================================================================

// APIError is the error body returned by the blog service. The server uses
// it to write responses and the SDK client returns it from failed calls.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine readable error code (e.g. "invalid_token")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	if e.StatusCode == http.StatusUnauthorized {
		challenge := httpx.ChallengeInvalidToken
		if e.Code == ErrorCodeInvalidHeader {
			challenge = httpx.ChallengeInvalidRequest
		}
		w.Header().Set("WWW-Authenticate", httpx.BearerChallenge(challenge, e.Description))
	}
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the request body cannot be read.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidHeader is returned when the Authorization header is missing,
	// uses the wrong scheme or carries undecodable Basic credentials.
	ErrInvalidHeader = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidHeader,
		Description: "invalid authorization header",
	}

	// ErrInvalidToken is returned when a token is malformed or its signature
	// does not verify.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the token is malformed or its signature is invalid",
	}

	// ErrTokenExpired is returned for a genuine token past its expiry.
	ErrTokenExpired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeTokenExpired,
		Description: "token expired",
	}

	// ErrRefreshTokenRequired is returned when an access token is presented
	// to a rotation endpoint.
	ErrRefreshTokenRequired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeRefreshTokenRequired,
		Description: "token rotation requires a refresh token",
	}

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so callers cannot probe which accounts exist.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	// ErrAlreadyRegistered is returned when the email or nickname is taken.
	ErrAlreadyRegistered = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeAlreadyRegistered,
		Description: "email or nickname already registered",
	}

	// ErrServerError is returned when the server hit an unexpected condition.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// HasCode reports whether err is an *APIError carrying code.
func HasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// ============================================================================
// Validation Errors
// ============================================================================

// ValidationError is returned when a request body fails field validation.
type ValidationError struct {
	Message string
	Details map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %v", ErrorCodeValidation, e.Message, e.Details)
}

// WriteError writes the validation error as a 400 Bad Request.
func (e *ValidationError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Code:    ErrorCodeValidation,
		Message: e.Message,
		Details: e.Details,
	})
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into a typed error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && valErr.Code != "" {
		return &ValidationError{
			Message: valErr.Message,
			Details: valErr.Details,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}

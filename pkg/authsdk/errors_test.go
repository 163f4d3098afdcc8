package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIErrorWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ErrTokenExpired.WriteError(rec)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.Equal(t, `Bearer error="invalid_token", error_description="token expired"`, rec.Header().Get("WWW-Authenticate"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, ErrorCodeTokenExpired, body.Error)
	require.Equal(t, "token expired", body.ErrorDescription)
}

func TestInvalidHeaderChallengesInvalidRequest(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ErrInvalidHeader.WriteError(rec)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_request"`)
}

func TestConflictHasNoAuthenticateHeader(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ErrAlreadyRegistered.WriteError(rec)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Empty(t, rec.Header().Get("WWW-Authenticate"))
}

func TestValidationErrorWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	(&ValidationError{Message: "invalid registration", Details: map[string]string{"password": "the length must be between 4 and 8"}}).WriteError(rec)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ValidationErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, ErrorCodeValidation, body.Code)
	require.Contains(t, body.Details, "password")
}

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
	})

	t.Run("api error", func(t *testing.T) {
		err := parseErrorResponse(
			&http.Response{StatusCode: http.StatusUnauthorized},
			[]byte(`{"error":"invalid_credentials","error_description":"invalid email or password"}`),
		)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.True(t, HasCode(err, ErrorCodeInvalidCredentials))
		require.True(t, HasCode(fmt.Errorf("wrapped: %w", err), ErrorCodeInvalidCredentials))
	})

	t.Run("validation error", func(t *testing.T) {
		err := parseErrorResponse(
			&http.Response{StatusCode: http.StatusBadRequest},
			[]byte(`{"code":"validation_error","message":"invalid registration","details":{"email":"must be a valid email address"}}`),
		)

		var valErr *ValidationError
		require.True(t, errors.As(err, &valErr))
		require.Equal(t, "must be a valid email address", valErr.Details["email"])
	})

	t.Run("unknown body", func(t *testing.T) {
		err := parseErrorResponse(&http.Response{StatusCode: http.StatusBadGateway}, []byte("<html>"))
		require.True(t, HasCode(err, ErrorCodeServerError))
	})
}

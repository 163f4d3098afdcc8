package httpx

import (
	"encoding/base64"
	"errors"
	"strings"
)

// Authorization header schemes understood by ExtractToken.
const (
	SchemeBearer = "Bearer"
	SchemeBasic  = "Basic"
)

var (
	ErrInvalidHeaderFormat = errors.New("httpx: invalid authorization header")
	ErrInvalidBasicPayload = errors.New("httpx: invalid basic credentials")
)

// ExtractToken pulls the token out of an Authorization header value of the
// form "<scheme> <token>". The header must split into exactly two
// space-separated parts, so doubled or trailing spaces are rejected.
func ExtractToken(header, scheme string) (string, error) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != scheme {
		return "", ErrInvalidHeaderFormat
	}
	return parts[1], nil
}

// DecodeBasic decodes a Basic token into an email and password.
//
// The decoded payload must contain exactly one ':'. Passwords that contain a
// colon therefore cannot be sent through Basic auth.
func DecodeBasic(token string) (email, password string, err error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", "", ErrInvalidBasicPayload
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 2 {
		return "", "", ErrInvalidBasicPayload
	}
	return parts[0], parts[1], nil
}

// EncodeBasic builds the token DecodeBasic accepts.
func EncodeBasic(email, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
}

// BasicHeader returns a complete "Basic <token>" header value.
func BasicHeader(email, password string) string {
	return SchemeBasic + " " + EncodeBasic(email, password)
}

// BearerHeader returns a complete "Bearer <token>" header value.
func BearerHeader(token string) string {
	return SchemeBearer + " " + token
}

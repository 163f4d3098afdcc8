package authsdk

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the JSON body of every non-validation error.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the error code (e.g., "invalid_token", "token_expired")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned when the register body fails validation.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details maps field names to validation messages
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenPairResponse is returned by the login and register endpoints.
type TokenPairResponse struct {
	// AccessToken is a short lived JWT for authenticated requests
	AccessToken string `json:"accessToken"`

	// RefreshToken is a longer lived JWT that can only mint new tokens
	RefreshToken string `json:"refreshToken"`
}

// AccessTokenResponse is returned by POST /auth/token/access.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// RefreshTokenResponse is returned by POST /auth/token/refresh.
type RefreshTokenResponse struct {
	RefreshToken string `json:"refreshToken"`
}

// ============================================================================
// User Types
// ============================================================================

// RegisterRequest is the body of POST /auth/register/email.
type RegisterRequest struct {
	// Nickname is unique and at most 20 characters
	Nickname string `json:"nickname"`

	// Email is unique and used to log in
	Email string `json:"email"`

	// Password must be 4 to 8 characters
	Password string `json:"password"`
}

// UserResponse describes the authenticated user.
type UserResponse struct {
	ID       int64  `json:"id"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Signer indicates the JWT signing capability status
	Signer string `json:"signer"`
}

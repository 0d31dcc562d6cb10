package domain

import "errors"

// Authentication.
var (
	ErrUnauthenticated       = errors.New("could not validate credentials")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrTooManyAttempts       = errors.New("too many failed login attempts")
)

// Authorization.
var (
	ErrForbidden    = errors.New("forbidden")
	ErrInactiveUser = errors.New("inactive user")
)

// Accounts.
var (
	ErrUserExists        = errors.New("username already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidRole       = errors.New("invalid role")
	ErrSelfDeactivation  = errors.New("admin cannot deactivate themselves")
	ErrRoleNotConfigured = errors.New("default role not configured")
)

// Projects and requests.
var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrInvalidPagination = errors.New("invalid pagination parameters")
	ErrInvalidInput      = errors.New("invalid input")
)

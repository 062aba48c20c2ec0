package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrEmployeeIDTaken    = errors.New("employee id already exists")
	ErrEmployeeIDMismatch = errors.New("invalid employee id")

	ErrTokenRequired = errors.New("token is required")
	// ErrTokenInvalid covers forged, expired, and already-used magic-link
	// tokens alike so callers cannot tell which applied.
	ErrTokenInvalid = errors.New("invalid or expired token")

	ErrRefreshRequired = errors.New("refresh token is required")
	ErrRefreshInvalid  = errors.New("invalid refresh token")
	// ErrRefreshRevoked means the user has no stored refresh hash: logout or
	// a later rotation invalidated the token. Surfaced to clients with the
	// same message as ErrRefreshInvalid.
	ErrRefreshRevoked = errors.New("refresh token revoked")

	ErrUnauthorized = errors.New("unauthorized")
)

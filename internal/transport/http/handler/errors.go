package handler

const (
	errInternalServer = "Internal server error"
	errUserNotFound   = "User not found"

	// One message per credential class, never per failure reason.
	errTokenInvalid   = "Invalid or expired token"
	errRefreshInvalid = "Invalid refresh token"
)

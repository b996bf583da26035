package services

import "errors"

// Shared errors used across services and the HTTP error mapper.
var (
	// Generic not-found.
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules.
	ErrValidationFailed   = errors.New("validation failed")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrEventNameRequired  = errors.New("event name is required")
	ErrEventDateInvalid   = errors.New("event date must use the YYYY-MM-DD format")
	ErrEventTimeInvalid   = errors.New("event time must use the HH:MM format")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrSamePlayer         = errors.New("a match requires two distinct players")
	ErrCrossEventPlayers  = errors.New("both players must belong to the same event")
	ErrMatchInvalidWinner = errors.New("winner must be one of the two match players")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")

	// Conflicts.
	ErrUserEmailConflict = errors.New("email address is already in use")
	ErrOrganizerConflict = errors.New("user is already an organizer of this event")

	// Authentication and authorization.
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrUserInactive           = errors.New("user account is deactivated")

	// Entity-specific not-found variants for richer context.
	ErrUserNotFound      = errors.New("user not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrMatchNotFound     = errors.New("match not found")
	ErrOrganizerNotFound = errors.New("event organizer not found")
	ErrBackupNotFound    = errors.New("backup not found")
)

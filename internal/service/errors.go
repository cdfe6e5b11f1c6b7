package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so responses never reveal which one was at fault.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountLocked is returned while a lockout is in force. Once the
	// lock expiry passes, login attempts are evaluated as if the account
	// was never locked.
	ErrAccountLocked = errors.New("account is locked")

	ErrSessionCreationFailed   = errors.New("session creation failed")
	ErrSessionExpiredOrInvalid = errors.New("session is expired or invalid")
	ErrSessionRevoked          = errors.New("session has been revoked")

	// ErrForbiddenRecordAccess is returned when a regular user targets
	// records belonging to a different user.
	ErrForbiddenRecordAccess = errors.New("no permission to access records of another user")
)

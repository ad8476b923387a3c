package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrSessionRevoked is returned when a syntactically valid token points
	// at a session row that no longer exists or is past its expiry.
	ErrSessionRevoked = errors.New("session is revoked or expired")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)

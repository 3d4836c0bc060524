package service

import "errors"

var (
	// ErrInvalidDataProvided marks requests that fail structural validation
	// before any credential is consulted (empty username, no factor, etc.).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrUsernameAlreadyTaken is returned by registration when the requested
	// username is already registered.
	ErrUsernameAlreadyTaken = errors.New("username already taken")

	// ErrUnauthorized is the single failure outcome of every authentication
	// path. Wrong password, unknown username, and a face that matches no
	// enrolled descriptor all collapse into it so that callers cannot learn
	// which factor failed.
	ErrUnauthorized = errors.New("authentication failed")

	// ErrNoFaceDetected is returned when the submitted image contains no
	// detectable face. It describes the input, not the account, so it is
	// safe to surface separately from ErrUnauthorized.
	ErrNoFaceDetected = errors.New("no face detected in image")

	// ErrIdentifyTimeout is returned when a 1:N identification scan does not
	// complete within the configured time bound.
	ErrIdentifyTimeout = errors.New("identification timed out")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)

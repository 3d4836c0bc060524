package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAuthConfigs indicates missing security secrets
	// (password hash key or token signing key).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or an unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidMatcherConfigs indicates invalid matcher settings
	// (for example, a non-positive descriptor length or threshold).
	ErrInvalidMatcherConfigs = errors.New("invalid matcher configuration")
	// ErrInvalidRecognizerConfigs indicates invalid extractor settings
	// (for example, a missing base URL).
	ErrInvalidRecognizerConfigs = errors.New("invalid recognizer configuration")
)

package service

import (
	"context"

	"github.com/MKhiriev/go-face-login/models"
)

// AuthService orchestrates registration and authentication over the stored
// credentials, the descriptor extractor, and the descriptor matcher.
//
// Every authentication method reports failure as ErrUnauthorized regardless
// of which check actually failed; only input-shape problems
// (ErrInvalidDataProvided, ErrNoFaceDetected) and operational problems
// (ErrIdentifyTimeout, wrapped storage errors) are reported distinctly.
type AuthService interface {
	// Register creates a new account with the given factors. Password may be
	// empty for a face-only account and image may be nil for a password-only
	// account, but at least one factor must be present.
	Register(ctx context.Context, username, password string, image []byte) (models.Credential, error)

	// LoginByFace runs a 1:N identification of the face in image against
	// every enrolled descriptor. On success it returns the matched
	// credential and the winning distance.
	LoginByFace(ctx context.Context, image []byte) (models.Credential, float64, error)

	// LoginByPasswordAndFace runs a two-factor 1:1 verification against the
	// claimed username. Both the password and the face must match; the
	// password is checked first and a failure of either factor yields the
	// same ErrUnauthorized.
	LoginByPasswordAndFace(ctx context.Context, username, password string, image []byte) (models.Credential, float64, error)

	// UpdatePassword replaces the password factor of an authenticated
	// account after re-verifying the current password.
	UpdatePassword(ctx context.Context, username, oldPassword, newPassword string) error

	// UpdateFace re-enrolls the face factor of an authenticated account from
	// a fresh image.
	UpdateFace(ctx context.Context, username string, image []byte) error

	// DeleteAccount removes the account and both of its factors.
	DeleteAccount(ctx context.Context, username string) error
}

// SessionService issues and verifies the signed session tokens that represent
// a completed authentication.
type SessionService interface {
	// CreateToken issues a signed JWT for the given username.
	CreateToken(ctx context.Context, username string) (models.Token, error)

	// ParseToken validates a raw JWT string and extracts the username it was
	// issued for. Any validation failure is normalised to
	// ErrTokenIsExpiredOrInvalid.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

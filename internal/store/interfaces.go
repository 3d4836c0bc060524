package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-face-login/models"
)

// EnrolledDescriptor pairs a username with its enrolled face descriptor.
// It is the unit of enumeration for 1:N identification scans.
type EnrolledDescriptor struct {
	Username   string
	Descriptor models.Descriptor
}

// CredentialRepository is the durable mapping from username to at most one
// password hash and at most one face descriptor, plus lifecycle metadata.
//
// Implementations must guarantee that Create is atomic with respect to the
// uniqueness of username: of two concurrent Create calls for the same
// username exactly one succeeds and the other observes
// [ErrUsernameAlreadyExists].
type CredentialRepository interface {
	// Exists reports whether a credential is registered under username.
	Exists(ctx context.Context, username string) (bool, error)

	// Create persists a new credential and returns it with server-assigned
	// fields (CreatedAt) populated. Fails with [ErrNoFactorProvided] when
	// neither factor is set and with [ErrUsernameAlreadyExists] when the
	// username is taken.
	Create(ctx context.Context, credential models.Credential) (models.Credential, error)

	// Get returns the full credential row for username as a single
	// consistent snapshot, or [ErrCredentialNotFound].
	Get(ctx context.Context, username string) (models.Credential, error)

	// GetPasswordHash returns the stored password hash for username, or an
	// empty string when password authentication is not enrolled.
	GetPasswordHash(ctx context.Context, username string) (string, error)

	// GetFaceDescriptor returns the enrolled descriptor for username, or nil
	// when biometric authentication is not enrolled.
	GetFaceDescriptor(ctx context.Context, username string) (models.Descriptor, error)

	// UpdatePasswordHash replaces the password factor, leaving the face
	// factor untouched. Fails with [ErrCredentialNotFound] for unknown users.
	UpdatePasswordHash(ctx context.Context, username, hash string) error

	// UpdateFaceDescriptor replaces the face factor, leaving the password
	// factor untouched. Fails with [ErrCredentialNotFound] for unknown users.
	UpdateFaceDescriptor(ctx context.Context, username string, descriptor models.Descriptor) error

	// TouchLastLogin records a successful authentication timestamp.
	TouchLastLogin(ctx context.Context, username string, at time.Time) error

	// ListDescriptors enumerates every credential with an enrolled face
	// descriptor in a stable order for the current snapshot.
	ListDescriptors(ctx context.Context) ([]EnrolledDescriptor, error)

	// Delete removes the credential, or fails with [ErrCredentialNotFound].
	Delete(ctx context.Context, username string) error

	// Count returns the number of registered credentials.
	Count(ctx context.Context) (int, error)
}

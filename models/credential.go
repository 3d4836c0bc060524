package models

import "time"

// Credential represents a registered user account and the authentication
// factors enrolled for it. Sensitive fields must never be exposed outside
// trusted boundaries.
type Credential struct {
	// Username is the unique user identifier and the primary key of the
	// credentials table. Immutable once created.
	Username string `json:"username"`

	// PasswordHash stores the one-way hash of the user's password.
	// Empty when password authentication is not enrolled for this user.
	// This value MUST be a derived value (HMAC-SHA256 digest), never plaintext.
	PasswordHash string `json:"-"`

	// FaceDescriptor is the enrolled face embedding, or nil when biometric
	// authentication is not enrolled for this user.
	FaceDescriptor Descriptor `json:"-"`

	// CreatedAt is the timestamp when the credential was created.
	// Set once at creation, never mutated.
	CreatedAt time.Time `json:"created_at"`

	// LastLoginAt is the timestamp of the last successful authentication.
	// Zero until the user logs in for the first time.
	LastLoginAt time.Time `json:"last_login_at,omitzero"`
}

// HasPassword reports whether password authentication is enrolled.
func (c Credential) HasPassword() bool {
	return c.PasswordHash != ""
}

// HasFace reports whether biometric authentication is enrolled.
func (c Credential) HasFace() bool {
	return len(c.FaceDescriptor) > 0
}

// TableName returns the name of the database table
// associated with the Credential model.
func (c Credential) TableName() string {
	return "credentials"
}

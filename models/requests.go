package models

// RegisterRequest carries the payload of a registration call.
// Username is required; at least one of Password and Image must be present.
type RegisterRequest struct {
	// Username is the unique account identifier to enroll.
	Username string `json:"username"`

	// Password is the plain-text password to enroll, or empty when only
	// biometric authentication is requested. Hashed before persistence,
	// never stored or logged as-is.
	Password string `json:"password,omitempty"`

	// Image is a base64-encoded face image, optionally carrying a
	// "data:image/...;base64," data-URL prefix. Empty when only password
	// authentication is requested.
	Image string `json:"image,omitempty"`
}

// FaceLoginRequest carries the payload of a 1:N face login call.
type FaceLoginRequest struct {
	// Image is the base64-encoded face image to identify.
	Image string `json:"image"`
}

// VerifyLoginRequest carries the payload of a combined password+face login.
// All three fields are required; this mode is strict-AND over both factors.
type VerifyLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Image    string `json:"image"`
}

// UpdatePasswordRequest replaces the acting user's password factor.
// The session token identifies the user; OldPassword re-proves the factor
// being replaced. The face factor is left untouched.
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UpdateFaceRequest replaces the acting user's enrolled face descriptor.
// Requires only a valid session; the password factor is left untouched.
type UpdateFaceRequest struct {
	Image string `json:"image"`
}

package models

// RegisterResponse reports which factors were enrolled for a newly
// registered account.
type RegisterResponse struct {
	Username    string `json:"username"`
	HasPassword bool   `json:"has_password"`
	HasFace     bool   `json:"has_face"`
}

// LoginResponse is returned on successful authentication.
//
// Distance is populated only by the combined password+face flow, where the
// 1:1 comparison against the claimed account's descriptor is exposed for
// observability. The 1:N face flow leaves it at zero.
type LoginResponse struct {
	Username string  `json:"username"`
	Token    string  `json:"token"`
	Distance float64 `json:"distance,omitempty"`
}

// SessionResponse echoes the identity asserted by a verified session token.
type SessionResponse struct {
	Username string `json:"username"`
}

// HealthResponse is the payload of the liveness endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the uniform error payload. Authentication failures are
// serialized with the same shape and message regardless of which factor
// failed, so the response cannot be used as a factor oracle.
type ErrorResponse struct {
	Error string `json:"error"`
}

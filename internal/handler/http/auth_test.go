// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-face-login/internal/config"
	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/internal/service"
	"github.com/MKhiriev/go-face-login/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn       func(ctx context.Context, username, password string, image []byte) (models.Credential, error)
	loginByFaceFn    func(ctx context.Context, image []byte) (models.Credential, float64, error)
	verifyLoginFn    func(ctx context.Context, username, password string, image []byte) (models.Credential, float64, error)
	updatePasswordFn func(ctx context.Context, username, oldPassword, newPassword string) error
	updateFaceFn     func(ctx context.Context, username string, image []byte) error
	deleteAccountFn  func(ctx context.Context, username string) error
}

func (m *mockAuthService) Register(ctx context.Context, username, password string, image []byte) (models.Credential, error) {
	return m.registerFn(ctx, username, password, image)
}

func (m *mockAuthService) LoginByFace(ctx context.Context, image []byte) (models.Credential, float64, error) {
	return m.loginByFaceFn(ctx, image)
}

func (m *mockAuthService) LoginByPasswordAndFace(ctx context.Context, username, password string, image []byte) (models.Credential, float64, error) {
	return m.verifyLoginFn(ctx, username, password, image)
}

func (m *mockAuthService) UpdatePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	return m.updatePasswordFn(ctx, username, oldPassword, newPassword)
}

func (m *mockAuthService) UpdateFace(ctx context.Context, username string, image []byte) error {
	return m.updateFaceFn(ctx, username, image)
}

func (m *mockAuthService) DeleteAccount(ctx context.Context, username string) error {
	return m.deleteAccountFn(ctx, username)
}

// ─────────────────────────────────────────────
// Mock SessionService
// ─────────────────────────────────────────────

type mockSessionService struct {
	createTokenFn func(ctx context.Context, username string) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockSessionService) CreateToken(ctx context.Context, username string) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, username)
	}
	return models.Token{Username: username, SignedString: "signed.jwt.token"}, nil
}

func (m *mockSessionService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if m.parseTokenFn != nil {
		return m.parseTokenFn(ctx, tokenString)
	}
	return models.Token{}, service.ErrTokenIsExpiredOrInvalid
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler with the given service mocks.
func newTestHandler(t *testing.T, auth service.AuthService, session service.SessionService) *Handler {
	t.Helper()
	if session == nil {
		session = &mockSessionService{}
	}
	svcs := &service.Services{
		AuthService:    auth,
		SessionService: session,
	}
	return NewHandler(svcs, config.Auth{}, logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// imagePayload is a valid base64 image field fixture.
var imagePayload = base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))

// ─────────────────────────────────────────────
// register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, username, password string, image []byte) (models.Credential, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "secret", password)
			assert.Equal(t, []byte("jpeg-bytes"), image)
			return models.Credential{
				Username:       username,
				PasswordHash:   "hashed",
				FaceDescriptor: models.Descriptor{0.1},
			}, nil
		},
	}
	h := newTestHandler(t, auth, nil)

	body := jsonBody(t, models.RegisterRequest{Username: "alice", Password: "secret", Image: imagePayload})
	req := httptest.NewRequest(http.MethodPost, "/api/face/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.True(t, resp.HasPassword)
	assert.True(t, resp.HasFace)
}

func TestRegister_UsernameTaken(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, username, password string, image []byte) (models.Credential, error) {
			return models.Credential{}, service.ErrUsernameAlreadyTaken
		},
	}
	h := newTestHandler(t, auth, nil)

	body := jsonBody(t, models.RegisterRequest{Username: "alice", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/face/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_InvalidJSON(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/face/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_InvalidImagePayload(t *testing.T) {
	h := newTestHandler(t, &mockAuthService{}, nil)

	body := jsonBody(t, models.RegisterRequest{Username: "alice", Image: "%%%not-base64%%%"})
	req := httptest.NewRequest(http.MethodPost, "/api/face/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_NoFaceDetected(t *testing.T) {
	auth := &mockAuthService{
		registerFn: func(_ context.Context, username, password string, image []byte) (models.Credential, error) {
			return models.Credential{}, service.ErrNoFaceDetected
		},
	}
	h := newTestHandler(t, auth, nil)

	body := jsonBody(t, models.RegisterRequest{Username: "alice", Image: imagePayload})
	req := httptest.NewRequest(http.MethodPost, "/api/face/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─────────────────────────────────────────────
// faceLogin
// ─────────────────────────────────────────────

func TestFaceLogin_Success(t *testing.T) {
	auth := &mockAuthService{
		loginByFaceFn: func(_ context.Context, image []byte) (models.Credential, float64, error) {
			return models.Credential{Username: "bob"}, 0.31, nil
		},
	}
	h := newTestHandler(t, auth, nil)

	body := jsonBody(t, models.FaceLoginRequest{Image: imagePayload})
	req := httptest.NewRequest(http.MethodPost, "/api/face/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.token", rec.Header().Get("Authorization"))

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bob", resp.Username)
	assert.Equal(t, "signed.jwt.token", resp.Token)
}

func TestFaceLogin_NoMatch(t *testing.T) {
	auth := &mockAuthService{
		loginByFaceFn: func(_ context.Context, image []byte) (models.Credential, float64, error) {
			return models.Credential{}, 0, service.ErrUnauthorized
		},
	}
	h := newTestHandler(t, auth, nil)

	body := jsonBody(t, models.FaceLoginRequest{Image: imagePayload})
	req := httptest.NewRequest(http.MethodPost, "/api/face/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFaceLogin_ScanTimeout(t *testing.T) {
	auth := &mockAuthService{
		loginByFaceFn: func(_ context.Context, image []byte) (models.Credential, float64, error) {
			return models.Credential{}, 0, service.ErrIdentifyTimeout
		},
	}
	h := newTestHandler(t, auth, nil)

	body := jsonBody(t, models.FaceLoginRequest{Image: imagePayload})
	req := httptest.NewRequest(http.MethodPost, "/api/face/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

// ─────────────────────────────────────────────
// verifyLogin
// ─────────────────────────────────────────────

func TestVerifyLogin_Success(t *testing.T) {
	auth := &mockAuthService{
		verifyLoginFn: func(_ context.Context, username, password string, image []byte) (models.Credential, float64, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "secret", password)
			return models.Credential{Username: "alice"}, 0.27, nil
		},
	}
	h := newTestHandler(t, auth, nil)

	body := jsonBody(t, models.VerifyLoginRequest{Username: "alice", Password: "secret", Image: imagePayload})
	req := httptest.NewRequest(http.MethodPost, "/api/face/login/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.InDelta(t, 0.27, resp.Distance, 1e-9)
}

// TestVerifyLogin_UniformFailureBody verifies that distinct factor failures
// produce byte-identical 401 responses.
func TestVerifyLogin_UniformFailureBody(t *testing.T) {
	bodies := map[string]string{}

	for _, name := range []string{"wrong password", "wrong face"} {
		auth := &mockAuthService{
			verifyLoginFn: func(_ context.Context, username, password string, image []byte) (models.Credential, float64, error) {
				return models.Credential{}, 0, service.ErrUnauthorized
			},
		}
		h := newTestHandler(t, auth, nil)

		body := jsonBody(t, models.VerifyLoginRequest{Username: "alice", Password: "secret", Image: imagePayload})
		req := httptest.NewRequest(http.MethodPost, "/api/face/login/verify", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Init().ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		bodies[name] = rec.Body.String()
	}

	assert.Equal(t, bodies["wrong password"], bodies["wrong face"])
}

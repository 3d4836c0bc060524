// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-face-login/internal/config"
	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/internal/service"
	"github.com/MKhiriev/go-face-login/models"
	"github.com/stretchr/testify/assert"
)

func TestKeyLimiter_AllowsWithinBurst(t *testing.T) {
	limiter := newKeyLimiter(1, 3, time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("10.0.0.1", now), "request %d within burst must pass", i)
	}
	assert.False(t, limiter.Allow("10.0.0.1", now), "request over burst must be rejected")
}

func TestKeyLimiter_KeysAreIndependent(t *testing.T) {
	limiter := newKeyLimiter(1, 1, time.Minute)
	now := time.Now()

	assert.True(t, limiter.Allow("10.0.0.1", now))
	assert.False(t, limiter.Allow("10.0.0.1", now))
	assert.True(t, limiter.Allow("10.0.0.2", now), "second client must have its own bucket")
}

func TestKeyLimiter_RefillsOverTime(t *testing.T) {
	limiter := newKeyLimiter(1, 1, time.Minute)
	now := time.Now()

	assert.True(t, limiter.Allow("10.0.0.1", now))
	assert.False(t, limiter.Allow("10.0.0.1", now))
	assert.True(t, limiter.Allow("10.0.0.1", now.Add(time.Second)))
}

func TestKeyLimiter_NilAndEmptyKeyAllow(t *testing.T) {
	var limiter *keyLimiter
	assert.True(t, limiter.Allow("10.0.0.1", time.Now()))

	limiter = newKeyLimiter(1, 1, time.Minute)
	assert.True(t, limiter.Allow("", time.Now()))
	assert.True(t, limiter.Allow("   ", time.Now()))
}

func TestKeyLimiter_InvalidConfigDisables(t *testing.T) {
	assert.Nil(t, newKeyLimiter(0, 5, time.Minute))
	assert.Nil(t, newKeyLimiter(1, 0, time.Minute))
}

func TestLoginRateLimit_Middleware(t *testing.T) {
	auth := &mockAuthService{
		loginByFaceFn: func(_ context.Context, image []byte) (models.Credential, float64, error) {
			return models.Credential{Username: "bob"}, 0, nil
		},
	}
	svcs := &service.Services{AuthService: auth, SessionService: &mockSessionService{}}
	h := NewHandler(svcs, config.Auth{LoginRPS: 1, LoginBurst: 1}, logger.Nop())
	router := h.Init()

	body := jsonBody(t, models.FaceLoginRequest{Image: imagePayload})

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/face/login", strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:51234"
	router.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/face/login", strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:51235"
	router.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// health stays reachable for the throttled client
	health := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.RemoteAddr = "10.0.0.1:51236"
	router.ServeHTTP(health, req)
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestClientAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:51234"
	assert.Equal(t, "10.0.0.1", clientAddr(req))

	req.Header.Set("X-Real-IP", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", clientAddr(req))
}

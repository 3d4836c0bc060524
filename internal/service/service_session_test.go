// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(duration time.Duration, now func() time.Time) *sessionService {
	if now == nil {
		now = time.Now
	}
	return &sessionService{
		tokenSignKey:  "test-sign-key",
		tokenIssuer:   "test-issuer",
		tokenDuration: duration,
		now:           now,
		logger:        logger.Nop(),
	}
}

func TestSessionService_CreateAndParseToken(t *testing.T) {
	svc := newTestSessionService(time.Hour, nil)

	token, err := svc.CreateToken(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "alice", parsed.Username)
}

func TestSessionService_ParseToken_ExpiredByClock(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	svc := newTestSessionService(time.Second, func() time.Time { return issuedAt })
	token, err := svc.CreateToken(context.Background(), "alice")
	require.NoError(t, err)

	// a token valid for one second is checked two seconds after issuance
	svc.now = func() time.Time { return issuedAt.Add(2 * time.Second) }

	_, err = svc.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestSessionService_ParseToken_StillValidBeforeExpiry(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	svc := newTestSessionService(time.Hour, func() time.Time { return issuedAt })
	token, err := svc.CreateToken(context.Background(), "alice")
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "alice", parsed.Username)
}

func TestSessionService_ParseToken_Garbage(t *testing.T) {
	svc := newTestSessionService(time.Hour, nil)

	_, err := svc.ParseToken(context.Background(), "definitely.not.a-token")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestSessionService_ParseToken_WrongIssuer(t *testing.T) {
	issuing := newTestSessionService(time.Hour, nil)
	token, err := issuing.CreateToken(context.Background(), "alice")
	require.NoError(t, err)

	parsing := newTestSessionService(time.Hour, nil)
	parsing.tokenIssuer = "some-other-service"

	_, err = parsing.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestSessionService_ParseToken_WrongSignKey(t *testing.T) {
	issuing := newTestSessionService(time.Hour, nil)
	token, err := issuing.CreateToken(context.Background(), "alice")
	require.NoError(t, err)

	parsing := newTestSessionService(time.Hour, nil)
	parsing.tokenSignKey = "some-other-key"

	_, err = parsing.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestSessionService_CreateToken_MissingSignKey(t *testing.T) {
	svc := newTestSessionService(time.Hour, nil)
	svc.tokenSignKey = ""

	_, err := svc.CreateToken(context.Background(), "alice")

	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

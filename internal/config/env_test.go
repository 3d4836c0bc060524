package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseEnv_ReadsEnvVars verifies that environment variables are picked up
// through the env/envPrefix struct tags.
func TestParseEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("AUTH_TOKEN_ISSUER", "env-issuer")
	t.Setenv("AUTH_TOKEN_DURATION", "12h")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:8080")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env-host:5432/faces")
	t.Setenv("STORAGE_DB_DRIVER", "sqlite3")
	t.Setenv("MATCHER_VERIFY_THRESHOLD", "0.5")
	t.Setenv("MATCHER_IDENTIFY_WORKERS", "8")
	t.Setenv("RECOGNIZER_BASE_URL", "http://recognizer:5000")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "env-issuer", cfg.Auth.TokenIssuer)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://env-host:5432/faces", cfg.Storage.DB.DSN)
	assert.Equal(t, "sqlite3", cfg.Storage.DB.Driver)
	assert.Equal(t, 0.5, cfg.Matcher.VerifyThreshold)
	assert.Equal(t, 8, cfg.Matcher.IdentifyWorkers)
	assert.Equal(t, "http://recognizer:5000", cfg.Recognizer.BaseURL)
}

// TestParseEnv_EmptyEnvProducesZeroConfig verifies that parseEnv does not
// invent values when no relevant variables are set.
func TestParseEnv_EmptyEnvProducesZeroConfig(t *testing.T) {
	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))
	assert.Zero(t, cfg.Auth.TokenDuration)
	assert.Empty(t, cfg.Server.HTTPAddress)
}

// TestParseEnv_InvalidDuration verifies that an unparseable duration yields
// an error instead of a silent zero.
func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("AUTH_TOKEN_DURATION", "not-a-duration")

	var cfg StructuredConfig
	assert.Error(t, parseEnv(&cfg))
}

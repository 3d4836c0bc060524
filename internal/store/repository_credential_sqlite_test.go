package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteRepository migrates an in-memory database and wires a repository
// on top of it, so the constraint enforcement and blob encoding run through
// the real driver instead of a mock.
func newSQLiteRepository(t *testing.T) CredentialRepository {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// every pooled connection gets its own :memory: database, so the pool
	// must stay at a single connection
	conn.SetMaxOpenConns(1)

	db := &DB{DB: conn, driver: DriverSQLite, logger: logger.Nop()}
	require.NoError(t, db.Migrate())

	return NewCredentialRepository(db, logger.Nop())
}

func TestSQLite_DuplicateUsernameRejected(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, models.Credential{Username: "alice", PasswordHash: "hash-1"})
	require.NoError(t, err)

	// the second insert must fail on the primary key, not silently overwrite
	_, err = repo.Create(ctx, models.Credential{Username: "alice", PasswordHash: "hash-2"})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLite_DescriptorRoundTrip(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()

	descriptor := models.Descriptor{0.125, -1.5, 3.75, 0}
	_, err := repo.Create(ctx, models.Credential{Username: "bob", FaceDescriptor: descriptor})
	require.NoError(t, err)

	credential, err := repo.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, descriptor, credential.FaceDescriptor)
	assert.Empty(t, credential.PasswordHash)

	enrolled, err := repo.ListDescriptors(ctx)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, "bob", enrolled[0].Username)
	assert.Equal(t, descriptor, enrolled[0].Descriptor)
}

func TestSQLite_UpdateAndTouchLifecycle(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, models.Credential{Username: "carol", PasswordHash: "hash-1"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdatePasswordHash(ctx, "carol", "hash-2"))
	require.NoError(t, repo.UpdateFaceDescriptor(ctx, "carol", models.Descriptor{1, 2, 3, 4}))

	at := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.TouchLastLogin(ctx, "carol", at))

	credential, err := repo.Get(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, "hash-2", credential.PasswordHash)
	assert.Equal(t, models.Descriptor{1, 2, 3, 4}, credential.FaceDescriptor)
	assert.False(t, credential.LastLoginAt.IsZero())

	require.NoError(t, repo.Delete(ctx, "carol"))
	_, err = repo.Get(ctx, "carol")
	assert.ErrorIs(t, err, ErrCredentialNotFound)
}

func TestSQLite_UnknownUserUpdatesFail(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()

	assert.ErrorIs(t, repo.UpdatePasswordHash(ctx, "ghost", "hash"), ErrCredentialNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "ghost"), ErrCredentialNotFound)
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/models"
	"github.com/jackc/pgerrcode"
)

// credentialRepository is the SQL-backed implementation of
// [CredentialRepository]. The same implementation serves both supported
// drivers; dialect differences are confined to the query text set and to
// duplicate-key error classification.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type credentialRepository struct {
	logger  *logger.Logger
	db      *DB
	queries queries
}

// NewCredentialRepository constructs a [CredentialRepository] backed by the
// provided database connection and logger.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	logger.Debug().Msg("creating credential repository")
	return &credentialRepository{
		db:      db,
		logger:  logger,
		queries: queriesFor(db.Driver()),
	}
}

// Exists reports whether a credential row is registered under username.
func (r *credentialRepository) Exists(ctx context.Context, username string) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	row := r.db.QueryRowContext(ctx, r.queries.exists, username)
	if err := row.Scan(&exists); err != nil {
		log.Err(err).Str("func", "*credentialRepository.Exists").Msg("error: scanning error")
		return false, fmt.Errorf("unexpected DB error: %w", err)
	}

	return exists, nil
}

// Create persists a new credential row.
//
// The INSERT relies on the primary-key constraint on username for
// check-then-insert atomicity: a concurrent duplicate registration surfaces
// as a constraint violation, never as two successful inserts.
//
// Error handling:
//   - Neither factor set → [ErrNoFactorProvided] (nothing reaches the DB).
//   - PostgreSQL unique_violation (23505) / SQLite constraint violation →
//     [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *credentialRepository) Create(ctx context.Context, credential models.Credential) (models.Credential, error) {
	log := logger.FromContext(ctx)

	if !credential.HasPassword() && !credential.HasFace() {
		log.Error().Str("username", credential.Username).Msg("credential without factors rejected")
		return models.Credential{}, ErrNoFactorProvided
	}

	if credential.CreatedAt.IsZero() {
		credential.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, r.queries.create,
		credential.Username,
		nullString(credential.PasswordHash),
		nullBytes(credential.FaceDescriptor.Bytes()),
		credential.CreatedAt,
	)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.Create").Msg("error: insert failed")

		if postgresError(err) == pgerrcode.UniqueViolation || sqliteConstraintError(err) {
			return models.Credential{}, ErrUsernameAlreadyExists
		}
		return models.Credential{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return credential, nil
}

// Get retrieves the full credential row for username as a single consistent
// snapshot. Both factors come from one SELECT so a login flow never observes
// a half-updated credential.
func (r *credentialRepository) Get(ctx context.Context, username string) (models.Credential, error) {
	log := logger.FromContext(ctx)

	var (
		credential   models.Credential
		passwordHash sql.NullString
		blob         []byte
		lastLoginAt  sql.NullTime
	)

	row := r.db.QueryRowContext(ctx, r.queries.get, username)
	err := row.Scan(&credential.Username, &passwordHash, &blob, &credential.CreatedAt, &lastLoginAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Credential{}, ErrCredentialNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.Get").Msg("error: scanning error")
		return models.Credential{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	credential.PasswordHash = passwordHash.String
	if lastLoginAt.Valid {
		credential.LastLoginAt = lastLoginAt.Time
	}

	credential.FaceDescriptor, err = models.DescriptorFromBytes(blob)
	if err != nil {
		log.Err(err).Str("username", username).Msg("stored descriptor blob is corrupted")
		return models.Credential{}, err
	}

	return credential, nil
}

// GetPasswordHash returns the stored password hash for username, or an empty
// string when the password factor is not enrolled.
func (r *credentialRepository) GetPasswordHash(ctx context.Context, username string) (string, error) {
	credential, err := r.Get(ctx, username)
	if err != nil {
		return "", err
	}
	return credential.PasswordHash, nil
}

// GetFaceDescriptor returns the enrolled descriptor for username, or nil
// when the face factor is not enrolled.
func (r *credentialRepository) GetFaceDescriptor(ctx context.Context, username string) (models.Descriptor, error) {
	credential, err := r.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return credential.FaceDescriptor, nil
}

// UpdatePasswordHash replaces the password factor of an existing credential.
func (r *credentialRepository) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	return r.updateColumn(ctx, r.queries.updatePasswordHash, "*credentialRepository.UpdatePasswordHash", hash, username)
}

// UpdateFaceDescriptor replaces the face factor of an existing credential.
func (r *credentialRepository) UpdateFaceDescriptor(ctx context.Context, username string, descriptor models.Descriptor) error {
	return r.updateColumn(ctx, r.queries.updateFaceDescriptor, "*credentialRepository.UpdateFaceDescriptor", descriptor.Bytes(), username)
}

// TouchLastLogin records the timestamp of a successful authentication.
func (r *credentialRepository) TouchLastLogin(ctx context.Context, username string, at time.Time) error {
	return r.updateColumn(ctx, r.queries.touchLastLogin, "*credentialRepository.TouchLastLogin", at, username)
}

// updateColumn executes a single-column UPDATE keyed by username and maps an
// empty affected-row count to [ErrCredentialNotFound].
func (r *credentialRepository) updateColumn(ctx context.Context, query, caller string, value any, username string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, value, username)
	if err != nil {
		log.Err(err).Str("func", caller).Msg("error: update failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", caller).Msg("error: rows affected unavailable")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}

// ListDescriptors enumerates all credentials with an enrolled face
// descriptor, ordered by username for a stable scan order.
func (r *credentialRepository) ListDescriptors(ctx context.Context) ([]EnrolledDescriptor, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, r.queries.listDescriptors)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.ListDescriptors").Msg("error: query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var enrolled []EnrolledDescriptor
	for rows.Next() {
		var username string
		var blob []byte
		if err = rows.Scan(&username, &blob); err != nil {
			log.Err(err).Str("func", "*credentialRepository.ListDescriptors").Msg("error: scanning error")
			return nil, fmt.Errorf("unexpected DB error: %w", err)
		}

		descriptor, err := models.DescriptorFromBytes(blob)
		if err != nil {
			log.Err(err).Str("username", username).Msg("stored descriptor blob is corrupted")
			return nil, err
		}

		enrolled = append(enrolled, EnrolledDescriptor{Username: username, Descriptor: descriptor})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return enrolled, nil
}

// Delete removes the credential row for username.
func (r *credentialRepository) Delete(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, r.queries.deleteCredential, username)
	if err != nil {
		log.Err(err).Str("func", "*credentialRepository.Delete").Msg("error: delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}

// Count returns the total number of registered credentials.
func (r *credentialRepository) Count(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	row := r.db.QueryRowContext(ctx, r.queries.count)
	if err := row.Scan(&count); err != nil {
		log.Err(err).Str("func", "*credentialRepository.Count").Msg("error: scanning error")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return count, nil
}

// nullString maps an empty string to SQL NULL so optional factors are stored
// as truly absent values, keeping the table CHECK constraint meaningful.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullBytes maps an empty blob to SQL NULL.
func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

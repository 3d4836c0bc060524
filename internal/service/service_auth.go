// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-face-login/internal/config"
	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/internal/matcher"
	"github.com/MKhiriev/go-face-login/internal/recognizer"
	"github.com/MKhiriev/go-face-login/internal/store"
	"github.com/MKhiriev/go-face-login/internal/utils"
	"github.com/MKhiriev/go-face-login/internal/workers"
	"github.com/MKhiriev/go-face-login/models"
)

// authService is the concrete implementation of AuthService.
// It orchestrates the CredentialRepository, the external descriptor
// extractor, and the descriptor matcher, and uses HMAC-SHA256 for password
// hashing.
type authService struct {
	// credentials is the data-access layer used to create and look up
	// credential records.
	credentials store.CredentialRepository

	// extractor converts a raw image into a face descriptor by calling the
	// external recognition service.
	extractor recognizer.DescriptorExtractor

	// matcher compares face descriptors by Euclidean distance.
	matcher matcher.Matcher

	// pool bounds the number of concurrently running 1:N identification
	// scans.
	pool *workers.Pool

	// hashKey is the HMAC secret used when hashing user passwords before
	// storage or comparison. Must match the value used at registration time.
	hashKey string

	// descriptorLength is the expected element count of every extracted
	// descriptor. A descriptor of any other length indicates a misbehaving
	// extractor and fails the request.
	descriptorLength int

	// verifyThreshold is the distance bound of 1:1 verification.
	verifyThreshold float64

	// identifyThreshold is the distance bound of 1:N identification.
	identifyThreshold float64

	// identifyTimeout bounds the wall-clock duration of one 1:N scan.
	identifyTimeout time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repository,
// extractor, matcher, and scan pool, populated with security and matching
// parameters from the config.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(
	credentials store.CredentialRepository,
	extractor recognizer.DescriptorExtractor,
	faceMatcher matcher.Matcher,
	pool *workers.Pool,
	authCfg config.Auth,
	matcherCfg config.Matcher,
	logger *logger.Logger,
) AuthService {
	return &authService{
		credentials:       credentials,
		extractor:         extractor,
		matcher:           faceMatcher,
		pool:              pool,
		hashKey:           authCfg.PasswordHashKey,
		descriptorLength:  matcherCfg.DescriptorLength,
		verifyThreshold:   matcherCfg.VerifyThreshold,
		identifyThreshold: matcherCfg.IdentifyThreshold,
		identifyTimeout:   matcherCfg.IdentifyTimeout,
		logger:            logger,
	}
}

// Register creates a new account.
//
// It validates that the username and at least one factor are present, hashes
// the password with the configured HMAC key, extracts a face descriptor from
// the image if one was submitted, and delegates persistence to the
// CredentialRepository. Uniqueness of the username is enforced by the
// repository, so two concurrent registrations of the same name resolve to
// exactly one success.
//
// Returns the persisted credential (with server-assigned CreatedAt) or:
//   - ErrInvalidDataProvided if the username is empty or no factor is given.
//   - ErrNoFaceDetected if an image was given but contains no face.
//   - ErrUsernameAlreadyTaken if the username is already registered.
//   - A wrapped storage or extractor error otherwise.
func (a *authService) Register(ctx context.Context, username, password string, image []byte) (models.Credential, error) {
	log := logger.FromContext(ctx)

	if username == "" || (password == "" && len(image) == 0) {
		log.Error().Str("username", username).Msg("invalid registration data provided")
		return models.Credential{}, ErrInvalidDataProvided
	}

	credential := models.Credential{Username: username}
	if password != "" {
		credential.PasswordHash = utils.HashString(password, a.hashKey)
	}
	if len(image) != 0 {
		descriptor, err := a.extractDescriptor(ctx, image)
		if err != nil {
			log.Err(err).Str("username", username).Msg("descriptor extraction during registration failed")
			return models.Credential{}, err
		}
		credential.FaceDescriptor = descriptor
	}

	created, err := a.credentials.Create(ctx, credential)
	if err != nil {
		if errors.Is(err, store.ErrUsernameAlreadyExists) {
			log.Error().Str("username", username).Msg("username already taken")
			return models.Credential{}, ErrUsernameAlreadyTaken
		}
		log.Err(err).Str("username", username).Msg("credential creation ended with error")
		return models.Credential{}, fmt.Errorf("credential creation ended with error: %w", err)
	}

	return created, nil
}

// LoginByFace authenticates a user by face alone.
//
// It extracts a descriptor from the submitted image and runs a 1:N scan over
// every enrolled descriptor on the scan pool, bounded by the configured
// identify timeout. The account whose descriptor lies closest to the
// candidate wins, provided the distance is below the identify threshold;
// ties keep the earliest enrolled account.
//
// Returns the matched credential and the winning distance, or:
//   - ErrInvalidDataProvided if no image was given.
//   - ErrNoFaceDetected if the image contains no face.
//   - ErrUnauthorized if no enrolled descriptor is close enough.
//   - ErrIdentifyTimeout if the scan does not finish in time.
func (a *authService) LoginByFace(ctx context.Context, image []byte) (models.Credential, float64, error) {
	log := logger.FromContext(ctx)

	if len(image) == 0 {
		log.Error().Msg("no image provided for face login")
		return models.Credential{}, 0, ErrInvalidDataProvided
	}

	candidate, err := a.extractDescriptor(ctx, image)
	if err != nil {
		log.Err(err).Msg("descriptor extraction during face login failed")
		return models.Credential{}, 0, err
	}

	username, distance, err := a.identify(ctx, candidate)
	if err != nil {
		return models.Credential{}, 0, err
	}

	credential, err := a.credentials.Get(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("matched credential lookup failed")
		return models.Credential{}, 0, fmt.Errorf("matched credential lookup failed: %w", err)
	}

	a.touchLastLogin(ctx, username)
	log.Debug().Str("username", username).Float64("distance", distance).Msg("face identification succeeded")

	return credential, distance, nil
}

// LoginByPasswordAndFace authenticates a user by both factors against a
// claimed username.
//
// Both factors are read as one credential row up front, so a concurrent
// factor update can never let a login pass with the password of one row
// version and the face of another. The password is verified first; only when
// it matches is the face descriptor extracted and compared 1:1 against the
// enrolled descriptor with the verify threshold. A wrong password, an
// unknown username, a missing enrolled factor, and a non-matching face all
// yield the same ErrUnauthorized, so the response never reveals which factor
// failed.
//
// Returns the authenticated credential and the measured distance, or:
//   - ErrInvalidDataProvided if the username, password, or image is missing.
//   - ErrNoFaceDetected if the image contains no face.
//   - ErrUnauthorized on any factor failure.
func (a *authService) LoginByPasswordAndFace(ctx context.Context, username, password string, image []byte) (models.Credential, float64, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" || len(image) == 0 {
		log.Error().Str("username", username).Msg("invalid login data provided")
		return models.Credential{}, 0, ErrInvalidDataProvided
	}

	credential, err := a.credentials.Get(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			log.Debug().Str("username", username).Msg("login attempt for unknown username")
			return models.Credential{}, 0, ErrUnauthorized
		}
		log.Err(err).Str("username", username).Msg("credential lookup failed")
		return models.Credential{}, 0, fmt.Errorf("credential lookup failed: %w", err)
	}

	if !credential.HasPassword() || !utils.HashEqual(credential.PasswordHash, utils.HashString(password, a.hashKey)) {
		log.Debug().Str("username", username).Msg("password verification failed")
		return models.Credential{}, 0, ErrUnauthorized
	}

	candidate, err := a.extractDescriptor(ctx, image)
	if err != nil {
		log.Err(err).Str("username", username).Msg("descriptor extraction during login failed")
		return models.Credential{}, 0, err
	}

	if !credential.HasFace() {
		log.Debug().Str("username", username).Msg("face factor is not enrolled")
		return models.Credential{}, 0, ErrUnauthorized
	}

	match, err := a.matcher.Verify(candidate, credential.FaceDescriptor, a.verifyThreshold)
	if err != nil {
		log.Err(err).Str("username", username).Msg("descriptor verification failed")
		return models.Credential{}, 0, fmt.Errorf("descriptor verification failed: %w", err)
	}
	if !match {
		log.Debug().Str("username", username).Msg("face verification failed")
		return models.Credential{}, 0, ErrUnauthorized
	}

	distance, err := a.matcher.Distance(candidate, credential.FaceDescriptor)
	if err != nil {
		return models.Credential{}, 0, fmt.Errorf("descriptor verification failed: %w", err)
	}

	a.touchLastLogin(ctx, username)
	log.Debug().Str("username", username).Float64("distance", distance).Msg("two-factor verification succeeded")

	return credential, distance, nil
}

// UpdatePassword replaces the password factor of an existing account.
//
// When a password is already enrolled, the caller must re-verify it by
// supplying the current password; a mismatch yields ErrUnauthorized. When no
// password is enrolled yet, oldPassword must be empty and the call enrolls
// the first one. The face factor is left untouched.
func (a *authService) UpdatePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if username == "" || newPassword == "" {
		log.Error().Str("username", username).Msg("invalid password update data provided")
		return ErrInvalidDataProvided
	}

	storedHash, err := a.credentials.GetPasswordHash(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			return ErrUnauthorized
		}
		log.Err(err).Str("username", username).Msg("password hash lookup failed")
		return fmt.Errorf("password hash lookup failed: %w", err)
	}

	switch {
	case storedHash == "" && oldPassword != "":
		return ErrUnauthorized
	case storedHash != "" && !utils.HashEqual(storedHash, utils.HashString(oldPassword, a.hashKey)):
		log.Debug().Str("username", username).Msg("current password verification failed")
		return ErrUnauthorized
	}

	if err := a.credentials.UpdatePasswordHash(ctx, username, utils.HashString(newPassword, a.hashKey)); err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			return ErrUnauthorized
		}
		log.Err(err).Str("username", username).Msg("password update ended with error")
		return fmt.Errorf("password update ended with error: %w", err)
	}

	return nil
}

// UpdateFace re-enrolls the face factor of an existing account from a fresh
// image. The password factor is left untouched.
func (a *authService) UpdateFace(ctx context.Context, username string, image []byte) error {
	log := logger.FromContext(ctx)

	if username == "" || len(image) == 0 {
		log.Error().Str("username", username).Msg("invalid face update data provided")
		return ErrInvalidDataProvided
	}

	descriptor, err := a.extractDescriptor(ctx, image)
	if err != nil {
		log.Err(err).Str("username", username).Msg("descriptor extraction during face update failed")
		return err
	}

	if err := a.credentials.UpdateFaceDescriptor(ctx, username, descriptor); err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			return ErrUnauthorized
		}
		log.Err(err).Str("username", username).Msg("face update ended with error")
		return fmt.Errorf("face update ended with error: %w", err)
	}

	return nil
}

// DeleteAccount removes the account together with both of its factors.
func (a *authService) DeleteAccount(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	if username == "" {
		return ErrInvalidDataProvided
	}

	if err := a.credentials.Delete(ctx, username); err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			return ErrUnauthorized
		}
		log.Err(err).Str("username", username).Msg("account deletion ended with error")
		return fmt.Errorf("account deletion ended with error: %w", err)
	}

	return nil
}

// extractDescriptor calls the external extractor and normalises its failures
// into service-level errors. A descriptor of unexpected length is treated as
// an extractor fault, not an authentication outcome.
func (a *authService) extractDescriptor(ctx context.Context, image []byte) (models.Descriptor, error) {
	descriptor, err := a.extractor.ExtractDescriptor(ctx, image)
	if err != nil {
		switch {
		case errors.Is(err, recognizer.ErrNoFaceDetected):
			return nil, ErrNoFaceDetected
		case errors.Is(err, recognizer.ErrImageDecode):
			return nil, ErrInvalidDataProvided
		default:
			return nil, fmt.Errorf("descriptor extraction failed: %w", err)
		}
	}

	if len(descriptor) != a.descriptorLength {
		return nil, fmt.Errorf("extractor returned descriptor of length %d, expected %d", len(descriptor), a.descriptorLength)
	}

	return descriptor, nil
}

// identify runs one 1:N scan of candidate against every enrolled descriptor.
//
// The scan executes on the pool so that concurrent face logins cannot occupy
// more CPUs than the pool size, and the whole operation (including waiting
// for a free pool slot) is bounded by the identify timeout.
func (a *authService) identify(ctx context.Context, candidate models.Descriptor) (string, float64, error) {
	log := logger.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, a.identifyTimeout)
	defer cancel()

	enrolled, err := a.credentials.ListDescriptors(ctx)
	if err != nil {
		log.Err(err).Msg("enrolled descriptors listing failed")
		return "", 0, fmt.Errorf("enrolled descriptors listing failed: %w", err)
	}

	type scanResult struct {
		username string
		distance float64
		ok       bool
		err      error
	}
	results := make(chan scanResult, 1)

	if err := a.pool.Submit(ctx, func() {
		username, distance, ok, err := a.matcher.Identify(ctx, candidate, enrolled, a.identifyThreshold)
		results <- scanResult{username: username, distance: distance, ok: ok, err: err}
	}); err != nil {
		if errors.Is(err, context.Canceled) {
			return "", 0, err
		}
		log.Error().Int("enrolled", len(enrolled)).Msg("identification scan could not be scheduled in time")
		return "", 0, ErrIdentifyTimeout
	}

	select {
	case result := <-results:
		if result.err != nil {
			if errors.Is(result.err, context.DeadlineExceeded) {
				return "", 0, ErrIdentifyTimeout
			}
			return "", 0, fmt.Errorf("identification scan failed: %w", result.err)
		}
		if !result.ok {
			log.Debug().Int("enrolled", len(enrolled)).Msg("no enrolled descriptor matched")
			return "", 0, ErrUnauthorized
		}
		return result.username, result.distance, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.Canceled) {
			return "", 0, ctx.Err()
		}
		log.Error().Int("enrolled", len(enrolled)).Msg("identification scan timed out")
		return "", 0, ErrIdentifyTimeout
	}
}

// touchLastLogin records the successful authentication timestamp. Failure to
// record it does not fail the login itself.
func (a *authService) touchLastLogin(ctx context.Context, username string) {
	if err := a.credentials.TouchLastLogin(ctx, username, time.Now()); err != nil {
		logger.FromContext(ctx).Err(err).Str("username", username).Msg("last login update failed")
	}
}

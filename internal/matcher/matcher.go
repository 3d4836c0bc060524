// Package matcher implements descriptor distance computation and
// threshold-based face matching: 1:1 verification against a claimed
// account's descriptor and 1:N identification over the whole enrolled set.
package matcher

import (
	"context"
	"errors"
	"math"

	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/internal/store"
	"github.com/MKhiriev/go-face-login/models"
)

// ErrDimensionMismatch is returned when two descriptors of different lengths
// are compared. It indicates an internal consistency bug (a corrupted row or
// a misconfigured extractor), fatal to the request but not to the process.
var ErrDimensionMismatch = errors.New("descriptor dimension mismatch")

// Matcher resolves "who is this face" and "is this the claimed face".
//
// The linear-scan implementation is O(N) per Identify call; the interface is
// kept narrow so an approximate-nearest-neighbor index can replace it without
// touching callers.
type Matcher interface {
	// Distance computes the Euclidean distance between two descriptors of
	// equal length, failing with [ErrDimensionMismatch] otherwise.
	Distance(a, b models.Descriptor) (float64, error)

	// Verify reports whether candidate matches enrolled under threshold.
	// The comparison is a strict inequality: a distance exactly equal to the
	// threshold is a rejection.
	Verify(candidate, enrolled models.Descriptor, threshold float64) (bool, error)

	// Identify resolves candidate to the enrolled username with the globally
	// minimal distance, provided that minimum is strictly below threshold.
	// Returns ok=false when no enrolled descriptor qualifies.
	//
	// When two enrolled users sit at the identical minimal distance the
	// first one in enumeration order wins. This nondeterminism is inherent
	// to the linear scan and is kept deliberately; the store's stable
	// enumeration order makes it reproducible for a given snapshot.
	Identify(ctx context.Context, candidate models.Descriptor, enrolled []store.EnrolledDescriptor, threshold float64) (username string, distance float64, ok bool, err error)
}

// euclideanMatcher is the concrete linear-scan [Matcher].
type euclideanMatcher struct{}

// NewMatcher constructs the linear-scan Euclidean [Matcher].
// The returned matcher is stateless and safe for concurrent use.
func NewMatcher() Matcher {
	return &euclideanMatcher{}
}

// Distance implements [Matcher].
func (m *euclideanMatcher) Distance(a, b models.Descriptor) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}

	return math.Sqrt(sum), nil
}

// Verify implements [Matcher].
func (m *euclideanMatcher) Verify(candidate, enrolled models.Descriptor, threshold float64) (bool, error) {
	distance, err := m.Distance(candidate, enrolled)
	if err != nil {
		return false, err
	}

	return distance < threshold, nil
}

// Identify implements [Matcher]. The scan honors ctx cancellation between
// distance computations so a timed-out login does not keep burning CPU.
func (m *euclideanMatcher) Identify(ctx context.Context, candidate models.Descriptor, enrolled []store.EnrolledDescriptor, threshold float64) (string, float64, bool, error) {
	log := logger.FromContext(ctx)

	bestUsername := ""
	bestDistance := threshold

	for _, entry := range enrolled {
		if err := ctx.Err(); err != nil {
			return "", 0, false, err
		}

		distance, err := m.Distance(candidate, entry.Descriptor)
		if err != nil {
			return "", 0, false, err
		}

		log.Debug().Str("username", entry.Username).Float64("distance", distance).Msg("candidate distance")

		if distance < bestDistance {
			bestDistance = distance
			bestUsername = entry.Username
		}
	}

	if bestUsername == "" {
		return "", 0, false, nil
	}

	return bestUsername, bestDistance, true, nil
}

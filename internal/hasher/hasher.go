// Package hasher hashes and verifies user and event credentials with bcrypt.
package hasher

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrNoCredential is returned by Verify when there is no stored hash,
	// e.g. for an event that is not private.
	ErrNoCredential = errors.New("no credential stored")
	// ErrMalformedHash is returned by Verify when the stored value is not a bcrypt hash.
	ErrMalformedHash = errors.New("stored credential is malformed")
)

// Hasher performs one-way salted hashing. Concurrent hash work is capped so
// bcrypt cannot occupy every CPU while requests wait.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

// New creates a hasher. A cost outside bcrypt's range falls back to the
// default cost; maxConcurrent <= 0 means GOMAXPROCS.
func New(cost, maxConcurrent int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.GOMAXPROCS(0)
	}
	return &Hasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Hash trims surrounding whitespace from plaintext and returns its bcrypt hash
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire hash slot: %w", err)
	}
	defer h.sem.Release(1)

	hashed, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(plaintext)), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash credential: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext (trimmed) matches hashed. A mismatch is
// (false, nil); an absent or malformed hash is an error.
func (h *Hasher) Verify(ctx context.Context, plaintext, hashed string) (bool, error) {
	if hashed == "" {
		return false, ErrNoCredential
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("failed to acquire hash slot: %w", err)
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(strings.TrimSpace(plaintext)))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}

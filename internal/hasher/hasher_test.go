package hasher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *Hasher {
	return New(bcrypt.MinCost, 2)
}

func TestHashAndVerify(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	for _, plain := range []string{"pw1", "secret", "  padded  ", "ünïcödé", ""} {
		hashed, err := h.Hash(ctx, plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, hashed)

		ok, err := h.Verify(ctx, plain, hashed)
		require.NoError(t, err)
		assert.True(t, ok, "plaintext %q should verify", plain)
	}
}

func TestVerify_TrimEquivalence(t *testing.T) {
	h := newTestHasher()
	ctx := context.Background()

	hashed, err := h.Hash(ctx, "secret ")
	require.NoError(t, err)

	ok, err := h.Verify(ctx, "secret", hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(ctx, "\tsecret\n", hashed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(ctx, "Secret", hashed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHash_Salted(t *testing.T) {
	h := newTestHasher()
	a, err := h.Hash(context.Background(), "same")
	require.NoError(t, err)
	b, err := h.Hash(context.Background(), "same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerify_NoCredential(t *testing.T) {
	h := newTestHasher()
	ok, err := h.Verify(context.Background(), "anything", "")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestVerify_MalformedHash(t *testing.T) {
	h := newTestHasher()
	ok, err := h.Verify(context.Background(), "anything", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrMalformedHash)
}

func TestHash_CancelledContext(t *testing.T) {
	h := New(bcrypt.MinCost, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// hold the only slot so Acquire has to wait on the cancelled context
	require.NoError(t, h.sem.Acquire(context.Background(), 1))
	defer h.sem.Release(1)

	_, err := h.Hash(ctx, "pw")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, New(0, 0).cost)
	assert.Equal(t, bcrypt.DefaultCost, New(99, 0).cost)
	assert.Equal(t, 12, New(12, 0).cost)
}

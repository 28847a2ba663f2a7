//go:build integration

package mongo

import (
	"context"
	"os"
	"testing"

	"event-media-backend/internal/repository/repotest"

	"github.com/stretchr/testify/require"
)

// Run with: MONGO_TEST_URI=mongodb://... go test -tags integration ./internal/repository/mongo
func TestStoreContract(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	store, err := New(ctx, uri, "eventmedia_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	repotest.Run(t, store)
}

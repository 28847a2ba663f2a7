package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"event-media-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
database:
  driver: memory
storage:
  driver: local
  local_dir: ` + filepath.Join(dir, "uploads") + `
jwt:
  secret: test-secret
hasher:
  cost: 4
log:
  level: error
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path
}

func run(args ...string) error {
	return NewApp().RunContext(context.Background(), append([]string{"event-media-backend"}, args...))
}

func TestOpenStore_Memory(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Driver = "memory"

	store, err := openStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, store.Users)
	assert.NoError(t, store.Close(context.Background()))
}

func TestOpenStorage_LocalDefaultsToUploadsPath(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.LocalDir = t.TempDir()

	st, err := openStorage(context.Background(), cfg)
	require.NoError(t, err)

	blob, err := st.Put(context.Background(), "events/e1/a.png", "image/png", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/events/e1/a.png", blob.URL)
}

func TestProvisionAdmin(t *testing.T) {
	path := writeConfig(t)

	err := run("--config", path, "provision", "admin", "--email", "root@x.com", "--password", "rootpw")
	assert.NoError(t, err)

	err = run("--config", path, "provision", "admin", "--email", "root@x.com")
	assert.Error(t, err)
}

func TestProvisionVerifyUser(t *testing.T) {
	path := writeConfig(t)

	assert.Error(t, run("--config", path, "provision", "verify-user"))
	// the in-memory store starts empty
	assert.Error(t, run("--config", path, "provision", "verify-user", "Ann"))
}

func TestIntegrity(t *testing.T) {
	path := writeConfig(t)
	assert.NoError(t, run("--config", path, "integrity"))
	assert.NoError(t, run("--config", path, "integrity", "--apply"))
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: cassandra\njwt:\n  secret: s\n"), 0o600))

	assert.Error(t, run("--config", path, "integrity"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Load runs once per process; force it before swapping values so a later
// getter call does not reload the real files over the test fixture.
func init() { _ = Load() }

func TestLoadFromFiles_MergeOrder(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"db_driver":"postgres","bcrypt_cost":4,"documents_root":"from-json"}`), 0o600))
	require.NoError(t, os.WriteFile(envPath, []byte("# comment\nDOCUMENTS_ROOT=\"from-env\"\nSESSION_TTL=90m\n"), 0o600))

	require.NoError(t, loadFromFiles(jsonPath, envPath))
	t.Cleanup(func() {
		mu.Lock()
		values = defaultValues()
		mu.Unlock()
	})

	assert.Equal(t, "postgres", DatabaseDriver())
	assert.Equal(t, defaultPostgresDSN, DatabaseDSN())
	assert.Equal(t, 4, BcryptCost())
	assert.Equal(t, "from-env", DocumentsRoot())
	assert.Equal(t, 90*time.Minute, SessionTTL())
}

func TestLoadFromFiles_MissingFilesUseDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, loadFromFiles(filepath.Join(dir, "nope.json"), filepath.Join(dir, "nope.env")))
	t.Cleanup(func() {
		mu.Lock()
		values = defaultValues()
		mu.Unlock()
	})

	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, defaultSQLiteDSN, DatabaseDSN())
	assert.Equal(t, defaultBcryptCost, BcryptCost())
	assert.Equal(t, defaultSessionTTL, SessionTTL())
}

func TestLoadFromFiles_EnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("ADMIN_USERNAME=file-admin\n"), 0o600))
	t.Setenv("ADMIN_USERNAME", "env-admin")

	require.NoError(t, loadFromFiles(filepath.Join(dir, "nope.json"), envPath))
	t.Cleanup(func() {
		mu.Lock()
		values = defaultValues()
		mu.Unlock()
	})

	assert.Equal(t, "env-admin", AdminUsername())
}

func TestDatabaseDriver_UnknownFallsBackToSQLite(t *testing.T) {
	Set("DB_DRIVER", "oracle")
	t.Cleanup(func() { Set("DB_DRIVER", defaultDatabaseDriver) })

	assert.Equal(t, "sqlite", DatabaseDriver())
}

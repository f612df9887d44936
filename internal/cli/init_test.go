package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FINTRACK_TEST_VALUE=from-dotenv\n"), 0o600))
	t.Setenv("FINTRACK_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("FINTRACK_TEST_VALUE"))

	LoadEnvFile(path)
	assert.Equal(t, "from-dotenv", os.Getenv("FINTRACK_TEST_VALUE"))

	// missing files are ignored
	LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("PORT", "8081")
	cfg, err := LoadAndValidateConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.Addr())

	t.Setenv("PORT", "not-a-port")
	_, err = LoadAndValidateConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}

func TestSetupLogger(t *testing.T) {
	logger := SetupLogger("debug", "json", "worker")
	assert.Equal(t, "worker", logger.Component())
}

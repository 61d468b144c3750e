package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("  api-key-value\n"), 0o600))

	secret, err := Load(Source{Name: "gemini api key", File: path})
	require.NoError(t, err)
	assert.Equal(t, "api-key-value", secret)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("   \n"), 0o600))

	_, err := Load(Source{Name: "gemini api key", File: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Source{Name: "gemini api key", File: filepath.Join(t.TempDir(), "absent")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini api key")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("UNIASSIST_TEST_SECRET", " from-env ")

	secret, err := Load(Source{Name: "gemini api key", Env: "UNIASSIST_TEST_SECRET"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", secret)
}

func TestLoadInlineValue(t *testing.T) {
	secret, err := Load(Source{Value: " inline "})
	require.NoError(t, err)
	assert.Equal(t, "inline", secret)
}

func TestLoadFilePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("from-file"), 0o600))
	t.Setenv("UNIASSIST_TEST_SECRET", "from-env")

	secret, err := Load(Source{File: path, Env: "UNIASSIST_TEST_SECRET", Value: "inline"})
	require.NoError(t, err)
	assert.Equal(t, "from-file", secret)
}

func TestLoadNothingConfigured(t *testing.T) {
	_, err := Load(Source{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret is not configured")
}

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("  from-file\n"), 0o600))
	t.Setenv("ATS_TEST_KEY", "from-env")

	got, err := Load(Source{Name: "api key", Value: "inline", File: path, Env: "ATS_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "from-file", got)
}

func TestLoadValueThenEnv(t *testing.T) {
	t.Setenv("ATS_TEST_KEY", " from-env ")

	got, err := Load(Source{Value: "inline", Env: "ATS_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "inline", got)

	got, err = Load(Source{Env: "ATS_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)
}

func TestLoadErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, err := Load(Source{Name: "api key", File: path})
	assert.ErrorContains(t, err, "is empty")

	_, err = Load(Source{Name: "api key", File: filepath.Join(t.TempDir(), "missing")})
	assert.ErrorContains(t, err, "reading api key")

	t.Setenv("ATS_TEST_EMPTY", "")
	_, err = Load(Source{Name: "api key", Env: "ATS_TEST_EMPTY"})
	assert.EqualError(t, err, "api key is not configured (checked $ATS_TEST_EMPTY)")

	_, err = Load(Source{})
	assert.EqualError(t, err, "secret is not configured")
}

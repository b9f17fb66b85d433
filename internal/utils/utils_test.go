package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFiles_EarlierFileWinsAndEnvIsKept(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	base := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(local, []byte("APIFORGE_TEST_A=local\n"), 0o644))
	require.NoError(t, os.WriteFile(base, []byte("APIFORGE_TEST_A=base\nAPIFORGE_TEST_B=base\nAPIFORGE_TEST_C=base\n"), 0o644))
	t.Setenv("APIFORGE_TEST_C", "process")
	t.Setenv("APIFORGE_TEST_A", "")
	t.Setenv("APIFORGE_TEST_B", "")
	os.Unsetenv("APIFORGE_TEST_A")
	os.Unsetenv("APIFORGE_TEST_B")

	require.NoError(t, LoadEnvFiles(local, base, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "local", os.Getenv("APIFORGE_TEST_A"))
	assert.Equal(t, "base", os.Getenv("APIFORGE_TEST_B"))
	assert.Equal(t, "process", os.Getenv("APIFORGE_TEST_C"))
}

func TestLoadEnvFiles_NothingToLoad(t *testing.T) {
	assert.NoError(t, LoadEnvFiles(filepath.Join(t.TempDir(), ".env")))
}

func TestHasGitRepo(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, DirectoryExists(dir))
	assert.False(t, HasGitRepo(dir))

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	assert.True(t, HasGitRepo(dir))
	assert.False(t, DirectoryExists(filepath.Join(dir, "nope")))
}

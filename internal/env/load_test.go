package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nWINTER_TEST_A=\"quoted value\"\nexport WINTER_TEST_B='single'\n=novalue\nWINTER_TEST_C=from-file\nbroken line\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("WINTER_TEST_C", "from-env")
	t.Setenv("WINTER_TEST_A", "")
	os.Unsetenv("WINTER_TEST_A")
	t.Setenv("WINTER_TEST_B", "")
	os.Unsetenv("WINTER_TEST_B")

	require.NoError(t, Load(path))
	assert.Equal(t, "quoted value", os.Getenv("WINTER_TEST_A"))
	assert.Equal(t, "single", os.Getenv("WINTER_TEST_B"))
	assert.Equal(t, "from-env", os.Getenv("WINTER_TEST_C"))
}

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "nope")))
}

func TestHelpers(t *testing.T) {
	t.Setenv(AssetRoot, "")
	assert.Equal(t, "assets", String(AssetRoot, "assets"))
	t.Setenv(AssetRoot, "/srv/winter")
	assert.Equal(t, "/srv/winter", String(AssetRoot, "assets"))

	t.Setenv(Sound, "true")
	v, ok := Bool(Sound)
	assert.True(t, ok)
	assert.True(t, v)
	t.Setenv(Sound, "loud")
	_, ok = Bool(Sound)
	assert.False(t, ok)
}

package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFonts(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, n := range names {
		p := filepath.Join(Dir(root), filepath.FromSlash(n))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("font"), 0o644))
	}
	return root
}

func TestScanDirSkipsOtherFiles(t *testing.T) {
	root := writeFonts(t, "Inter/Inter-Bold.ttf", "Inter/OFL.txt", "Mono.otf")
	list, err := ScanDir(Dir(root))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Inter/Inter-Bold.ttf", "Mono.otf"}, list)
}

func TestScanDirMissing(t *testing.T) {
	list, err := ScanDir(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFindFontPrefersRegular(t *testing.T) {
	root := writeFonts(t, "Inter/Inter-Bold.ttf", "Inter/Inter-Regular.ttf")
	rel, full, err := FindFont(root, "inter")
	require.NoError(t, err)
	assert.Equal(t, "Inter/Inter-Regular.ttf", rel)
	assert.Equal(t, filepath.Join(root, "fonts", "Inter", "Inter-Regular.ttf"), full)
}

func TestFindFontFallsBackToFamily(t *testing.T) {
	root := writeFonts(t, "Inter/Inter-Regular.ttf")
	rel, _, err := FindFont(root, "Inter/Inter-Light.ttf")
	require.NoError(t, err)
	assert.Equal(t, "Inter/Inter-Regular.ttf", rel)
}

func TestFindFontEmptySearchTakesAny(t *testing.T) {
	root := writeFonts(t, "Mono.otf")
	rel, _, err := FindFont(root, "")
	require.NoError(t, err)
	assert.Equal(t, "Mono.otf", rel)
}

func TestFindFontNoMatch(t *testing.T) {
	root := writeFonts(t, "Mono.otf")
	_, _, err := FindFont(root, "Serif")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSearchCandidates(t *testing.T) {
	assert.Equal(t, []string{"Inter/Inter-Regular.ttf", "Inter", "Inter/Inter", "Inter/Inter-Regular"}, SearchCandidates("Inter/Inter-Regular.ttf"))
}

package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFileGivesDefaults(t *testing.T) {
	p, err := LoadFrom(filepath.Join(t.TempDir(), "engine.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestInvalidFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	p, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "engine.json")
	want := Default()
	want.ShowFPS = true
	want.SoundOn = true
	want.FlakeCount = 50
	want.PanelCSS = "styles/panel.css"
	require.NoError(t, SaveTo(path, want))

	got, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"show_fps": true, "window_width": -1, "tree_scale": 0}`), 0644))
	p, err := LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, p.ShowFPS)
	assert.Equal(t, 1280, p.WindowWidth)
	assert.Equal(t, float32(0.6), p.TreeScale)
	assert.Equal(t, "assets", p.AssetRoot)
	assert.Equal(t, 20, p.FlakeCount)
}

package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// EngineConfigPath is the path to the preferences file, relative to the process working directory.
const EngineConfigPath = "config/engine.json"

// EnginePrefs holds window and debug preferences. Persisted across runs; the scene itself is not.
type EnginePrefs struct {
	ShowFPS      bool    `json:"show_fps"`
	ShowMemAlloc bool    `json:"show_memalloc"`
	SoundOn      bool    `json:"sound_on"`
	WindowWidth  int     `json:"window_width"`
	WindowHeight int     `json:"window_height"`
	AssetRoot    string  `json:"asset_root"`
	Manifest     string  `json:"manifest,omitempty"`
	FlakeCount   int     `json:"flake_count"`
	TreeScale    float32 `json:"tree_scale"`
	// Font is a font name or path searched under the asset root's fonts directory.
	Font string `json:"font,omitempty"`
	// PanelCSS is a stylesheet, relative to the asset root, that restyles the control panel.
	PanelCSS string `json:"panel_css,omitempty"`
}

// Default returns default preferences (overlays off, sound off, 1280×720).
func Default() EnginePrefs {
	return EnginePrefs{
		WindowWidth:  1280,
		WindowHeight: 720,
		AssetRoot:    "assets",
		FlakeCount:   20,
		TreeScale:    0.6,
	}
}

// Load reads preferences from EngineConfigPath.
func Load() (EnginePrefs, error) {
	return LoadFrom(EngineConfigPath)
}

// LoadFrom reads preferences from path. If the file is missing or invalid it returns
// Default() and does not create a file. Fields absent from the file keep their defaults.
func LoadFrom(path string) (EnginePrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p.normalized(), nil
}

func (p EnginePrefs) normalized() EnginePrefs {
	d := Default()
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		p.WindowWidth, p.WindowHeight = d.WindowWidth, d.WindowHeight
	}
	if p.AssetRoot == "" {
		p.AssetRoot = d.AssetRoot
	}
	if p.FlakeCount < 0 {
		p.FlakeCount = 0
	}
	if p.TreeScale <= 0 {
		p.TreeScale = d.TreeScale
	}
	return p
}

// Save writes preferences to EngineConfigPath.
func Save(p EnginePrefs) error {
	return SaveTo(EngineConfigPath, p)
}

// SaveTo writes preferences to path, creating the directory if needed.
func SaveTo(path string, p EnginePrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "save prefs")
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.Wrap(err, "save prefs")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "save prefs")
}

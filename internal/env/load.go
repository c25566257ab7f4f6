package env

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// AssetRoot overrides the directory models, textures and sounds are read from.
	AssetRoot = "WINTER_ASSET_ROOT"
	// Manifest points at a YAML scene manifest used instead of the built-in one.
	Manifest = "WINTER_MANIFEST"
	// Sound forces the ambient track on or off at startup.
	Sound = "WINTER_SOUND"
	// Font names the overlay font to search for under the asset root.
	Font = "WINTER_FONT"
	// PanelCSS names a stylesheet under the asset root that restyles the control panel.
	PanelCSS = "WINTER_PANEL_CSS"
)

// Load reads the given file (e.g. ".env") and sets environment variables for each
// line of the form KEY=VALUE. Empty lines and lines starting with # are skipped.
// Variables already set in the environment win over the file.
// The file may be missing; that is not an error.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "load env")
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return errors.Wrap(scanner.Err(), "load env")
}

func parseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	i := strings.Index(line, "=")
	if i <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:i])
	value = strings.TrimSpace(line[i+1:])
	if key == "" {
		return "", "", false
	}
	// Remove surrounding quotes if present
	if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

// String returns the variable's value, or def when unset or empty.
func String(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Bool parses the variable as a boolean; ok is false when unset or unparsable.
func Bool(key string) (v bool, ok bool) {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false, false
	}
	return b, true
}

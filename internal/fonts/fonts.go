// Package fonts finds the overlay font under the asset root.
package fonts

import (
	"os"
	"path/filepath"
	"strings"
)

// Exts are the font file extensions considered.
var Exts = []string{".ttf", ".otf"}

// Dir is the font directory under an asset root.
func Dir(root string) string {
	return filepath.Join(root, "fonts")
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. A missing dir yields no fonts and no error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range Exts {
			if ext == e {
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					return err
				}
				out = append(out, filepath.ToSlash(rel))
				return nil
			}
		}
		return nil
	})
	return out, err
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// SearchCandidates returns search terms to try in order.
// Example: "Inter/Inter-Regular.ttf" -> the path, "Inter", "Inter/Inter", "Inter/Inter-Regular".
func SearchCandidates(pathOrName string) []string {
	seen := map[string]bool{pathOrName: true}
	candidates := []string{pathOrName}
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			candidates = append(candidates, s)
		}
	}
	if i := strings.IndexAny(pathOrName, "/\\"); i > 0 {
		add(pathOrName[:i])
	}
	if i := strings.Index(pathOrName, "-"); i > 0 {
		add(pathOrName[:i])
	}
	for _, ext := range Exts {
		if strings.HasSuffix(strings.ToLower(pathOrName), ext) {
			add(pathOrName[:len(pathOrName)-len(ext)])
			break
		}
	}
	return candidates
}

// FindFont searches the font directory under root for a file matching search, trying
// each of SearchCandidates in turn. An empty search matches any font.
// When several files match, one with "Regular" in its path wins.
func FindFont(root, search string) (relPath string, fullPath string, err error) {
	dir := Dir(root)
	list, err := ScanDir(dir)
	if err != nil {
		return "", "", err
	}
	for _, term := range SearchCandidates(search) {
		norm := normalizeForMatch(term)
		var matches []string
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				matches = append(matches, rel)
			}
		}
		if len(matches) == 0 {
			continue
		}
		pick := matches[0]
		for _, m := range matches {
			if strings.Contains(strings.ToLower(m), "regular") {
				pick = m
				break
			}
		}
		return pick, filepath.Join(dir, filepath.FromSlash(pick)), nil
	}
	return "", "", os.ErrNotExist
}

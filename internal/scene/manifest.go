package scene

import (
	"bytes"
	_ "embed"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"winter-scene/internal/assets"
	"winter-scene/internal/scenegraph"
)

//go:embed winter.yaml
var builtinManifest []byte

// Manifest lists the static content of the scene.
type Manifest struct {
	Background []string     `yaml:"background"`
	Textures   Textures     `yaml:"textures"`
	Sound      string       `yaml:"sound"`
	Models     []ModelEntry `yaml:"models"`
}

// Textures names the textures of the built-in meshes.
type Textures struct {
	Ground string `yaml:"ground"`
	Ball   string `yaml:"ball"`
}

// ModelEntry places one glTF model. Without a container the model goes into the scene root.
// AfterFog models are requested after the fog is set up, like the giftbox.
type ModelEntry struct {
	Name         string     `yaml:"name"`
	Path         string     `yaml:"path"`
	Container    string     `yaml:"container"`
	Position     [3]float32 `yaml:"position"`
	Scale        float32    `yaml:"scale"`
	Rotation     [3]float32 `yaml:"rotation"`
	WholeScene   bool       `yaml:"whole_scene"`
	Animate      bool       `yaml:"animate"`
	ClipDuration float32    `yaml:"clip_duration"`
	AfterFog     bool       `yaml:"after_fog"`
}

// Request turns the entry into a load request for the given container.
func (m ModelEntry) Request(container *scenegraph.Group) assets.Request {
	return assets.Request{
		Name:         m.Name,
		Path:         m.Path,
		Container:    container,
		Position:     mgl32.Vec3(m.Position),
		Scale:        m.Scale,
		Rotation:     mgl32.Vec3(m.Rotation),
		WholeScene:   m.WholeScene,
		Animate:      m.Animate,
		ClipDuration: m.ClipDuration,
	}
}

// DefaultManifest returns the built-in winter scene.
func DefaultManifest() *Manifest {
	m, err := ParseManifest(builtinManifest)
	if err != nil {
		panic(err)
	}
	return m
}

// LoadManifest reads a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load manifest")
	}
	return ParseManifest(data)
}

// ParseManifest decodes YAML, rejecting unknown fields, and checks every model has a name and path.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(err, "parse manifest")
	}
	if len(m.Background) != 0 && len(m.Background) != 6 {
		return nil, errors.Errorf("background needs 6 cube faces, got %d", len(m.Background))
	}
	seen := make(map[string]bool, len(m.Models))
	for i, entry := range m.Models {
		if entry.Name == "" || entry.Path == "" {
			return nil, errors.Errorf("model %d needs a name and a path", i)
		}
		if seen[entry.Name] {
			return nil, errors.Errorf("model %q listed twice", entry.Name)
		}
		seen[entry.Name] = true
	}
	return &m, nil
}

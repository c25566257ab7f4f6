package render

import (
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

// Cubemap skybox shader: samples by the direction from the cube center.
const (
	skyboxVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
out vec3 fragDir;
void main() {
  fragDir = vertexPosition;
  mat4 rotView = mat4(mat3(matView));
  gl_Position = matProjection * rotView * vec4(vertexPosition, 1.0);
}
`
	skyboxFS = `#version 330
in vec3 fragDir;
uniform samplerCube environmentMap;
out vec4 finalColor;
void main() {
  finalColor = vec4(texture(environmentMap, fragDir).rgb, 1.0);
}
`
)

// skybox draws the scene background from six face images (+x, -x, +y, -y, +z, -z).
// GPU loading is deferred to the first draw so it runs after the window/OpenGL context exists.
type skybox struct {
	faces   []string
	pending bool
	loaded  bool
	tex     rl.Texture2D
	mesh    rl.Mesh
	mtl     rl.Material
}

func newSkybox(root string, faces []string) *skybox {
	s := &skybox{pending: len(faces) == 6}
	for _, f := range faces {
		s.faces = append(s.faces, filepath.Join(root, f))
	}
	return s
}

// ensureLoaded composes the faces into one horizontal strip and uploads it as a cubemap.
func (s *skybox) ensureLoaded() error {
	if !s.pending {
		return nil
	}
	s.pending = false

	var strip *rl.Image
	var size int32
	for i, path := range s.faces {
		img := rl.LoadImage(path)
		if img == nil || img.Width <= 0 || img.Height <= 0 {
			if strip != nil {
				rl.UnloadImage(strip)
			}
			return errors.Errorf("skybox face %s could not be read", path)
		}
		if strip == nil {
			size = img.Height
			strip = rl.GenImageColor(int(size)*6, int(size), rl.Black)
		}
		if img.Width != size || img.Height != size {
			rl.ImageResize(img, size, size)
		}
		src := rl.NewRectangle(0, 0, float32(size), float32(size))
		dst := rl.NewRectangle(float32(int32(i)*size), 0, float32(size), float32(size))
		rl.ImageDraw(strip, img, src, dst, rl.White)
		rl.UnloadImage(img)
	}

	s.tex = rl.LoadTextureCubemap(strip, rl.CubemapLayoutLineHorizontal)
	rl.UnloadImage(strip)
	if !rl.IsTextureValid(s.tex) {
		return errors.New("skybox cubemap upload failed")
	}
	shader := rl.LoadShaderFromMemory(skyboxVS, skyboxFS)
	if !rl.IsShaderValid(shader) {
		rl.UnloadTexture(s.tex)
		return errors.New("skybox shader failed to compile")
	}
	// DrawMesh binds the cubemap map slot to whatever uniform this location names.
	shader.UpdateLocation(rl.ShaderLocMapCubemap, rl.GetShaderLocation(shader, "environmentMap"))

	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.mtl = rl.LoadMaterialDefault()
	s.mtl.Shader = shader
	rl.SetMaterialTexture(&s.mtl, rl.MapCubemap, s.tex)
	s.loaded = true
	return nil
}

// draw renders the cube with depth writes off so everything else draws over it.
// The shader drops the view translation, so the cube always surrounds the camera.
func (s *skybox) draw() {
	if !s.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	rl.DrawMesh(s.mesh, s.mtl, rl.MatrixIdentity())
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

func (s *skybox) unload() {
	if !s.loaded {
		return
	}
	rl.UnloadTexture(s.tex)
	rl.UnloadShader(s.mtl.Shader)
	rl.UnloadMesh(&s.mesh)
	s.loaded = false
}

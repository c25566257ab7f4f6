// Package render draws the scene graph with raylib. It owns every GPU resource;
// nothing in here is created before the window/OpenGL context exists.
package render

import (
	"path/filepath"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"winter-scene/internal/logger"
	"winter-scene/internal/scene"
	"winter-scene/internal/scenegraph"
	"winter-scene/internal/terrain"
)

type loadedModel struct {
	model rl.Model
	anims []rl.ModelAnimation
	ok    bool
}

// Renderer turns an App's scene graph into draw calls. Meshes, textures and models are
// created lazily on first use and cached for the lifetime of the renderer.
type Renderer struct {
	root string
	log  *logger.Logger

	ready    bool
	lit      *litShader
	material rl.Material
	blank    rl.Texture2D
	sky      *skybox

	textures map[string]rl.Texture2D
	spheres  map[*scenegraph.SphereGeometry]rl.Mesh
	grounds  map[*scenegraph.PlaneGeometry]rl.Mesh
	quads    map[[2]float32]rl.Mesh
	models   map[string]*loadedModel
}

// New returns a renderer resolving textures against root. background lists the six skybox faces.
func New(root string, background []string, log *logger.Logger) *Renderer {
	return &Renderer{
		root:     root,
		log:      log,
		sky:      newSkybox(root, background),
		textures: make(map[string]rl.Texture2D),
		spheres:  make(map[*scenegraph.SphereGeometry]rl.Mesh),
		grounds:  make(map[*scenegraph.PlaneGeometry]rl.Mesh),
		quads:    make(map[[2]float32]rl.Mesh),
		models:   make(map[string]*loadedModel),
	}
}

func (r *Renderer) ensureReady() {
	if r.ready {
		return
	}
	r.ready = true
	r.lit = loadLitShader()
	if !r.lit.valid() && r.log != nil {
		r.log.Errorf("lit shader failed to compile, falling back to unlit")
	}
	r.material = rl.LoadMaterialDefault()
	if r.lit.valid() {
		r.material.Shader = r.lit.shader
	}
	if albedo := r.material.GetMap(rl.MapAlbedo); albedo != nil {
		r.blank = albedo.Texture
	}
	if err := r.sky.ensureLoaded(); err != nil && r.log != nil {
		r.log.Errorf("%v", err)
	}
}

// Draw renders the 3D scene. Call after ClearBackground and before any 2D overlay.
func (r *Renderer) Draw(app *scene.App) {
	r.ensureReady()
	r.animate(app)

	rl.BeginMode3D(camera3D(app.Camera))
	r.sky.draw()
	if r.lit.valid() {
		r.lit.setLights(app.Camera.Position, app.Spot, app.Ambient, app.Scene.Fog)
	}
	for _, n := range app.Scene.Children() {
		r.drawNode(n, mgl32.Ident4())
	}
	rl.EndMode3D()
}

// animate poses every animated model at its mixer's current frame.
func (r *Renderer) animate(app *scene.App) {
	for _, m := range app.Driver.Mixers() {
		geo, ok := m.Target.Geometry.(*scenegraph.ModelGeometry)
		if !ok {
			continue
		}
		lm := r.model(geo.Path)
		if !lm.ok || m.Clip.Index >= len(lm.anims) {
			continue
		}
		a := lm.anims[m.Clip.Index]
		rl.UpdateModelAnimation(lm.model, a, int32(m.Frame(int(a.FrameCount))))
	}
}

// drawNode draws n and its children. Hidden nodes hide their whole subtree.
func (r *Renderer) drawNode(n scenegraph.Node, parent mgl32.Mat4) {
	obj := scenegraph.ObjectOf(n)
	if !obj.Visible {
		return
	}
	world := parent.Mul4(obj.LocalMatrix())
	if m, ok := n.(*scenegraph.Mesh); ok {
		r.drawMesh(m, world)
	}
	for _, c := range obj.Children() {
		r.drawNode(c, world)
	}
}

func (r *Renderer) drawMesh(m *scenegraph.Mesh, world mgl32.Mat4) {
	if r.lit.valid() {
		r.lit.setMaterial(m.Material)
	}
	switch geo := m.Geometry.(type) {
	case *scenegraph.SphereGeometry:
		r.drawWithMaterial(r.sphere(geo), m.Material, world)
	case *scenegraph.PlaneGeometry:
		if geo.Upright {
			// GenMeshPlane lies in XZ facing +Y; stand it up to face +Z.
			rot := mgl32.HomogRotate3DX(mgl32.DegToRad(90))
			rl.DisableBackfaceCulling()
			r.drawWithMaterial(r.quad(geo.Width, geo.Depth), m.Material, world.Mul4(rot))
			rl.EnableBackfaceCulling()
			return
		}
		offset := mgl32.Translate3D(-geo.Width/2, 0, -geo.Depth/2)
		r.drawWithMaterial(r.ground(geo), m.Material, world.Mul4(offset))
	case *scenegraph.ModelGeometry:
		lm := r.model(geo.Path)
		if !lm.ok {
			return
		}
		lm.model.Transform = toMatrix(world)
		rl.DrawModel(lm.model, rl.Vector3{}, 1, rl.White)
	}
}

func (r *Renderer) drawWithMaterial(mesh rl.Mesh, mat scenegraph.Material, world mgl32.Mat4) {
	if mat.DoubleSided {
		rl.DisableBackfaceCulling()
		defer rl.EnableBackfaceCulling()
	}
	tex := r.blank
	if mat.Texture != "" {
		if t := r.texture(mat.Texture); rl.IsTextureValid(t) {
			tex = t
		}
	}
	rl.SetMaterialTexture(&r.material, rl.MapAlbedo, tex)
	if albedo := r.material.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = toColor(mat.Color)
	}
	rl.DrawMesh(mesh, r.material, toMatrix(world))
}

// texture loads and caches a texture with repeat wrapping. Failures are logged once and cached.
func (r *Renderer) texture(rel string) rl.Texture2D {
	if t, ok := r.textures[rel]; ok {
		return t
	}
	t := rl.LoadTexture(filepath.Join(r.root, rel))
	if rl.IsTextureValid(t) {
		rl.GenTextureMipmaps(&t)
		rl.SetTextureFilter(t, rl.FilterTrilinear)
		rl.SetTextureWrap(t, rl.WrapRepeat)
	} else if r.log != nil {
		r.log.Errorf("texture %s could not be loaded", rel)
	}
	r.textures[rel] = t
	return t
}

func (r *Renderer) sphere(geo *scenegraph.SphereGeometry) rl.Mesh {
	if m, ok := r.spheres[geo]; ok {
		return m
	}
	segments := int(geo.Segments)
	if segments < 3 {
		segments = 16
	}
	m := rl.GenMeshSphere(geo.Radius, segments, segments)
	r.spheres[geo] = m
	return m
}

func (r *Renderer) quad(width, height float32) rl.Mesh {
	key := [2]float32{width, height}
	if m, ok := r.quads[key]; ok {
		return m
	}
	m := rl.GenMeshPlane(width, height, 1, 1)
	r.quads[key] = m
	return m
}

// ground builds the relief mesh from the grid heights through a grayscale heightmap.
// The heights never change after creation, so the mesh is built once.
func (r *Renderer) ground(geo *scenegraph.PlaneGeometry) rl.Mesh {
	if m, ok := r.grounds[geo]; ok {
		return m
	}
	maxHeight := geo.MaxHeight()
	data := terrain.Heightmap(geo, maxHeight)
	cols, rows := geo.Columns(), geo.Rows()
	img := rl.GenImageColor(cols, rows, rl.Black)
	for z := 0; z < rows; z++ {
		for x := 0; x < cols; x++ {
			v := data[z*cols+x]
			rl.ImageDrawPixel(img, int32(x), int32(z), rl.NewColor(v, v, v, 255))
		}
	}
	m := rl.GenMeshHeightmap(*img, rl.NewVector3(geo.Width, maxHeight, geo.Depth))
	rl.UnloadImage(img)
	r.grounds[geo] = m
	return m
}

// model loads and caches a model file with its animations. Its materials are switched
// to the lit shader so models share the scene lighting and fog.
func (r *Renderer) model(path string) *loadedModel {
	if lm, ok := r.models[path]; ok {
		return lm
	}
	lm := &loadedModel{model: rl.LoadModel(path)}
	lm.ok = lm.model.MeshCount > 0
	if !lm.ok {
		if r.log != nil {
			r.log.Errorf("model %s could not be uploaded", path)
		}
	} else {
		if r.lit.valid() {
			mats := unsafe.Slice(lm.model.Materials, lm.model.MaterialCount)
			for i := range mats {
				mats[i].Shader = r.lit.shader
			}
		}
		lm.anims = rl.LoadModelAnimations(path)
	}
	r.models[path] = lm
	return lm
}

// Unload frees every GPU resource the renderer created.
func (r *Renderer) Unload() {
	if !r.ready {
		return
	}
	for _, t := range r.textures {
		if rl.IsTextureValid(t) {
			rl.UnloadTexture(t)
		}
	}
	for _, m := range r.spheres {
		rl.UnloadMesh(&m)
	}
	for _, m := range r.grounds {
		rl.UnloadMesh(&m)
	}
	for _, m := range r.quads {
		rl.UnloadMesh(&m)
	}
	for _, lm := range r.models {
		if !lm.ok {
			continue
		}
		if len(lm.anims) > 0 {
			rl.UnloadModelAnimations(lm.anims)
		}
		// Models share the lit shader; detach it so UnloadModel does not free it twice.
		mats := unsafe.Slice(lm.model.Materials, lm.model.MaterialCount)
		for i := range mats {
			mats[i].Shader = rl.Shader{}
		}
		rl.UnloadModel(lm.model)
	}
	r.sky.unload()
	if r.lit.valid() {
		rl.UnloadShader(r.lit.shader)
	}
	r.ready = false
}

func camera3D(c *scenegraph.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(c.WorldPosition()),
		Target:     toVector3(c.Target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       c.Fov,
		Projection: rl.CameraPerspective,
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// toMatrix converts a column-major mathgl matrix. Both store element (row r, col c) at c*4+r.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toColor(c [4]float32) rl.Color {
	r, g, b := colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}.Clamped().RGB255()
	a := c[3]
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return rl.NewColor(r, g, b, uint8(a*255))
}

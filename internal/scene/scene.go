// Package scene composes the winter scene and owns the application state that
// every other component works on.
package scene

import (
	"context"
	"math/rand/v2"
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"winter-scene/internal/anim"
	"winter-scene/internal/assets"
	"winter-scene/internal/audio"
	"winter-scene/internal/interaction"
	"winter-scene/internal/logger"
	"winter-scene/internal/scenegraph"
	"winter-scene/internal/snowfall"
	"winter-scene/internal/terrain"
	"winter-scene/internal/trees"
)

// Names of nodes other components look up.
const (
	GroundName  = "ground"
	BallName    = interaction.DraggableName
	GiftboxName = "giftbox"
)

const (
	cameraFov  = 45
	cameraNear = 0.1
	cameraFar  = 500

	groundSize     = 50
	groundSegments = 15
	groundRepeat   = 10

	fogNear = 5
	fogFar  = 100

	ballRadius   = 1
	ballSegments = 32
)

// Options configures New. Zero values fall back to the built-in scene; a zero FlakeCount means no snow.
type Options struct {
	AssetRoot  string
	Manifest   *Manifest
	FlakeCount int
	TreeScale  float32
	Width      int
	Height     int
	// Rand supplies uniform values in [0,1) for terrain, trees and flakes; nil uses math/rand.
	Rand func() float32
	// Loader parses models; nil creates an assets.Loader rooted at AssetRoot.
	Loader *assets.Loader
	// Audio receives the ambient track; nil plays nothing.
	Audio audio.Output
	Log   *logger.Logger
}

// App is the application context: the scene graph and every component that reads or
// mutates it. All methods run on the render goroutine.
type App struct {
	Log      *logger.Logger
	Manifest *Manifest
	Root     string

	Scene    *scenegraph.Scene
	Camera   *scenegraph.Camera
	Controls *interaction.OrbitControls
	Spot     *scenegraph.Light
	Ambient  *scenegraph.Light
	Ground   *scenegraph.Mesh
	Ball     *scenegraph.Mesh

	Trees       *trees.Registry
	Snow        *snowfall.Snowfall
	Driver      *anim.Driver
	Interaction *interaction.Controller
	Sound       *audio.Sound
	Loader      *assets.Loader

	Width, Height int
	SoundOn       bool
	ShowInfo      bool

	ctx        context.Context
	containers map[string]*scenegraph.Group
	orbiting   bool
	lastX      float32
	lastY      float32
}

// New builds the scene once, in this order: background, camera, orbit controls, lights,
// ground, tree registry, models, fog, late models, snowfall, sound, ball.
// Model loads run in the background; call Frame every frame to attach them.
func New(ctx context.Context, opts Options) *App {
	if opts.Log == nil {
		opts.Log = logger.NewAt("")
	}
	if opts.Manifest == nil {
		opts.Manifest = DefaultManifest()
	}
	if opts.Rand == nil {
		opts.Rand = rand.Float32
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1280, 720
	}
	if opts.Loader == nil {
		opts.Loader = assets.NewLoader(opts.AssetRoot, opts.Log)
	}
	if opts.TreeScale <= 0 {
		opts.TreeScale = trees.DefaultScale
	}

	a := &App{
		Log:        opts.Log,
		Manifest:   opts.Manifest,
		Root:       opts.AssetRoot,
		Loader:     opts.Loader,
		Driver:     &anim.Driver{},
		Width:      opts.Width,
		Height:     opts.Height,
		ctx:        ctx,
		containers: make(map[string]*scenegraph.Group),
	}

	a.Scene = scenegraph.NewScene()
	a.Scene.Background = a.Manifest.Background

	a.Camera = scenegraph.NewPerspectiveCamera(cameraFov, float32(opts.Width)/float32(opts.Height), cameraNear, cameraFar)
	a.Camera.SetPosition(5, 5, 25)
	a.Camera.LookAt(mgl32.Vec3{})

	a.Controls = interaction.NewOrbitControls(a.Camera)
	a.addLights()
	a.addGround(opts.Rand)

	a.Trees = trees.New(ctx, a.Scene, a.Loader, opts.Rand)
	a.Trees.Scale = opts.TreeScale

	a.loadModels(false)
	a.Scene.Fog = &scenegraph.Fog{Color: [3]float32{1, 1, 1}, Near: fogNear, Far: fogFar}
	a.loadModels(true)

	a.Snow = snowfall.New(a.Scene, a.Driver, opts.FlakeCount, opts.Rand)

	out := opts.Audio
	if out == nil {
		out = audio.Silent{Rate: 44100}
	}
	a.Sound = audio.NewSound(out, a.Log)
	if a.Manifest.Sound != "" {
		a.Sound.Load(filepath.Join(a.Root, a.Manifest.Sound))
	}

	a.addBall()
	a.Interaction = interaction.New(a.Scene, a.Camera, a.Ground, a.Controls)
	return a
}

func (a *App) addLights() {
	a.Spot = scenegraph.NewSpotLight("spot", [3]float32{1, 1, 1}, 5)
	a.Spot.SetPosition(-20, 25, 10)
	a.Spot.ShadowMapSize = [2]int{2048, 2048}
	a.Spot.Distance = 200
	a.Spot.Angle = math32.Pi / 3
	a.Spot.Penumbra = 0.4
	a.Spot.Decay = 0.2
	a.Spot.CastShadow = true
	a.Scene.Add(a.Spot)

	a.Ambient = scenegraph.NewAmbientLight("ambient", [3]float32{1, 1, 1}, 0.2)
	a.Scene.Add(a.Ambient)
}

func (a *App) addGround(rnd func() float32) {
	opts := terrain.DefaultReliefOptions()
	opts.Width, opts.Depth = groundSize, groundSize
	opts.SegmentsX, opts.SegmentsZ = groundSegments, groundSegments
	opts.Rand = rnd
	a.Ground = scenegraph.NewMesh(GroundName, terrain.Generate(opts), scenegraph.Material{
		Texture: a.Manifest.Textures.Ground,
		Repeat:  [2]float32{groundRepeat, groundRepeat},
	})
	a.Ground.ReceiveShadow = true
	a.Scene.Add(a.Ground)
}

func (a *App) loadModels(afterFog bool) {
	for _, entry := range a.Manifest.Models {
		if entry.AfterFog != afterFog {
			continue
		}
		container := a.Scene.Root
		if entry.Container != "" {
			container = scenegraph.NewGroup(entry.Container)
			a.containers[entry.Name] = container
			a.Scene.Add(container)
		}
		a.Loader.Load(a.ctx, entry.Request(container))
	}
}

func (a *App) addBall() {
	a.Ball = scenegraph.NewMesh(BallName,
		&scenegraph.SphereGeometry{Radius: ballRadius, Segments: ballSegments},
		scenegraph.Material{Texture: a.Manifest.Textures.Ball})
	a.Ball.SetPosition(0, 1, 0)
	a.Ball.CastShadow = true
	a.Scene.Add(a.Ball)
}

// Container returns the group a manifest model is loaded into, or nil for root-level models.
func (a *App) Container(name string) *scenegraph.Group {
	return a.containers[name]
}

// Attached handles one finished load: the model is attached and, when requested,
// its first clip starts looping. Failed loads were already logged by the loader.
func (a *App) Attached(res assets.Result) {
	mesh := assets.Attach(res)
	if mesh == nil {
		return
	}
	geo, _ := mesh.Geometry.(*scenegraph.ModelGeometry)
	if !res.Request.Animate || geo == nil || len(geo.Clips) == 0 {
		return
	}
	m := anim.NewMixer(mesh, geo.Clips[0])
	if res.Request.ClipDuration > 0 {
		m.SetDuration(res.Request.ClipDuration)
	}
	a.Driver.AddMixer(m.Play())
}

// Frame attaches finished loads and advances mixers and tweens by delta seconds.
// Call it once per frame before rendering.
func (a *App) Frame(delta float32) {
	a.Loader.Drain(a.Attached)
	a.Driver.Tick(delta)
	a.Controls.Apply(a.Camera)
}

// Resize adapts the camera to a new surface size and records the size for the renderer.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.Width, a.Height = width, height
	a.Camera.SetAspect(float32(width) / float32(height))
}

// Info lists the top-level scene objects.
func (a *App) Info() []string {
	children := a.Scene.Children()
	out := make([]string, 0, len(children))
	for _, c := range children {
		name := scenegraph.NameOf(c)
		if name == "" {
			name = "(unnamed)"
		}
		out = append(out, name)
	}
	return out
}

// ToggleGiftbox flips the giftbox visibility. Before the giftbox has loaded it does
// nothing and reports false.
func (a *App) ToggleGiftbox() bool {
	n := a.Scene.ObjectByName(GiftboxName)
	if n == nil {
		return false
	}
	obj := scenegraph.ObjectOf(n)
	obj.Visible = !obj.Visible
	return true
}

// SetSound starts or stops the ambient track.
func (a *App) SetSound(on bool) {
	a.SoundOn = on
	if on {
		a.Sound.Play()
	} else {
		a.Sound.Stop()
	}
}

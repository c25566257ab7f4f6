package assets

import (
	"context"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"golang.org/x/sync/semaphore"

	"winter-scene/internal/logger"
	"winter-scene/internal/scenegraph"
)

// maxParallelLoads bounds how many glTF documents are parsed at once.
const maxParallelLoads = 4

// completedBuffer is the capacity of the completion channel. The frame loop drains it
// every frame, so it only needs to absorb one burst of startup loads.
const completedBuffer = 64

// Request describes one model to place into Container once loaded.
// Path is relative to the loader root. Scale is uniform.
// WholeScene keeps the whole default glTF scene as the model root; otherwise the
// first child of the default scene is used. Animate asks the scene to play the
// first clip, stretched to ClipDuration seconds when that is positive.
type Request struct {
	Name         string
	Path         string
	Container    *scenegraph.Group
	Position     mgl32.Vec3
	Scale        float32
	Rotation     mgl32.Vec3
	WholeScene   bool
	Animate      bool
	ClipDuration float32
}

// Model is a parsed model ready to be attached to the scene.
type Model struct {
	Root     string
	Geometry *scenegraph.ModelGeometry
}

// Result is delivered on the completion channel for every Load call.
// Exactly one of Model and Err is set.
type Result struct {
	Request Request
	Model   *Model
	Err     error
}

// Loader parses glTF models in the background and reports completions on one channel.
// There is no retry and no timeout: a failed load is reported once and never again.
type Loader struct {
	root string
	log  *logger.Logger
	sem  *semaphore.Weighted
	done chan Result
	open func(path string) (*gltf.Document, error)
}

// NewLoader returns a loader resolving paths against root.
func NewLoader(root string, log *logger.Logger) *Loader {
	return NewLoaderWith(root, log, gltf.Open)
}

// NewLoaderWith returns a loader that reads documents through open.
func NewLoaderWith(root string, log *logger.Logger, open func(path string) (*gltf.Document, error)) *Loader {
	return &Loader{
		root: root,
		log:  log,
		sem:  semaphore.NewWeighted(maxParallelLoads),
		done: make(chan Result, completedBuffer),
		open: open,
	}
}

// Completed is the channel that receives one Result per Load.
func (l *Loader) Completed() <-chan Result {
	return l.done
}

// Load starts an asynchronous load. The result arrives on Completed unless ctx
// is cancelled first, in which case it is dropped.
func (l *Loader) Load(ctx context.Context, req Request) {
	go func() {
		res := Result{Request: req}
		res.Model, res.Err = l.load(ctx, req)
		if res.Err != nil && l.log != nil {
			l.log.Errorf("%v", res.Err)
		}
		select {
		case l.done <- res:
		case <-ctx.Done():
		}
	}()
}

func (l *Loader) load(ctx context.Context, req Request) (*Model, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrapf(err, "load %s", req.Name)
	}
	defer l.sem.Release(1)

	path := filepath.Join(l.root, req.Path)
	doc, err := l.open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s from %s", req.Name, path)
	}
	m, err := describe(doc, path, req.WholeScene)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", req.Name)
	}
	return m, nil
}

// Drain applies every completion already waiting without blocking and returns how many it handled.
func (l *Loader) Drain(apply func(Result)) int {
	n := 0
	for {
		select {
		case res := <-l.done:
			apply(res)
			n++
		default:
			return n
		}
	}
}

// Attach places a successfully loaded model into its container: a mesh named after the
// model root, positioned, scaled and rotated per the request, with shadow casting on
// for every mesh of the sub-tree. Failed results attach nothing and return nil.
// The container may already be detached from the scene; the model is attached anyway.
// A whole-scene model takes the request name so it can be looked up later.
func Attach(res Result) *scenegraph.Mesh {
	if res.Err != nil || res.Model == nil || res.Request.Container == nil {
		return nil
	}
	req := res.Request
	name := res.Model.Root
	if req.WholeScene && req.Name != "" {
		name = req.Name
	}
	mesh := scenegraph.NewMesh(name, res.Model.Geometry, scenegraph.Material{})
	mesh.Position = req.Position
	mesh.Rotation = req.Rotation
	scale := req.Scale
	if scale == 0 {
		scale = 1
	}
	mesh.SetScalar(scale)
	scenegraph.EnableCastShadow(mesh)
	req.Container.Add(mesh)
	return mesh
}

// Package trees keeps the named, countable set of trees the user adds and removes at runtime.
package trees

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"winter-scene/internal/assets"
	"winter-scene/internal/scenegraph"
)

const (
	ModelPath    = "models/tree/scene.gltf"
	DefaultScale = 0.6
	modelOffsetY = -1
)

// Loader is the part of assets.Loader the registry needs.
type Loader interface {
	Load(ctx context.Context, req assets.Request)
}

// Registry adds trees at random spots and removes them newest first.
// Names are tree-1, tree-2, ... and never reused.
type Registry struct {
	ctx    context.Context
	scene  *scenegraph.Scene
	loader Loader
	rnd    func() float32

	// Scale is applied to every tree model loaded after it is set.
	Scale float32

	nextID int
	live   []string
}

// New returns an empty registry. rnd supplies uniform values in [0,1); nil uses math/rand.
func New(ctx context.Context, s *scenegraph.Scene, loader Loader, rnd func() float32) *Registry {
	if rnd == nil {
		rnd = rand.Float32
	}
	return &Registry{ctx: ctx, scene: s, loader: loader, rnd: rnd, Scale: DefaultScale}
}

// Add creates the next tree group, adds it to the scene and starts loading its model.
// The group is in the scene before the model arrives.
func (r *Registry) Add() string {
	r.nextID++
	name := fmt.Sprintf("tree-%d", r.nextID)

	g := scenegraph.NewGroup(name)
	g.Position = mgl32.Vec3{
		-20 + math32.Round(r.rnd()*40),
		0,
		-17.5 + math32.Round(r.rnd()*35),
	}
	r.scene.Add(g)
	r.live = append(r.live, name)

	if r.loader != nil {
		r.loader.Load(r.ctx, assets.Request{
			Name:      name,
			Path:      ModelPath,
			Container: g,
			Position:  mgl32.Vec3{0, modelOffsetY, 0},
			Scale:     r.Scale,
		})
	}
	return name
}

// RemoveLast removes the most recently added tree that is still live.
// With no trees it does nothing and reports false.
func (r *Registry) RemoveLast() bool {
	if len(r.live) == 0 {
		return false
	}
	name := r.live[len(r.live)-1]
	r.live = r.live[:len(r.live)-1]
	if n := r.scene.ObjectByName(name); n != nil {
		if p := scenegraph.ObjectOf(n).Parent(); p != nil {
			scenegraph.ObjectOf(p).Remove(n)
		}
	}
	return true
}

// Count is the number of live trees.
func (r *Registry) Count() int { return len(r.live) }

// Names lists live trees, oldest first.
func (r *Registry) Names() []string {
	return append([]string(nil), r.live...)
}

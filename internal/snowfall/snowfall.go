// Package snowfall animates a fixed set of snowflake planes with one repeating tween.
package snowfall

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"winter-scene/internal/anim"
	"winter-scene/internal/scenegraph"
)

const (
	FlakeName    = "flake"
	FlakeTexture = "textures/flake.png"

	startHeight = 5
	fallFrom    = 10
	fallTo      = -10
	fallSeconds = 10

	// Per-flake spacing: flake k sits k*heightStep above the fall value and spins k*spinStep per update.
	heightStep = 0.5
	spinStep   = 0.001
)

// Snowfall owns the flakes in creation order. Updates iterate the slice directly.
type Snowfall struct {
	flakes []*scenegraph.Mesh
	tween  *anim.Tween
}

// New creates count flakes, adds them to s, and registers the infinite fall tween with driver.
// rnd supplies uniform values in [0,1); nil uses math/rand.
func New(s *scenegraph.Scene, driver *anim.Driver, count int, rnd func() float32) *Snowfall {
	if rnd == nil {
		rnd = rand.Float32
	}
	sf := &Snowfall{}
	for range count {
		sf.flakes = append(sf.flakes, newFlake(rnd))
	}
	for _, f := range sf.flakes {
		s.Add(f)
	}
	sf.tween = anim.NewTween(fallFrom, fallTo, fallSeconds).
		Easing(anim.Linear).
		Repeat(anim.Infinite).
		OnUpdate(sf.apply).
		Start()
	if driver != nil {
		driver.Tweens.Add(sf.tween)
	}
	return sf
}

func newFlake(rnd func() float32) *scenegraph.Mesh {
	geo := scenegraph.NewPlaneGeometry(1, 1, 1, 1)
	geo.Upright = true
	m := scenegraph.NewMesh(FlakeName, geo, scenegraph.Material{
		Texture:     FlakeTexture,
		Color:       [4]float32{1, 1, 1, 1},
		Transparent: true,
		DoubleSided: true,
	})
	m.ReceiveShadow = true
	m.Position = mgl32.Vec3{
		-20 + math32.Round(rnd()*40),
		startHeight,
		-17.5 + math32.Round(rnd()*35),
	}
	return m
}

// apply places every flake relative to the shared fall value.
func (sf *Snowfall) apply(fall float32) {
	for i, f := range sf.flakes {
		k := float32(i + 1)
		f.Position[1] = fall + k*heightStep
		f.Rotation[0] += spinStep * k
		f.Rotation[1] += spinStep * k
		f.Rotation[2] += spinStep * k
	}
}

// Flakes returns the flakes in creation order.
func (sf *Snowfall) Flakes() []*scenegraph.Mesh { return sf.flakes }

// Tween is the fall tween shared by all flakes.
func (sf *Snowfall) Tween() *anim.Tween { return sf.tween }

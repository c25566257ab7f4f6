package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera. Fov is the vertical field of view in degrees.
// The view direction is always towards Target with +Y up.
type Camera struct {
	Object
	Fov    float32
	Aspect float32
	Near   float32
	Far    float32
	Target mgl32.Vec3

	projection mgl32.Mat4
}

// NewPerspectiveCamera returns a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float32) *Camera {
	c := &Camera{Fov: fov, Aspect: aspect, Near: near, Far: far, Target: mgl32.Vec3{0, 0, -1}}
	c.init(c, "camera")
	c.UpdateProjectionMatrix()
	return c
}

func (c *Camera) Accept(v Visitor) { v.VisitCamera(c) }

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	c.Target = target
}

// SetAspect changes the aspect ratio and recomputes the projection.
func (c *Camera) SetAspect(aspect float32) {
	c.Aspect = aspect
	c.UpdateProjectionMatrix()
}

// UpdateProjectionMatrix must be called after changing Fov, Aspect, Near or Far.
func (c *Camera) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the cached projection.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.WorldPosition(), c.Target, mgl32.Vec3{0, 1, 0})
}

// Project maps a world point to normalized device coordinates.
func (c *Camera) Project(p mgl32.Vec3) mgl32.Vec3 {
	clip := c.projection.Mul4(c.ViewMatrix()).Mul4x1(p.Vec4(1))
	if clip.W() == 0 {
		return mgl32.Vec3{}
	}
	return clip.Vec3().Mul(1 / clip.W())
}

// Unproject maps normalized device coordinates back to a world point.
func (c *Camera) Unproject(ndc mgl32.Vec3) mgl32.Vec3 {
	inv := c.projection.Mul4(c.ViewMatrix()).Inv()
	p := inv.Mul4x1(ndc.Vec4(1))
	if p.W() == 0 {
		return mgl32.Vec3{}
	}
	return p.Vec3().Mul(1 / p.W())
}

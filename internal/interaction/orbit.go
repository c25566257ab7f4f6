package interaction

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"winter-scene/internal/scenegraph"
)

const (
	minDistance = 2
	maxDistance = 200
	// Keep the camera just short of the poles so LookAt stays defined.
	maxPitch = 89
)

// OrbitControls orbits the camera around Target. Pitch and Yaw are in degrees.
type OrbitControls struct {
	Target   mgl32.Vec3
	Distance float32
	Pitch    float32
	Yaw      float32
	Enabled  bool

	// Degrees per pixel of pointer motion and distance factor per wheel step.
	RotateSpeed float32
	ZoomSpeed   float32
}

// NewOrbitControls derives the orbit from the camera's current position and target.
func NewOrbitControls(cam *scenegraph.Camera) *OrbitControls {
	o := &OrbitControls{
		Target:      cam.Target,
		Enabled:     true,
		RotateSpeed: 0.3,
		ZoomSpeed:   0.1,
	}
	off := cam.Position.Sub(cam.Target)
	o.Distance = off.Len()
	if o.Distance > 0 {
		o.Pitch = mgl32.RadToDeg(math32.Asin(off.Y() / o.Distance))
		o.Yaw = mgl32.RadToDeg(math32.Atan2(off.X(), off.Z()))
	}
	return o
}

// SetEnabled turns pointer control on or off.
func (o *OrbitControls) SetEnabled(enabled bool) { o.Enabled = enabled }

// Position is the camera position implied by the orbit.
func (o *OrbitControls) Position() mgl32.Vec3 {
	p := mgl32.DegToRad(o.Pitch)
	y := mgl32.DegToRad(o.Yaw)
	return mgl32.Vec3{
		o.Distance * math32.Cos(p) * math32.Sin(y),
		o.Distance * math32.Sin(p),
		o.Distance * math32.Cos(p) * math32.Cos(y),
	}.Add(o.Target)
}

// Rotate applies a pointer drag of (dx, dy) pixels. Ignored while disabled.
func (o *OrbitControls) Rotate(dx, dy float32) {
	if !o.Enabled {
		return
	}
	o.Yaw -= dx * o.RotateSpeed
	o.Pitch = mgl32.Clamp(o.Pitch+dy*o.RotateSpeed, -maxPitch, maxPitch)
}

// Zoom moves towards the target for positive steps. Ignored while disabled.
func (o *OrbitControls) Zoom(steps float32) {
	if !o.Enabled || steps == 0 {
		return
	}
	o.Distance = mgl32.Clamp(o.Distance*(1-steps*o.ZoomSpeed), minDistance, maxDistance)
}

// Apply writes the orbit into the camera.
func (o *OrbitControls) Apply(cam *scenegraph.Camera) {
	cam.Position = o.Position()
	cam.LookAt(o.Target)
}

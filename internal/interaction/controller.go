// Package interaction turns pointer input into picking and dragging of the ball.
package interaction

import (
	"github.com/go-gl/mathgl/mgl32"

	"winter-scene/internal/scenegraph"
)

// DraggableName is the only node name that can be picked up.
const DraggableName = "ball"

// State is the drag state.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// CameraControl is suspended while something is being dragged.
type CameraControl interface {
	SetEnabled(enabled bool)
}

// Controller is the two-state drag machine. All methods run on the render goroutine.
type Controller struct {
	scene    *scenegraph.Scene
	camera   *scenegraph.Camera
	ground   scenegraph.Node
	controls CameraControl
	ray      *scenegraph.Raycaster

	state   State
	dragged scenegraph.Node
}

// New returns an idle controller. ground is the only surface drags project onto.
func New(s *scenegraph.Scene, cam *scenegraph.Camera, ground scenegraph.Node, controls CameraControl) *Controller {
	return &Controller{
		scene:    s,
		camera:   cam,
		ground:   ground,
		controls: controls,
		ray:      scenegraph.NewRaycaster(),
	}
}

// State reports whether a drag is in progress.
func (c *Controller) State() State { return c.state }

// Dragged is the node being dragged, or nil.
func (c *Controller) Dragged() scenegraph.Node { return c.dragged }

// PointerDown starts a drag when the nearest object under ndc is the ball.
// It reports whether a drag started.
func (c *Controller) PointerDown(ndc mgl32.Vec2) bool {
	c.ray.SetFromCamera(ndc, c.camera)
	hits := c.ray.IntersectObjects(c.scene.Children())
	if len(hits) == 0 || hits[0].Object.Name != DraggableName {
		return false
	}
	c.state = Dragging
	c.dragged = hits[0].Object
	if c.controls != nil {
		c.controls.SetEnabled(false)
	}
	return true
}

// PointerMove moves the dragged node to the ground point under ndc.
// Outside a drag, or when the ray misses the ground, nothing changes.
func (c *Controller) PointerMove(ndc mgl32.Vec2) bool {
	if c.state != Dragging || c.dragged == nil || c.ground == nil {
		return false
	}
	c.ray.SetFromCamera(ndc, c.camera)
	hits := c.ray.IntersectObject(c.ground, false)
	if len(hits) == 0 {
		return false
	}
	obj := scenegraph.ObjectOf(c.dragged)
	obj.Position = hits[0].Point
	return true
}

// PointerUp always ends the drag and re-enables camera controls.
func (c *Controller) PointerUp() {
	c.state = Idle
	c.dragged = nil
	if c.controls != nil {
		c.controls.SetEnabled(true)
	}
}

// ToNDC maps window pixel coordinates to normalized device coordinates.
func ToNDC(x, y, width, height float32) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{x/width*2 - 1, -(y/height)*2 + 1}
}

package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is one of the closed set of scene graph variants: *Group, *Mesh, *Light, *Camera.
// The unexported object method keeps the set closed to this package.
type Node interface {
	object() *Object
	Accept(v Visitor)
}

// Object holds the state shared by every node variant: name, local transform,
// visibility and shadow flags, plus the parent/children links.
// Rotation is Euler XYZ in radians.
type Object struct {
	Name          string
	Position      mgl32.Vec3
	Rotation      mgl32.Vec3
	Scale         mgl32.Vec3
	Visible       bool
	CastShadow    bool
	ReceiveShadow bool

	self     Node
	parent   Node
	children []Node
}

func (o *Object) object() *Object { return o }

func (o *Object) init(self Node, name string) {
	o.self = self
	o.Name = name
	o.Scale = mgl32.Vec3{1, 1, 1}
	o.Visible = true
}

// Parent returns the node this one is attached to, or nil.
func (o *Object) Parent() Node { return o.parent }

// Children returns the attached children in insertion order. The slice must not be modified.
func (o *Object) Children() []Node { return o.children }

// Add attaches children, detaching each from its previous parent first.
func (o *Object) Add(children ...Node) {
	for _, c := range children {
		if c == nil || c == o.self {
			continue
		}
		co := c.object()
		if co.parent != nil {
			co.parent.object().Remove(c)
		}
		co.parent = o.self
		o.children = append(o.children, c)
	}
}

// Remove detaches the given children. Nodes that are not children are ignored.
func (o *Object) Remove(children ...Node) {
	for _, c := range children {
		for i, cur := range o.children {
			if cur == c {
				o.children = append(o.children[:i], o.children[i+1:]...)
				c.object().parent = nil
				break
			}
		}
	}
}

// SetPosition sets the local position.
func (o *Object) SetPosition(x, y, z float32) {
	o.Position = mgl32.Vec3{x, y, z}
}

// SetScalar sets a uniform local scale.
func (o *Object) SetScalar(s float32) {
	o.Scale = mgl32.Vec3{s, s, s}
}

// LocalMatrix composes translation, XYZ rotation and scale.
func (o *Object) LocalMatrix() mgl32.Mat4 {
	rot := mgl32.HomogRotate3DX(o.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation.Z()))
	return mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z()).
		Mul4(rot).
		Mul4(mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z()))
}

// WorldMatrix walks the parent chain. Scene graphs here are shallow, so nothing is cached.
func (o *Object) WorldMatrix() mgl32.Mat4 {
	m := o.LocalMatrix()
	for p := o.parent; p != nil; p = p.object().parent {
		m = p.object().LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the origin of the node in world space.
func (o *Object) WorldPosition() mgl32.Vec3 {
	return o.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// visibleInWorld reports whether this node and all its ancestors are visible.
func (o *Object) visibleInWorld() bool {
	if !o.Visible {
		return false
	}
	for p := o.parent; p != nil; p = p.object().parent {
		if !p.object().Visible {
			return false
		}
	}
	return true
}

// Group is a pure transform container.
type Group struct {
	Object
}

// NewGroup returns an empty visible group.
func NewGroup(name string) *Group {
	g := &Group{}
	g.init(g, name)
	return g
}

func (g *Group) Accept(v Visitor) { v.VisitGroup(g) }

// Material describes how a mesh is shaded. Texture is a path relative to the asset root.
type Material struct {
	Texture     string
	Repeat      [2]float32
	Color       [4]float32
	Transparent bool
	DoubleSided bool
}

// Mesh is a node with geometry.
type Mesh struct {
	Object
	Geometry Geometry
	Material Material
}

// NewMesh returns a visible mesh with a white material.
func NewMesh(name string, geo Geometry, mat Material) *Mesh {
	if mat.Color == [4]float32{} {
		mat.Color = [4]float32{1, 1, 1, 1}
	}
	m := &Mesh{Geometry: geo, Material: mat}
	m.init(m, name)
	return m
}

func (m *Mesh) Accept(v Visitor) { v.VisitMesh(m) }

// LightKind selects the lighting model of a Light.
type LightKind int

const (
	AmbientLight LightKind = iota
	SpotLight
)

// Light is a light source. Spot fields are ignored for ambient lights.
type Light struct {
	Object
	Kind      LightKind
	Color     [3]float32
	Intensity float32

	Distance      float32
	Angle         float32
	Penumbra      float32
	Decay         float32
	ShadowMapSize [2]int
	Target        mgl32.Vec3
}

// NewAmbientLight returns an ambient fill light.
func NewAmbientLight(name string, color [3]float32, intensity float32) *Light {
	l := &Light{Kind: AmbientLight, Color: color, Intensity: intensity}
	l.init(l, name)
	return l
}

// NewSpotLight returns a spot light aimed at the origin with a 512×512 shadow map.
func NewSpotLight(name string, color [3]float32, intensity float32) *Light {
	l := &Light{Kind: SpotLight, Color: color, Intensity: intensity, ShadowMapSize: [2]int{512, 512}}
	l.init(l, name)
	return l
}

func (l *Light) Accept(v Visitor) { v.VisitLight(l) }

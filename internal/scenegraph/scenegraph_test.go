package scenegraph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRemoveReparent(t *testing.T) {
	s := NewScene()
	a := NewGroup("a")
	b := NewGroup("b")
	s.Add(a, b)
	child := NewMesh("child", &SphereGeometry{Radius: 1}, Material{})
	a.Add(child)
	assert.Equal(t, Node(a), child.Parent())

	b.Add(child)
	assert.Empty(t, a.Children())
	assert.Equal(t, Node(b), child.Parent())

	s.Remove(b)
	assert.Len(t, s.Children(), 1)
	assert.Nil(t, b.Parent())
	assert.Nil(t, s.ObjectByName("child"))
	s.Remove(nil)
}

func TestObjectByNameDepthFirst(t *testing.T) {
	s := NewScene()
	outer := NewGroup("outer")
	inner := NewGroup("dup")
	outer.Add(inner)
	later := NewGroup("dup")
	s.Add(outer, later)
	assert.Same(t, inner, s.ObjectByName("dup"))
	assert.Nil(t, s.ObjectByName("missing"))
}

func TestWalkVisitsVariantsInOrder(t *testing.T) {
	s := NewScene()
	g := NewGroup("g")
	m := NewMesh("m", &SphereGeometry{Radius: 1}, Material{})
	l := NewAmbientLight("l", [3]float32{1, 1, 1}, 0.2)
	c := NewPerspectiveCamera(45, 1, 0.1, 100)
	g.Add(m, l)
	s.Add(g, c)

	var order []string
	s.Walk(Funcs{
		Group:  func(g *Group) { order = append(order, "group:"+g.Name) },
		Mesh:   func(m *Mesh) { order = append(order, "mesh:"+m.Name) },
		Light:  func(l *Light) { order = append(order, "light:"+l.Name) },
		Camera: func(c *Camera) { order = append(order, "camera:"+c.Name) },
	})
	assert.Equal(t, []string{"group:scene", "group:g", "mesh:m", "light:l", "camera:camera"}, order)
}

func TestEnableCastShadowOnlyTouchesMeshes(t *testing.T) {
	root := NewGroup("root")
	m1 := NewMesh("m1", &SphereGeometry{Radius: 1}, Material{})
	sub := NewGroup("sub")
	m2 := NewMesh("m2", &SphereGeometry{Radius: 1}, Material{})
	sub.Add(m2)
	root.Add(m1, sub)

	EnableCastShadow(root)
	assert.True(t, m1.CastShadow)
	assert.True(t, m2.CastShadow)
	assert.False(t, root.CastShadow)
	assert.False(t, sub.CastShadow)
}

func TestWorldMatrixFollowsParents(t *testing.T) {
	parent := NewGroup("p")
	parent.SetPosition(1, 2, 3)
	parent.SetScalar(2)
	child := NewGroup("c")
	child.SetPosition(1, 0, 0)
	parent.Add(child)

	got := child.WorldPosition()
	assert.InDelta(t, 3, got.X(), 1e-5)
	assert.InDelta(t, 2, got.Y(), 1e-5)
	assert.InDelta(t, 3, got.Z(), 1e-5)
}

func lookingDown() *Camera {
	cam := NewPerspectiveCamera(45, 1, 0.1, 500)
	cam.SetPosition(0, 20, 0.001)
	cam.LookAt(mgl32.Vec3{0, 0, 0})
	return cam
}

func TestRaycastNearestFirst(t *testing.T) {
	s := NewScene()
	near := NewMesh("near", &SphereGeometry{Radius: 1}, Material{})
	near.SetPosition(0, 5, 0)
	far := NewMesh("far", &SphereGeometry{Radius: 1}, Material{})
	far.SetPosition(0, 1, 0)
	s.Add(far, near)

	rc := NewRaycaster()
	rc.SetFromCamera(mgl32.Vec2{0, 0}, lookingDown())
	hits := rc.IntersectObjects(s.Children())
	require.Len(t, hits, 2)
	assert.Same(t, near, hits[0].Object)
	assert.InDelta(t, 14, hits[0].Distance, 1e-2)
	assert.Same(t, far, hits[1].Object)
}

func TestRaycastSkipsHidden(t *testing.T) {
	g := NewGroup("hidden")
	g.Visible = false
	m := NewMesh("m", &SphereGeometry{Radius: 1}, Material{})
	g.Add(m)

	rc := NewRaycaster()
	rc.SetFromCamera(mgl32.Vec2{0, 0}, lookingDown())
	assert.Empty(t, rc.IntersectObject(g, true))
}

func TestRaycastPlaneHitsHeight(t *testing.T) {
	geo := NewPlaneGeometry(10, 10, 2, 2)
	for i := range geo.Heights {
		geo.Heights[i] = 0.5
	}
	ground := NewMesh("ground", geo, Material{})

	rc := NewRaycaster()
	rc.Ray = Ray{Origin: mgl32.Vec3{2, 10, 3}, Direction: mgl32.Vec3{0, -1, 0}}
	hits := rc.IntersectObject(ground, false)
	require.Len(t, hits, 1)
	assert.InDelta(t, 2, hits[0].Point.X(), 1e-5)
	assert.InDelta(t, 0.5, hits[0].Point.Y(), 1e-5)
	assert.InDelta(t, 3, hits[0].Point.Z(), 1e-5)

	rc.Ray.Origin = mgl32.Vec3{20, 10, 0}
	assert.Empty(t, rc.IntersectObject(ground, false))
}

func TestRaycastModelBounds(t *testing.T) {
	geo := &ModelGeometry{Bounds: Box{Min: mgl32.Vec3{-1, 0, -1}, Max: mgl32.Vec3{1, 2, 1}}}
	m := NewMesh("house", geo, Material{})
	m.SetPosition(5, 0, 0)
	m.SetScalar(2)

	rc := NewRaycaster()
	rc.Ray = Ray{Origin: mgl32.Vec3{5, 10, 0}, Direction: mgl32.Vec3{0, -1, 0}}
	hits := rc.IntersectObject(m, false)
	require.Len(t, hits, 1)
	assert.InDelta(t, 6, hits[0].Distance, 1e-5)

	empty := NewMesh("pending", &ModelGeometry{Bounds: EmptyBox()}, Material{})
	assert.Empty(t, rc.IntersectObject(empty, false))
}

func TestCameraProjectUnprojectRoundTrip(t *testing.T) {
	cam := NewPerspectiveCamera(45, 16.0/9.0, 0.1, 500)
	cam.SetPosition(5, 5, 25)
	cam.LookAt(mgl32.Vec3{})
	p := mgl32.Vec3{2, 0, 3}
	ndc := cam.Project(p)
	back := cam.Unproject(ndc)
	assert.InDelta(t, p.X(), back.X(), 1e-2)
	assert.InDelta(t, p.Y(), back.Y(), 1e-2)
	assert.InDelta(t, p.Z(), back.Z(), 1e-2)
}

func TestCameraSetAspect(t *testing.T) {
	cam := NewPerspectiveCamera(45, 1, 0.1, 500)
	before := cam.ProjectionMatrix()
	cam.SetAspect(2)
	assert.Equal(t, float32(2), cam.Aspect)
	assert.NotEqual(t, before, cam.ProjectionMatrix())
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 2, 0.1, 500), cam.ProjectionMatrix())
}

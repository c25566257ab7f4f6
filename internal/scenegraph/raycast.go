package scenegraph

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const rayEpsilon = 1e-6

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Intersection is a single ray hit.
type Intersection struct {
	Distance float32
	Point    mgl32.Vec3
	Object   *Mesh
}

// Raycaster finds meshes under a ray. Hidden sub-trees are skipped.
type Raycaster struct {
	Ray  Ray
	Near float32
	Far  float32
}

// NewRaycaster returns a raycaster with an unbounded far distance.
func NewRaycaster() *Raycaster {
	return &Raycaster{Far: math32.Inf(1)}
}

// SetFromCamera points the ray from the camera through the given normalized
// device coordinates (x and y in [-1, 1], y up).
func (rc *Raycaster) SetFromCamera(ndc mgl32.Vec2, cam *Camera) {
	origin := cam.WorldPosition()
	through := cam.Unproject(mgl32.Vec3{ndc.X(), ndc.Y(), 0.5})
	dir := through.Sub(origin)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	rc.Ray = Ray{Origin: origin, Direction: dir}
}

// IntersectObject tests n and, when recursive, its descendants.
// Results are sorted nearest first.
func (rc *Raycaster) IntersectObject(n Node, recursive bool) []Intersection {
	var hits []Intersection
	rc.collect(n, recursive, &hits)
	sortHits(hits)
	return hits
}

// IntersectObjects tests every node in nodes and their descendants.
func (rc *Raycaster) IntersectObjects(nodes []Node) []Intersection {
	var hits []Intersection
	for _, n := range nodes {
		rc.collect(n, true, &hits)
	}
	sortHits(hits)
	return hits
}

func sortHits(hits []Intersection) {
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
}

func (rc *Raycaster) collect(n Node, recursive bool, hits *[]Intersection) {
	if n == nil || !n.object().visibleInWorld() {
		return
	}
	if m, ok := n.(*Mesh); ok {
		if t, ok := rc.intersectMesh(m); ok && t >= rc.Near && t <= rc.Far {
			*hits = append(*hits, Intersection{Distance: t, Point: rc.Ray.At(t), Object: m})
		}
	}
	if !recursive {
		return
	}
	for _, c := range n.object().children {
		rc.collect(c, true, hits)
	}
}

func (rc *Raycaster) intersectMesh(m *Mesh) (float32, bool) {
	world := m.WorldMatrix()
	switch g := m.Geometry.(type) {
	case *SphereGeometry:
		center := world.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
		sx := world.Col(0).Vec3().Len()
		sy := world.Col(1).Vec3().Len()
		sz := world.Col(2).Vec3().Len()
		scale := math32.Max(sx, math32.Max(sy, sz))
		return raySphere(rc.Ray, center, g.Radius*scale)
	case *PlaneGeometry:
		best, found := float32(0), false
		g.Triangles(func(a, b, c mgl32.Vec3) {
			wa := world.Mul4x1(a.Vec4(1)).Vec3()
			wb := world.Mul4x1(b.Vec4(1)).Vec3()
			wc := world.Mul4x1(c.Vec4(1)).Vec3()
			if t, ok := rayTriangle(rc.Ray, wa, wb, wc); ok && (!found || t < best) {
				best, found = t, true
			}
		})
		return best, found
	case *ModelGeometry:
		if g.Bounds.Empty() {
			return 0, false
		}
		return rayBox(rc.Ray, g.Bounds.Transform(world))
	}
	return 0, false
}

func raySphere(r Ray, center mgl32.Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// rayTriangle is Möller–Trumbore, two-sided.
func rayTriangle(r Ray, a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

func rayBox(r Ray, b Box) (float32, bool) {
	tmin, tmax := float32(0), math32.Inf(1)
	for i := 0; i < 3; i++ {
		d := r.Direction[i]
		if math32.Abs(d) < rayEpsilon {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		t1 := (b.Min[i] - r.Origin[i]) / d
		t2 := (b.Max[i] - r.Origin[i]) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

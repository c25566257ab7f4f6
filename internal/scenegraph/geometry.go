package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is one of *SphereGeometry, *PlaneGeometry, *ModelGeometry.
type Geometry interface {
	geometry()
}

// SphereGeometry is a UV sphere centred on the local origin.
type SphereGeometry struct {
	Radius   float32
	Segments int
}

func (*SphereGeometry) geometry() {}

// PlaneGeometry is a grid of (SegmentsX+1)×(SegmentsZ+1) vertices lying on the local
// XZ plane, centred on the origin, with a per-vertex height along Y.
// Heights are stored row by row: index = z*(SegmentsX+1) + x.
type PlaneGeometry struct {
	Width     float32
	Depth     float32
	SegmentsX int
	SegmentsZ int
	Heights   []float32
	// Upright stands the plane on the local XY plane (facing +Z) instead of lying flat.
	Upright bool
}

func (*PlaneGeometry) geometry() {}

// NewPlaneGeometry returns a flat plane with zeroed heights.
func NewPlaneGeometry(width, depth float32, segX, segZ int) *PlaneGeometry {
	if segX < 1 {
		segX = 1
	}
	if segZ < 1 {
		segZ = 1
	}
	return &PlaneGeometry{
		Width:     width,
		Depth:     depth,
		SegmentsX: segX,
		SegmentsZ: segZ,
		Heights:   make([]float32, (segX+1)*(segZ+1)),
	}
}

// Columns is the number of vertices along X.
func (p *PlaneGeometry) Columns() int { return p.SegmentsX + 1 }

// Rows is the number of vertices along Z.
func (p *PlaneGeometry) Rows() int { return p.SegmentsZ + 1 }

// Vertex returns the local position of grid vertex (x, z).
func (p *PlaneGeometry) Vertex(x, z int) mgl32.Vec3 {
	fx := -p.Width/2 + float32(x)*p.Width/float32(p.SegmentsX)
	fz := -p.Depth/2 + float32(z)*p.Depth/float32(p.SegmentsZ)
	h := p.Heights[z*p.Columns()+x]
	if p.Upright {
		return mgl32.Vec3{fx, -fz, h}
	}
	return mgl32.Vec3{fx, h, fz}
}

// Triangles calls fn for the two triangles of every grid cell, in local space.
func (p *PlaneGeometry) Triangles(fn func(a, b, c mgl32.Vec3)) {
	for z := 0; z < p.SegmentsZ; z++ {
		for x := 0; x < p.SegmentsX; x++ {
			v00 := p.Vertex(x, z)
			v10 := p.Vertex(x+1, z)
			v01 := p.Vertex(x, z+1)
			v11 := p.Vertex(x+1, z+1)
			fn(v00, v01, v10)
			fn(v10, v01, v11)
		}
	}
}

// MaxHeight returns the largest vertex height.
func (p *PlaneGeometry) MaxHeight() float32 {
	var m float32
	for _, h := range p.Heights {
		if h > m {
			m = h
		}
	}
	return m
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max mgl32.Vec3
}

// Empty reports whether the box has no volume on any axis.
func (b Box) Empty() bool {
	return b.Max.X() < b.Min.X() || b.Max.Y() < b.Min.Y() || b.Max.Z() < b.Min.Z()
}

// Expand grows the box to contain p.
func (b Box) Expand(p mgl32.Vec3) Box {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// Transform returns the axis-aligned box that contains the eight transformed corners.
func (b Box) Transform(m mgl32.Mat4) Box {
	out := EmptyBox()
	for i := 0; i < 8; i++ {
		c := mgl32.Vec3{b.Min.X(), b.Min.Y(), b.Min.Z()}
		if i&1 != 0 {
			c[0] = b.Max.X()
		}
		if i&2 != 0 {
			c[1] = b.Max.Y()
		}
		if i&4 != 0 {
			c[2] = b.Max.Z()
		}
		out = out.Expand(m.Mul4x1(c.Vec4(1)).Vec3())
	}
	return out
}

// EmptyBox returns an inverted box ready for Expand.
func EmptyBox() Box {
	const inf = float32(3.4e38)
	return Box{Min: mgl32.Vec3{inf, inf, inf}, Max: mgl32.Vec3{-inf, -inf, -inf}}
}

// Clip is one animation clip found in a model.
type Clip struct {
	Name     string
	Index    int
	Duration float32
}

// ModelGeometry refers to a loaded model file. Bounds are in the model's local space.
type ModelGeometry struct {
	Path   string
	Bounds Box
	Clips  []Clip
}

func (*ModelGeometry) geometry() {}

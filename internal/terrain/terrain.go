package terrain

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"winter-scene/internal/scenegraph"
)

// ReliefOptions controls the ground plane and its random height perturbation.
// Width/Depth are world units; SegmentsX/SegmentsZ the grid subdivisions.
// MaxHeight bounds the uniform displacement: each vertex gets a height in [0, MaxHeight).
// Rand, when set, replaces the global source and must return values in [0,1).
type ReliefOptions struct {
	Width     float32
	Depth     float32
	SegmentsX int
	SegmentsZ int
	MaxHeight float32
	Rand      func() float32
}

// DefaultReliefOptions returns the 50×50 ground with 15×15 segments and unit relief.
func DefaultReliefOptions() ReliefOptions {
	return ReliefOptions{
		Width:     50,
		Depth:     50,
		SegmentsX: 15,
		SegmentsZ: 15,
		MaxHeight: 1,
	}
}

// Generate builds a plane geometry whose vertices get an independent uniform random
// height, except the last row which stays at zero. There is no smoothing.
func Generate(opts ReliefOptions) *scenegraph.PlaneGeometry {
	if opts.Width <= 0 {
		opts.Width = 50
	}
	if opts.Depth <= 0 {
		opts.Depth = 50
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = 1
	}
	next := opts.Rand
	if next == nil {
		next = rand.Float32
	}

	geo := scenegraph.NewPlaneGeometry(opts.Width, opts.Depth, opts.SegmentsX, opts.SegmentsZ)
	cols := geo.Columns()
	lastRow := geo.Rows() - 1
	for z := 0; z < lastRow; z++ {
		for x := 0; x < cols; x++ {
			geo.Heights[z*cols+x] = next() * opts.MaxHeight
		}
	}
	return geo
}

// HeightAt returns the surface height under world (x, z) for a ground mesh placed at
// the origin, interpolating across the grid triangle that contains the point.
// Points outside the plane report ok == false.
func HeightAt(geo *scenegraph.PlaneGeometry, x, z float32) (h float32, ok bool) {
	fx := (x + geo.Width/2) / geo.Width * float32(geo.SegmentsX)
	fz := (z + geo.Depth/2) / geo.Depth * float32(geo.SegmentsZ)
	if fx < 0 || fz < 0 || fx > float32(geo.SegmentsX) || fz > float32(geo.SegmentsZ) {
		return 0, false
	}
	cx := int(math32.Min(math32.Floor(fx), float32(geo.SegmentsX-1)))
	cz := int(math32.Min(math32.Floor(fz), float32(geo.SegmentsZ-1)))
	tx := fx - float32(cx)
	tz := fz - float32(cz)

	cols := geo.Columns()
	h00 := geo.Heights[cz*cols+cx]
	h10 := geo.Heights[cz*cols+cx+1]
	h01 := geo.Heights[(cz+1)*cols+cx]
	h11 := geo.Heights[(cz+1)*cols+cx+1]
	// Same split as PlaneGeometry.Triangles: (v00, v01, v10) and (v10, v01, v11).
	if tx+tz <= 1 {
		return h00 + (h10-h00)*tx + (h01-h00)*tz, true
	}
	return h11 + (h01-h11)*(1-tx) + (h10-h11)*(1-tz), true
}

// Heightmap quantizes the heights to 8-bit grayscale, one byte per vertex in row order,
// scaled so that MaxHeight maps to 255. The renderer turns this into a GPU mesh.
func Heightmap(geo *scenegraph.PlaneGeometry, maxHeight float32) []uint8 {
	if maxHeight <= 0 {
		maxHeight = 1
	}
	out := make([]uint8, len(geo.Heights))
	for i, h := range geo.Heights {
		v := h / maxHeight
		if math32.IsNaN(v) || v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		out[i] = uint8(math32.Round(v * 255))
	}
	return out
}

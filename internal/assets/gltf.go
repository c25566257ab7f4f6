package assets

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"winter-scene/internal/scenegraph"
)

// describe resolves the model root of doc and computes its bounds and animation clips.
func describe(doc *gltf.Document, path string, wholeScene bool) (*Model, error) {
	if len(doc.Scenes) == 0 {
		return nil, fmt.Errorf("%s has no scenes", path)
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("%s: default scene %d out of range", path, sceneIdx)
	}
	scn := doc.Scenes[sceneIdx]
	if len(scn.Nodes) == 0 {
		return nil, fmt.Errorf("%s: scene %d is empty", path, sceneIdx)
	}

	roots := scn.Nodes
	name := scn.Name
	if !wholeScene {
		roots = scn.Nodes[:1]
		if int(roots[0]) >= len(doc.Nodes) {
			return nil, fmt.Errorf("%s: node %d out of range", path, roots[0])
		}
		name = doc.Nodes[roots[0]].Name
	}
	if name == "" {
		name = "model"
	}

	bounds := scenegraph.EmptyBox()
	for _, r := range roots {
		bounds = nodeBounds(doc, r, mgl32.Ident4(), bounds, 0)
	}
	return &Model{
		Root: name,
		Geometry: &scenegraph.ModelGeometry{
			Path:   path,
			Bounds: bounds,
			Clips:  clips(doc),
		},
	}, nil
}

// maxNodeDepth guards against cyclic node references in malformed files.
const maxNodeDepth = 64

func nodeBounds(doc *gltf.Document, idx uint32, parent mgl32.Mat4, box scenegraph.Box, depth int) scenegraph.Box {
	if int(idx) >= len(doc.Nodes) || depth > maxNodeDepth {
		return box
	}
	n := doc.Nodes[idx]
	world := parent.Mul4(nodeMatrix(n))
	if n.Mesh != nil && int(*n.Mesh) < len(doc.Meshes) {
		for _, p := range doc.Meshes[*n.Mesh].Primitives {
			acc, ok := p.Attributes["POSITION"]
			if !ok || int(acc) >= len(doc.Accessors) {
				continue
			}
			a := doc.Accessors[acc]
			if len(a.Min) < 3 || len(a.Max) < 3 {
				continue
			}
			local := scenegraph.Box{
				Min: mgl32.Vec3{float32(a.Min[0]), float32(a.Min[1]), float32(a.Min[2])},
				Max: mgl32.Vec3{float32(a.Max[0]), float32(a.Max[1]), float32(a.Max[2])},
			}
			w := local.Transform(world)
			box = box.Expand(w.Min).Expand(w.Max)
		}
	}
	for _, c := range n.Children {
		box = nodeBounds(doc, c, world, box, depth+1)
	}
	return box
}

// nodeMatrix is the local transform of n. An explicit matrix wins over TRS.
func nodeMatrix(n *gltf.Node) mgl32.Mat4 {
	if m := mgl32.Mat4(n.MatrixOrDefault()); m != mgl32.Ident4() {
		return m
	}
	tr := n.TranslationOrDefault()
	rot := n.RotationOrDefault()
	sc := n.ScaleOrDefault()
	r := mgl32.Ident4()
	if q := (mgl32.Quat{W: rot[3], V: mgl32.Vec3{rot[0], rot[1], rot[2]}}); q.Len() > 0 {
		r = q.Normalize().Mat4()
	}
	return mgl32.Translate3D(tr[0], tr[1], tr[2]).Mul4(r).Mul4(mgl32.Scale3D(sc[0], sc[1], sc[2]))
}

// clips lists the animations of doc; a clip lasts until its latest keyframe.
func clips(doc *gltf.Document) []scenegraph.Clip {
	var out []scenegraph.Clip
	for i, a := range doc.Animations {
		c := scenegraph.Clip{Name: a.Name, Index: i}
		for _, s := range a.Samplers {
			if s == nil || s.Input == nil || int(*s.Input) >= len(doc.Accessors) {
				continue
			}
			acc := doc.Accessors[*s.Input]
			if len(acc.Max) > 0 && float32(acc.Max[0]) > c.Duration {
				c.Duration = float32(acc.Max[0])
			}
		}
		out = append(out, c)
	}
	return out
}

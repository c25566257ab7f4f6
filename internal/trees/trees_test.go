package trees

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winter-scene/internal/assets"
	"winter-scene/internal/scenegraph"
)

type recordingLoader struct {
	requests []assets.Request
}

func (l *recordingLoader) Load(_ context.Context, req assets.Request) {
	l.requests = append(l.requests, req)
}

func newRegistry() (*Registry, *scenegraph.Scene, *recordingLoader) {
	s := scenegraph.NewScene()
	l := &recordingLoader{}
	return New(context.Background(), s, l, func() float32 { return 0.25 }), s, l
}

func TestAddThreeRemoveOne(t *testing.T) {
	r, s, _ := newRegistry()
	for range 3 {
		r.Add()
	}
	assert.Equal(t, 3, r.Count())
	for _, name := range []string{"tree-1", "tree-2", "tree-3"} {
		assert.NotNil(t, s.ObjectByName(name), name)
	}

	assert.True(t, r.RemoveLast())
	assert.Equal(t, 2, r.Count())
	assert.Nil(t, s.ObjectByName("tree-3"))
	assert.NotNil(t, s.ObjectByName("tree-2"))
}

func TestAddPlacesGroupAndRequestsModel(t *testing.T) {
	r, s, l := newRegistry()
	name := r.Add()
	assert.Equal(t, "tree-1", name)

	g, ok := s.ObjectByName(name).(*scenegraph.Group)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{-10, 0, -8.5}, g.Position)

	require.Len(t, l.requests, 1)
	req := l.requests[0]
	assert.Equal(t, ModelPath, req.Path)
	assert.Same(t, g, req.Container)
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, req.Position)
	assert.Equal(t, float32(0.6), req.Scale)
}

func TestRemoveLastOnEmptyIsNoop(t *testing.T) {
	r, s, _ := newRegistry()
	assert.False(t, r.RemoveLast())
	assert.Zero(t, r.Count())
	assert.Empty(t, s.Children())
}

func TestCountNeverNegative(t *testing.T) {
	r, _, _ := newRegistry()
	ops := []bool{true, false, false, true, true, false, false, false, true}
	want := 0
	for _, add := range ops {
		if add {
			r.Add()
			want++
		} else {
			r.RemoveLast()
			if want > 0 {
				want--
			}
		}
		assert.Equal(t, want, r.Count())
	}
}

func TestNamesAreNeverReused(t *testing.T) {
	r, s, _ := newRegistry()
	r.Add()
	r.Add()
	r.RemoveLast()
	assert.Equal(t, "tree-3", r.Add())
	assert.Equal(t, []string{"tree-1", "tree-3"}, r.Names())
	assert.Nil(t, s.ObjectByName("tree-2"))

	r.RemoveLast()
	assert.Nil(t, s.ObjectByName("tree-3"))
	assert.NotNil(t, s.ObjectByName("tree-1"))
}

func TestLateModelLandsInRemovedTree(t *testing.T) {
	r, s, l := newRegistry()
	r.Add()
	r.RemoveLast()

	mesh := assets.Attach(assets.Result{
		Request: l.requests[0],
		Model:   &assets.Model{Root: "Tree", Geometry: &scenegraph.ModelGeometry{}},
	})
	require.NotNil(t, mesh)
	assert.Nil(t, s.ObjectByName("Tree"))
}

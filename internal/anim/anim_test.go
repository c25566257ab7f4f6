package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winter-scene/internal/scenegraph"
)

func TestTweenLinear(t *testing.T) {
	var got []float32
	tw := NewTween(10, -10, 10).OnUpdate(func(v float32) { got = append(got, v) }).Start()

	assert.True(t, tw.Update(2.5))
	assert.True(t, tw.Update(2.5))
	assert.False(t, tw.Update(5))
	assert.False(t, tw.Running())
	assert.InDeltaSlice(t, []float32{5, 0, -10}, got, 1e-5)
}

func TestTweenRepeatsForever(t *testing.T) {
	tw := NewTween(10, -10, 10).Repeat(Infinite).Start()
	for range 25 {
		require.True(t, tw.Update(1))
	}
	// 25 s into a 10 s loop is 5 s into the third run.
	tw.Update(0)
	assert.InDelta(t, 0, tw.Value(), 1e-4)
	assert.True(t, tw.Running())
}

func TestTweenFiniteRepeat(t *testing.T) {
	tw := NewTween(0, 1, 1).Repeat(1).Start()
	assert.True(t, tw.Update(1))
	assert.False(t, tw.Update(1))
}

func TestTweenNotStarted(t *testing.T) {
	called := false
	tw := NewTween(0, 1, 1).OnUpdate(func(float32) { called = true })
	assert.False(t, tw.Update(0.5))
	assert.False(t, called)
	assert.Equal(t, float32(0), tw.Value())
}

func TestTweenCustomEasing(t *testing.T) {
	tw := NewTween(0, 100, 1).Easing(func(k float32) float32 { return k * k }).Start()
	tw.Update(0.5)
	assert.InDelta(t, 25, tw.Value(), 1e-4)
}

func TestGroupDropsFinished(t *testing.T) {
	var g Group
	g.Add(NewTween(0, 1, 1).Start(), NewTween(0, 1, 1).Repeat(Infinite).Start())
	g.Update(1)
	assert.Equal(t, 1, g.Len())
	g.Update(1)
	assert.Equal(t, 1, g.Len())
}

func TestMixerStretchesClip(t *testing.T) {
	m := NewMixer(nil, scenegraph.Clip{Name: "Walk", Duration: 2}).SetDuration(10).Play()
	m.Update(5)
	assert.InDelta(t, 1, m.Time(), 1e-5)
	assert.InDelta(t, 0.5, m.Progress(), 1e-5)
	assert.Equal(t, 30, m.Frame(60))

	m.Update(6)
	assert.InDelta(t, 0.2, m.Time(), 1e-5)
}

func TestMixerStoppedOrEmpty(t *testing.T) {
	m := NewMixer(nil, scenegraph.Clip{Duration: 2})
	m.Update(1)
	assert.Zero(t, m.Time())

	empty := NewMixer(nil, scenegraph.Clip{}).SetDuration(10).Play()
	empty.Update(1)
	assert.Zero(t, empty.Progress())
	assert.Zero(t, empty.Frame(0))
}

func TestClockDelta(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewClockWith(func() time.Time { return now })
	now = now.Add(250 * time.Millisecond)
	assert.InDelta(t, 0.25, c.Delta(), 1e-6)
	assert.Zero(t, c.Delta())
	now = now.Add(-time.Second)
	assert.Zero(t, c.Delta())
}

func TestDriverTicksMixersThenTweens(t *testing.T) {
	var d Driver
	m := NewMixer(nil, scenegraph.Clip{Duration: 10}).Play()
	d.AddMixer(m)

	var seen float32
	d.Tweens.Add(NewTween(0, 1, 1).Repeat(Infinite).OnUpdate(func(float32) {
		seen = m.Time()
	}).Start())

	d.Tick(0.5)
	assert.InDelta(t, 0.5, seen, 1e-6)
	assert.Len(t, d.Mixers(), 1)
}

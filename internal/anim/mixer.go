package anim

import (
	"time"

	"github.com/chewxy/math32"

	"winter-scene/internal/scenegraph"
)

// Mixer plays one looping clip on a model. The renderer reads Frame each frame.
type Mixer struct {
	Target *scenegraph.Mesh
	Clip   scenegraph.Clip

	timeScale float32
	time      float32
	playing   bool
}

// NewMixer returns a stopped mixer for clip on target.
func NewMixer(target *scenegraph.Mesh, clip scenegraph.Clip) *Mixer {
	return &Mixer{Target: target, Clip: clip, timeScale: 1}
}

// SetDuration stretches the clip so that one loop takes d seconds.
func (m *Mixer) SetDuration(d float32) *Mixer {
	if d > 0 && m.Clip.Duration > 0 {
		m.timeScale = m.Clip.Duration / d
	}
	return m
}

// Play starts the clip from its current time.
func (m *Mixer) Play() *Mixer {
	m.playing = true
	return m
}

// Update advances the clip by delta wall-clock seconds, wrapping at the clip end.
func (m *Mixer) Update(delta float32) {
	if !m.playing || m.Clip.Duration <= 0 {
		return
	}
	m.time = math32.Mod(m.time+delta*m.timeScale, m.Clip.Duration)
	if m.time < 0 {
		m.time += m.Clip.Duration
	}
}

// Time is the position inside the clip in clip seconds.
func (m *Mixer) Time() float32 { return m.time }

// Progress is Time normalized to [0,1).
func (m *Mixer) Progress() float32 {
	if m.Clip.Duration <= 0 {
		return 0
	}
	return m.time / m.Clip.Duration
}

// Frame maps the current time onto a clip sampled at frameCount frames.
func (m *Mixer) Frame(frameCount int) int {
	if frameCount <= 0 {
		return 0
	}
	f := int(m.Progress() * float32(frameCount))
	if f >= frameCount {
		f = frameCount - 1
	}
	return f
}

// Clock measures the time between successive Delta calls.
type Clock struct {
	now  func() time.Time
	last time.Time
}

// NewClock returns a clock that starts counting now.
func NewClock() *Clock {
	return NewClockWith(time.Now)
}

// NewClockWith uses now as the time source.
func NewClockWith(now func() time.Time) *Clock {
	return &Clock{now: now, last: now()}
}

// Delta returns the seconds elapsed since the previous call (or since creation).
func (c *Clock) Delta() float32 {
	t := c.now()
	d := t.Sub(c.last)
	c.last = t
	if d < 0 {
		return 0
	}
	return float32(d.Seconds())
}

// Driver advances all mixers and tweens once per frame tick.
type Driver struct {
	Tweens Group
	mixers []*Mixer
}

// AddMixer registers a mixer.
func (d *Driver) AddMixer(m *Mixer) {
	d.mixers = append(d.mixers, m)
}

// Mixers returns the registered mixers.
func (d *Driver) Mixers() []*Mixer { return d.mixers }

// Tick advances mixers first, then tweens. Rendering happens after Tick returns.
func (d *Driver) Tick(delta float32) {
	for _, m := range d.mixers {
		m.Update(delta)
	}
	d.Tweens.Update(delta)
}

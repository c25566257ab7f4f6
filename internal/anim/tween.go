package anim

// Easing maps normalized progress in [0,1] to eased progress.
type Easing func(k float32) float32

// Linear is the identity easing.
func Linear(k float32) float32 { return k }

// Infinite repeats a tween forever.
const Infinite = -1

// Tween interpolates a single value from From to To over Duration seconds.
// After each completed run it restarts while repeats remain.
type Tween struct {
	From     float32
	To       float32
	Duration float32

	easing   Easing
	repeat   int
	onUpdate func(v float32)
	elapsed  float32
	value    float32
	running  bool
}

// NewTween returns a stopped linear tween.
func NewTween(from, to, duration float32) *Tween {
	return &Tween{From: from, To: to, Duration: duration, easing: Linear, value: from}
}

// Easing sets the easing function.
func (t *Tween) Easing(e Easing) *Tween {
	if e != nil {
		t.easing = e
	}
	return t
}

// Repeat sets how many extra runs follow the first; Infinite never stops.
func (t *Tween) Repeat(n int) *Tween {
	t.repeat = n
	return t
}

// OnUpdate registers the callback invoked with the current value on every update.
func (t *Tween) OnUpdate(fn func(v float32)) *Tween {
	t.onUpdate = fn
	return t
}

// Start resets progress and marks the tween as running.
func (t *Tween) Start() *Tween {
	t.elapsed = 0
	t.value = t.From
	t.running = true
	return t
}

// Stop halts the tween where it is.
func (t *Tween) Stop() { t.running = false }

// Running reports whether Update still advances the tween.
func (t *Tween) Running() bool { return t.running }

// Value is the most recently computed value.
func (t *Tween) Value() float32 { return t.value }

// Update advances the tween by dt seconds and invokes the update callback.
// It returns false once the tween has finished.
func (t *Tween) Update(dt float32) bool {
	if !t.running {
		return false
	}
	t.elapsed += dt
	k := float32(1)
	if t.Duration > 0 {
		k = t.elapsed / t.Duration
	}
	if k > 1 {
		k = 1
	}
	t.value = t.From + (t.To-t.From)*t.easing(k)
	if t.onUpdate != nil {
		t.onUpdate(t.value)
	}
	if k < 1 {
		return true
	}
	if t.repeat == 0 {
		t.running = false
		return false
	}
	if t.repeat > 0 {
		t.repeat--
	}
	// Carry the overshoot into the next run so long frames do not drift.
	if t.Duration > 0 {
		for t.elapsed >= t.Duration {
			t.elapsed -= t.Duration
		}
	} else {
		t.elapsed = 0
	}
	return true
}

// Group advances a set of tweens together and drops finished ones.
type Group struct {
	tweens []*Tween
}

// Add registers tweens with the group.
func (g *Group) Add(tweens ...*Tween) {
	g.tweens = append(g.tweens, tweens...)
}

// Len is the number of live tweens.
func (g *Group) Len() int { return len(g.tweens) }

// Update advances every tween by dt seconds.
func (g *Group) Update(dt float32) {
	live := g.tweens[:0]
	for _, t := range g.tweens {
		if t.Update(dt) {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(g.tweens); i++ {
		g.tweens[i] = nil
	}
	g.tweens = live
}

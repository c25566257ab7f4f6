package debug

import (
	"fmt"
	"runtime"
)

const (
	FontSize   = 20
	Padding    = 12
	LineHeight = FontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds the stats overlay state (FPS and heap). All overlays are off by default.
// The renderer draws Lines top-right in green.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	fps          func() int32
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden. fps reports the current frame rate.
func New(fps func() int32) *Debug {
	return &Debug{fps: fps}
}

// SetShowFPS sets whether the FPS counter is shown.
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is shown under FPS.
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// Frame advances the overlay by one frame and returns the lines to draw.
// Text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Frame() []string {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	var lines []string
	if d.ShowFPS {
		if update && d.fps != nil {
			d.lastFpsText = fmt.Sprintf("FPS: %d", d.fps())
		}
		lines = append(lines, d.lastFpsText)
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		lines = append(lines, d.lastMemText)
	}
	return lines
}

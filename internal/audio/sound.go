// Package audio plays the looping ambient track.
package audio

import (
	"math"
	"os"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"

	"winter-scene/internal/logger"
)

const (
	// DefaultVolume is the linear gain of the ambient track.
	DefaultVolume   = 0.3
	resampleQuality = 4
)

// Output plays streamers. Lock guards streamers already handed to Play.
type Output interface {
	SampleRate() beep.SampleRate
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// Sound is a looping buffered track. Play may be called before the track has
// loaded; playback then starts as soon as loading completes.
type Sound struct {
	mu     sync.Mutex
	out    Output
	log    *logger.Logger
	volume float64

	buf      *beep.Buffer
	ctrl     *beep.Ctrl
	wantPlay bool
	err      error
	loaded   chan struct{}
}

// NewSound returns an empty sound that plays through out.
func NewSound(out Output, log *logger.Logger) *Sound {
	return &Sound{out: out, log: log, volume: DefaultVolume, loaded: make(chan struct{})}
}

// SetVolume sets the linear gain used the next time playback starts.
func (s *Sound) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = v
}

// Load decodes the WAV file at path in the background.
// Failures are logged and leave the sound silent.
func (s *Sound) Load(path string) {
	go func() {
		buf, err := decodeFile(path)
		s.setBuffer(buf, err)
	}()
}

func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "load sound")
	}
	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	defer stream.Close()
	buf := beep.NewBuffer(format)
	buf.Append(stream)
	if err := stream.Err(); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return buf, nil
}

func (s *Sound) setBuffer(buf *beep.Buffer, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer close(s.loaded)
	if err != nil {
		s.err = err
		if s.log != nil {
			s.log.Errorf("%v", err)
		}
		return
	}
	s.buf = buf
	if s.wantPlay {
		s.start()
	}
}

// Loaded is closed once loading has finished, successfully or not.
func (s *Sound) Loaded() <-chan struct{} { return s.loaded }

// Err is the load error, if any.
func (s *Sound) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Play starts the loop from the beginning. It does nothing if already playing.
func (s *Sound) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wantPlay {
		return
	}
	s.wantPlay = true
	if s.buf != nil {
		s.start()
	}
}

// Stop ends playback. A later Play starts over.
func (s *Sound) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wantPlay = false
	if s.ctrl == nil {
		return
	}
	s.out.Lock()
	// A Ctrl without a streamer reports drained, so the output drops it.
	s.ctrl.Streamer = nil
	s.out.Unlock()
	s.ctrl = nil
}

// Playing reports whether playback is requested. It is true while waiting for the load.
func (s *Sound) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wantPlay
}

// start must hold s.mu.
func (s *Sound) start() {
	var st beep.Streamer = beep.Loop(-1, s.buf.Streamer(0, s.buf.Len()))
	st = &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(s.volume), Silent: s.volume <= 0}
	if from, to := s.buf.Format().SampleRate, s.out.SampleRate(); from != to {
		st = beep.Resample(resampleQuality, from, to, st)
	}
	s.ctrl = &beep.Ctrl{Streamer: st}
	s.out.Play(s.ctrl)
}

// Silent is an Output that drops everything. It stands in when no audio device is available.
type Silent struct {
	Rate beep.SampleRate
}

func (o Silent) SampleRate() beep.SampleRate { return o.Rate }
func (Silent) Play(beep.Streamer)            {}
func (Silent) Lock()                         {}
func (Silent) Unlock()                       {}

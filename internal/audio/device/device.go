// Package device connects audio output to the system speaker.
package device

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the speaker sample rate; tracks at other rates are resampled.
const SampleRate = beep.SampleRate(44100)

// Speaker is the system audio device.
type Speaker struct {
	rate beep.SampleRate
}

// Open initialises the speaker with a 100 ms buffer.
func Open() (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Speaker{rate: SampleRate}, nil
}

func (s *Speaker) SampleRate() beep.SampleRate { return s.rate }
func (s *Speaker) Play(st beep.Streamer)       { speaker.Play(st) }
func (s *Speaker) Lock()                       { speaker.Lock() }
func (s *Speaker) Unlock()                     { speaker.Unlock() }

// Close releases the device.
func (s *Speaker) Close() { speaker.Close() }

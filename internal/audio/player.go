// Package audio plays synthesized sound effects for simulation events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/multiball/internal/core"
	"github.com/vovakirdan/multiball/internal/games/breakout"
)

const (
	// DefaultSampleRate is the output rate used by NewPlayer.
	DefaultSampleRate = beep.SampleRate(44100)

	// maxVoices bounds overlapping effects; a brick wall cleared by five
	// balls at once should not saturate the mixer.
	maxVoices = 8
)

// Player implements breakout.Hooks by mixing short tones into the speaker.
// The speaker consumes the mixer on its own goroutine, so all mixer access
// goes through the speaker lock once started.
type Player struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	volume  float64
	mixer   *beep.Mixer
	started bool
	played  int
}

// NewPlayer creates a player at the given master volume in [0, 1]. It stays
// silent until Start.
func NewPlayer(volume float64) *Player {
	return &Player{
		rate:   DefaultSampleRate,
		volume: clampVolume(volume),
		mixer:  &beep.Mixer{},
	}
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Start opens the audio device and begins playback of the mixer.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
}

// SetVolume changes the master volume for effects played from now on.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = clampVolume(v)
	p.mu.Unlock()
}

// PlaySound queues the effect for sound. Effects beyond the voice limit are
// dropped.
func (p *Player) PlaySound(sound breakout.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := SoundStreamer(sound, p.volume, p.rate)
	if s == nil {
		return
	}

	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	if p.mixer.Len() >= maxVoices {
		return
	}
	p.mixer.Add(s)
	p.played++
}

// Voices reports how many effects are still in the mixer.
func (p *Player) Voices() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Played reports how many effects have been queued since creation.
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// EntitySpawned is a no-op; the player only voices sounds.
func (p *Player) EntitySpawned(breakout.EntityKind, core.EntityID, core.Vec2) {}

// EntityRemoved is a no-op.
func (p *Player) EntityRemoved(breakout.EntityKind, core.EntityID) {}

var _ breakout.Hooks = (*Player)(nil)

package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/multiball/internal/games/breakout"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
)

// note is one pitched segment of a sound effect.
type note struct {
	freq float64
	dur  time.Duration
}

type effect struct {
	wave  Wave
	gain  float64
	notes []note
}

// soundEffects maps each simulation sound to a short synthesized phrase.
var soundEffects = map[breakout.Sound]effect{
	breakout.SoundPaddle:     {WaveSquare, 0.25, []note{{440, 50 * time.Millisecond}}},
	breakout.SoundBrickHit:   {WaveSquare, 0.2, []note{{660, 40 * time.Millisecond}}},
	breakout.SoundBrickBreak: {WaveSine, 0.4, []note{{880, 50 * time.Millisecond}, {1320, 70 * time.Millisecond}}},
	breakout.SoundBallSpawn:  {WaveSine, 0.35, []note{{523.25, 60 * time.Millisecond}, {783.99, 90 * time.Millisecond}}},
	breakout.SoundBallLost:   {WaveSine, 0.4, []note{{220, 200 * time.Millisecond}}},
	breakout.SoundGameOver: {WaveSine, 0.5, []note{
		{392, 150 * time.Millisecond}, {329.63, 150 * time.Millisecond}, {261.63, 300 * time.Millisecond},
	}},
	breakout.SoundLevelClear: {WaveSine, 0.5, []note{
		{523.25, 100 * time.Millisecond}, {659.25, 100 * time.Millisecond},
		{783.99, 100 * time.Millisecond}, {1046.5, 250 * time.Millisecond},
	}},
}

// tone is a fixed-length oscillator with a linear release over its last
// quarter so notes end without a click.
type tone struct {
	wave  Wave
	freq  float64
	rate  beep.SampleRate
	pos   int
	total int
}

// NewTone returns a streamer playing freq for d.
func NewTone(wave Wave, freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{wave: wave, freq: freq, rate: rate, total: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	release := t.total / 4
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}

		phase := float64(t.pos) * t.freq / float64(t.rate)
		phase -= math.Floor(phase)

		var v float64
		switch t.wave {
		case WaveSquare:
			v = 1
			if phase >= 0.5 {
				v = -1
			}
		default:
			v = math.Sin(2 * math.Pi * phase)
		}

		if left := t.total - t.pos; release > 0 && left < release {
			v *= float64(left) / float64(release)
		}

		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// SoundStreamer builds the effect for sound at the given master volume. It
// returns nil for sounds without an effect.
func SoundStreamer(sound breakout.Sound, volume float64, rate beep.SampleRate) beep.Streamer {
	fx, ok := soundEffects[sound]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(fx.notes))
	for _, n := range fx.notes {
		parts = append(parts, NewTone(fx.wave, n.freq, n.dur, rate))
	}
	return withVolume(beep.Seq(parts...), fx.gain*volume)
}

// SoundDuration is the total length of the effect for sound.
func SoundDuration(sound breakout.Sound) time.Duration {
	var d time.Duration
	for _, n := range soundEffects[sound].notes {
		d += n.dur
	}
	return d
}

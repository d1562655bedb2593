package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/multiball/internal/games/breakout"
)

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			v := buf[i][0]
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	tests := []struct {
		name string
		wave Wave
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, peak := drain(NewTone(tt.wave, 440, 100*time.Millisecond, rate))
			if want := rate.N(100 * time.Millisecond); total != want {
				t.Errorf("streamed %d samples, want %d", total, want)
			}
			if peak > 1 || peak == 0 {
				t.Errorf("peak = %f, want in (0, 1]", peak)
			}
		})
	}
}

func TestToneReleaseEndsQuiet(t *testing.T) {
	rate := beep.SampleRate(8000)
	tone := NewTone(WaveSquare, 440, 100*time.Millisecond, rate)

	buf := make([][2]float64, rate.N(100*time.Millisecond))
	n, _ := tone.Stream(buf)
	last := buf[n-1][0]
	if last < 0 {
		last = -last
	}
	if last > 0.01 {
		t.Errorf("last sample = %f, want near zero", last)
	}
}

func TestSoundStreamerCoversEverySound(t *testing.T) {
	rate := beep.SampleRate(8000)
	sounds := []breakout.Sound{
		breakout.SoundPaddle,
		breakout.SoundBrickHit,
		breakout.SoundBrickBreak,
		breakout.SoundBallSpawn,
		breakout.SoundBallLost,
		breakout.SoundGameOver,
		breakout.SoundLevelClear,
	}

	for _, s := range sounds {
		t.Run(s.String(), func(t *testing.T) {
			st := SoundStreamer(s, 1, rate)
			if st == nil {
				t.Fatal("no effect")
			}
			total, _ := drain(st)
			if want := rate.N(SoundDuration(s)); total != want {
				t.Errorf("streamed %d samples, want %d", total, want)
			}
		})
	}

	if SoundStreamer(breakout.Sound(99), 1, rate) != nil {
		t.Error("unknown sound should have no effect")
	}
}

func TestSilentVolume(t *testing.T) {
	_, peak := drain(SoundStreamer(breakout.SoundPaddle, 0, beep.SampleRate(8000)))
	if peak != 0 {
		t.Errorf("peak = %f at zero volume, want 0", peak)
	}
}

func TestPlayerVoiceLimit(t *testing.T) {
	p := NewPlayer(0.5)
	for i := 0; i < maxVoices+3; i++ {
		p.PlaySound(breakout.SoundBrickBreak)
	}
	if got := p.Voices(); got != maxVoices {
		t.Errorf("Voices() = %d, want %d", got, maxVoices)
	}
	if got := p.Played(); got != maxVoices {
		t.Errorf("Played() = %d, want %d", got, maxVoices)
	}
}

func TestPlayerAsHooks(t *testing.T) {
	p := NewPlayer(1)
	var h breakout.Hooks = breakout.MultiHooks{breakout.NopHooks{}, p}

	h.PlaySound(breakout.SoundPaddle)
	h.EntityRemoved(breakout.KindBrick, 3)
	if got := p.Played(); got != 1 {
		t.Errorf("Played() = %d, want 1", got)
	}

	// Close before Start is harmless
	p.Close()
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0.3, 0.3},
		{2, 1},
	}
	for _, tt := range tests {
		if got := clampVolume(tt.in); got != tt.want {
			t.Errorf("clampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

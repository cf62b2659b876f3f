package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-hive/internal/config"
	"github.com/vovakirdan/tui-hive/internal/level"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("streamer never ended")
	return nil
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	waves := []Wave{WaveSine, WaveSquare, WaveSaw, WaveNoise}

	for _, w := range waves {
		samples := drain(t, NewOscillator(440, 50*time.Millisecond, w, rate))
		if len(samples) != rate.N(50*time.Millisecond) {
			t.Errorf("wave %d: got %d samples, want %d", w, len(samples), rate.N(50*time.Millisecond))
		}
		for i, s := range samples {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("wave %d: sample %d = %v", w, i, s)
			}
		}
	}
}

func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	env := NewEnvelope(NewOscillator(0, d, WaveSquare, rate), d, 10*time.Millisecond, 20*time.Millisecond, rate)

	samples := drain(t, env)
	if len(samples) != 100 {
		t.Fatalf("got %d samples, want 100", len(samples))
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, want 0 (attack start)", samples[0][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("sustain sample = %v, want 1", samples[50][0])
	}
	if last := samples[99][0]; last <= 0 || last > 0.1 {
		t.Errorf("last sample = %v, want small positive release tail", last)
	}
}

func TestSoundEffects(t *testing.T) {
	cfg := config.DefaultHiveConfig().Audio
	cfg.SampleRate = 8000

	for _, snd := range allSounds {
		t.Run(snd.String(), func(t *testing.T) {
			s := SoundEffect(snd, cfg)
			if s == nil {
				t.Fatal("no streamer")
			}
			samples := drain(t, s)
			if len(samples) == 0 {
				t.Fatal("effect is empty")
			}
			peak := 0.0
			for _, v := range samples {
				if math.IsNaN(v[0]) || math.IsInf(v[0], 0) {
					t.Fatalf("non-finite sample %v", v)
				}
				peak = math.Max(peak, math.Abs(v[0]))
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak = %v, want in (0, 1]", peak)
			}
		})
	}

	if SoundEffect(level.Sound(99), cfg) != nil {
		t.Error("unknown sound should have no streamer")
	}
}

func TestMutedEffectIsSilent(t *testing.T) {
	cfg := config.DefaultHiveConfig().Audio
	cfg.SampleRate = 8000
	cfg.MasterVolume = 0

	for _, v := range drain(t, SoundEffect(level.SoundWin, cfg)) {
		if v[0] != 0 {
			t.Fatalf("muted sample = %v", v[0])
		}
	}
}

func TestRenderBuffers(t *testing.T) {
	cfg := config.DefaultHiveConfig().Audio
	cfg.SampleRate = 8000

	buffers := Render(cfg)
	if len(buffers) != len(allSounds) {
		t.Fatalf("rendered %d buffers, want %d", len(buffers), len(allSounds))
	}
	if got, want := buffers[level.SoundWin].Len(), 4*beep.SampleRate(8000).N(winNote); got < want {
		t.Errorf("win buffer length = %d, want at least %d", got, want)
	}
}

func TestDisabledSpeakerIsSilent(t *testing.T) {
	cfg := config.DefaultHiveConfig().Audio
	cfg.Enabled = false

	s, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if !s.IsSilent() {
		t.Fatal("disabled audio should give a silent speaker")
	}
	s.Play(level.SoundWin)
	if s.Played() != 0 {
		t.Errorf("silent speaker queued %d sounds", s.Played())
	}
	s.Close()
}

package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-hive/internal/config"
	"github.com/vovakirdan/tui-hive/internal/level"
)

// Effect durations.
const (
	moveDuration = 60 * time.Millisecond
	pushDuration = 120 * time.Millisecond
	turnDuration = 45 * time.Millisecond
	hitDuration  = 150 * time.Millisecond
	winNote      = 110 * time.Millisecond
)

// CreateMoveSound is a soft footstep blip.
func CreateMoveSound(rate beep.SampleRate) beep.Streamer {
	return tone(330, moveDuration, 40*time.Millisecond, WaveSine, rate)
}

// CreatePushSound is a low thud with a scrape of noise on top.
func CreatePushSound(rate beep.SampleRate) beep.Streamer {
	thud := tone(140, pushDuration, 90*time.Millisecond, WaveSquare, rate)
	scrape := tone(0, pushDuration/2, 50*time.Millisecond, WaveNoise, rate)
	return beep.Mix(newVolume(thud, 0.6), newVolume(scrape, 0.25))
}

// CreateTurnSound is a short high tick.
func CreateTurnSound(rate beep.SampleRate) beep.Streamer {
	return tone(660, turnDuration, 30*time.Millisecond, WaveSaw, rate)
}

// CreateHitSound is a harsh buzz for a rejected move.
func CreateHitSound(rate beep.SampleRate) beep.Streamer {
	return tone(100, hitDuration, 80*time.Millisecond, WaveSaw, rate)
}

// CreateWinSound is a rising C major arpeggio with an octave overtone.
func CreateWinSound(rate beep.SampleRate) beep.Streamer {
	freqs := []float64{523.25, 659.25, 783.99, 1046.50}
	notes := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		fund := tone(f, winNote, 60*time.Millisecond, WaveSine, rate)
		over := tone(f*2, winNote, 40*time.Millisecond, WaveSine, rate)
		notes[i] = beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))
	}
	return beep.Seq(notes...)
}

// SoundEffect returns the streamer for s scaled by the configured volumes,
// or nil for an unknown sound.
func SoundEffect(s level.Sound, cfg config.AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	var (
		streamer beep.Streamer
		vol      float64
	)
	switch s {
	case level.SoundMove:
		streamer, vol = CreateMoveSound(rate), cfg.Effects.Move
	case level.SoundPush:
		streamer, vol = CreatePushSound(rate), cfg.Effects.Push
	case level.SoundTurn:
		streamer, vol = CreateTurnSound(rate), cfg.Effects.Turn
	case level.SoundHit:
		streamer, vol = CreateHitSound(rate), cfg.Effects.Hit
	case level.SoundWin:
		streamer, vol = CreateWinSound(rate), cfg.Effects.Win
	default:
		return nil
	}
	return newVolume(streamer, vol*cfg.MasterVolume)
}

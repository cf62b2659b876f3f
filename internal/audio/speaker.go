// Package audio plays the hive sound effects through the system speaker.
// Effects are synthesised once per sample rate and replayed from buffers.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-hive/internal/config"
	"github.com/vovakirdan/tui-hive/internal/level"
)

// speakerBuffer is the speaker latency.
const speakerBuffer = 100 * time.Millisecond

var allSounds = []level.Sound{
	level.SoundMove,
	level.SoundPush,
	level.SoundTurn,
	level.SoundHit,
	level.SoundWin,
}

// Speaker plays level sounds. A Speaker whose output could not be opened,
// or whose config disables audio, stays silent.
type Speaker struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	buffers map[level.Sound]*beep.Buffer
	silent  bool
	played  int
}

// Silent returns a speaker that never touches the audio device.
func Silent() *Speaker {
	return &Speaker{silent: true}
}

// Open initialises the speaker device and pre-renders every effect.
// Device failures are logged and produce a silent speaker, not an error.
func Open(cfg config.AudioConfig, logger *log.Logger) (*Speaker, error) {
	if !cfg.Enabled {
		return Silent(), nil
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("audio: invalid sample rate %d", cfg.SampleRate)
	}

	rate := beep.SampleRate(cfg.SampleRate)
	s := &Speaker{
		mixer:   &beep.Mixer{},
		buffers: Render(cfg),
	}

	if err := speaker.Init(rate, rate.N(speakerBuffer)); err != nil {
		if logger != nil {
			logger.Warn("audio unavailable, continuing silently", "error", err)
		}
		return Silent(), nil
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Render synthesises every effect for cfg into buffers.
func Render(cfg config.AudioConfig) map[level.Sound]*beep.Buffer {
	format := beep.Format{
		SampleRate:  beep.SampleRate(cfg.SampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	buffers := make(map[level.Sound]*beep.Buffer, len(allSounds))
	for _, snd := range allSounds {
		buf := beep.NewBuffer(format)
		buf.Append(SoundEffect(snd, cfg))
		buffers[snd] = buf
	}
	return buffers
}

// Play implements level.SoundPlayer.
func (s *Speaker) Play(snd level.Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.silent {
		return
	}
	buf, ok := s.buffers[snd]
	if !ok {
		return
	}

	speaker.Lock()
	s.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
	s.played++
}

// Played returns how many effects were queued.
func (s *Speaker) Played() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played
}

// IsSilent reports whether the speaker discards every sound.
func (s *Speaker) IsSilent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.silent
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.silent {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.silent = true
}

var _ level.SoundPlayer = (*Speaker)(nil)

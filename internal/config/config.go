// Package config provides YAML-based configuration loading for hive:
// animation timings, audio mixing and campaign settings.
package config

import "time"

// HiveConfig contains all configuration for the hive game.
type HiveConfig struct {
	Animation AnimationConfig `yaml:"animation"`
	Audio     AudioConfig     `yaml:"audio"`
	Campaign  CampaignConfig  `yaml:"campaign"`
}

// AnimationConfig defines how long each kind of change keeps an entity busy.
// A zero duration settles the entity on the next tick.
type AnimationConfig struct {
	MoveMS   int `yaml:"move"`   // walk, push and pushed entities
	TurnMS   int `yaml:"turn"`   // rotation in place
	RecoilMS int `yaml:"recoil"` // blocked and invalid entities
	FocusMS  int `yaml:"focus"`  // focus toggles on switch
}

// Move returns the walk/push duration.
func (a AnimationConfig) Move() time.Duration { return ms(a.MoveMS) }

// Turn returns the rotation duration.
func (a AnimationConfig) Turn() time.Duration { return ms(a.TurnMS) }

// Recoil returns the duration of a rejected move.
func (a AnimationConfig) Recoil() time.Duration { return ms(a.RecoilMS) }

// Focus returns the duration of a focus toggle.
func (a AnimationConfig) Focus() time.Duration { return ms(a.FocusMS) }

// AudioConfig defines sound output parameters.
type AudioConfig struct {
	Enabled      bool          `yaml:"enabled"`
	MasterVolume float64       `yaml:"master_volume"` // 0.0 = mute, 1.0 = full
	SampleRate   int           `yaml:"sample_rate"`
	Effects      EffectVolumes `yaml:"effects"`
}

// EffectVolumes scales each sound effect before the master volume.
type EffectVolumes struct {
	Move float64 `yaml:"move"`
	Push float64 `yaml:"push"`
	Turn float64 `yaml:"turn"`
	Hit  float64 `yaml:"hit"`
	Win  float64 `yaml:"win"`
}

// CampaignConfig defines how the level sequence is played.
type CampaignConfig struct {
	LevelsDir      string `yaml:"levels_dir"` // empty = built-in pack
	AdvanceDelayMS int    `yaml:"advance_delay_ms"`
}

// AdvanceDelay returns the pause between a win and the next level.
func (c CampaignConfig) AdvanceDelay() time.Duration { return ms(c.AdvanceDelayMS) }

func ms(v int) time.Duration {
	if v <= 0 {
		return 0
	}
	return time.Duration(v) * time.Millisecond
}

package config

import (
	_ "embed"
)

//go:embed defaults/hive.yaml
var defaultHiveYAML []byte

// DefaultHiveConfig returns the default hive configuration.
func DefaultHiveConfig() HiveConfig {
	return HiveConfig{
		Animation: AnimationConfig{
			MoveMS:   100,
			TurnMS:   100,
			RecoilMS: 300,
			FocusMS:  200,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.6,
			SampleRate:   44100,
			Effects: EffectVolumes{
				Move: 0.5,
				Push: 0.8,
				Turn: 0.4,
				Hit:  0.7,
				Win:  1.0,
			},
		},
		Campaign: CampaignConfig{
			LevelsDir:      "",
			AdvanceDelayMS: 1500,
		},
	}
}

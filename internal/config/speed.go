package config

// SpeedPreset represents a named animation speed.
type SpeedPreset string

const (
	SpeedSlow    SpeedPreset = "slow"
	SpeedNormal  SpeedPreset = "normal"
	SpeedFast    SpeedPreset = "fast"
	SpeedInstant SpeedPreset = "instant"
)

// SpeedPresets lists the accepted preset names.
func SpeedPresets() []SpeedPreset {
	return []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedInstant}
}

// speedFactor returns the duration multiplier for a preset.
func speedFactor(preset SpeedPreset) (float64, bool) {
	switch preset {
	case SpeedSlow:
		return 2.0, true
	case SpeedNormal:
		return 1.0, true
	case SpeedFast:
		return 0.5, true
	case SpeedInstant:
		return 0, true
	default:
		return 0, false
	}
}

// ApplySpeedPreset scales the animation durations of cfg.
// Unknown presets leave cfg unchanged and return false.
func ApplySpeedPreset(cfg *HiveConfig, preset SpeedPreset) bool {
	f, ok := speedFactor(preset)
	if !ok {
		return false
	}

	scale := func(v int) int { return int(float64(v) * f) }
	cfg.Animation.MoveMS = scale(cfg.Animation.MoveMS)
	cfg.Animation.TurnMS = scale(cfg.Animation.TurnMS)
	cfg.Animation.RecoilMS = scale(cfg.Animation.RecoilMS)
	cfg.Animation.FocusMS = scale(cfg.Animation.FocusMS)
	return true
}

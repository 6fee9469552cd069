package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset validates a preset name. Empty input means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// PaletteForPreset returns the number of tile colors for a preset.
// Fewer colors make matches and cascades more likely.
func PaletteForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 7
	default:
		return 6
	}
}

// IsFixedPreset returns true if the preset disables level progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyCrushPreset modifies the config based on a difficulty preset.
// The fixed preset keeps the configured palette and pins the level: a single
// threshold means the score multiplier never changes.
func ApplyCrushPreset(cfg *CrushConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	if IsFixedPreset(preset) {
		cfg.Scoring.LevelThresholds = []int{0}
		return
	}
	cfg.Board.Palette = PaletteForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Hints = true
	case DifficultyHard:
		cfg.Gameplay.Hints = false
	}
}

package config

import (
	_ "embed"
)

//go:embed defaults/crush.yaml
var defaultCrushYAML []byte

// DefaultCrushConfig returns the default Crush Match configuration.
func DefaultCrushConfig() CrushConfig {
	return CrushConfig{
		Board: CrushBoard{
			Size:    8,
			Palette: 6,
		},
		Scoring: CrushScoring{
			MatchPoints:      10,
			BombPoints:       5,
			ColorClearPoints: 15,
			LevelThresholds:  []int{0, 500, 1200, 2500, 4500, 7500, 12000, 18000, 26000, 36000, 50000},
		},
		Gameplay: CrushGameplay{
			StartLevel:       1,
			MaxCascadePasses: 256,
			Hints:            true,
		},
		Animation: CrushAnimation{
			FrameTicks:  12, // ~200ms at 60fps
			BannerTicks: 120,
			HintTicks:   90,
		},
		Difficulty: CrushDifficulty{
			Preset: DifficultyNormal,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "crush":
		return defaultCrushYAML
	default:
		return nil
	}
}

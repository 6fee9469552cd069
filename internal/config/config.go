// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import "fmt"

// CrushConfig contains all configuration for the Crush Match game.
type CrushConfig struct {
	Board      CrushBoard      `yaml:"board"`
	Scoring    CrushScoring    `yaml:"scoring"`
	Gameplay   CrushGameplay   `yaml:"gameplay"`
	Animation  CrushAnimation  `yaml:"animation"`
	Difficulty CrushDifficulty `yaml:"difficulty"`
}

// CrushBoard defines the grid dimensions.
type CrushBoard struct {
	Size    int `yaml:"size"`    // Edge length of the square board
	Palette int `yaml:"palette"` // Number of tile colors (3-8)
}

// CrushScoring defines point values and level thresholds.
type CrushScoring struct {
	MatchPoints      int   `yaml:"match_points"`       // Per matched tile, multiplied by level
	BombPoints       int   `yaml:"bomb_points"`        // Per tile cleared by a bomb
	ColorClearPoints int   `yaml:"color_clear_points"` // Per tile cleared by a color-clear
	LevelThresholds  []int `yaml:"level_thresholds"`   // Minimum score for each level, ascending
}

// CrushGameplay defines session rules.
type CrushGameplay struct {
	StartLevel       int  `yaml:"start_level"`
	MaxCascadePasses int  `yaml:"max_cascade_passes"`
	Hints            bool `yaml:"hints"`
}

// CrushAnimation defines frame pacing in simulation ticks.
type CrushAnimation struct {
	FrameTicks  int `yaml:"frame_ticks"`  // Ticks each resolution frame stays on screen
	BannerTicks int `yaml:"banner_ticks"` // Ticks the level-up banner stays on screen
	HintTicks   int `yaml:"hint_ticks"`   // Ticks a hint stays highlighted
}

// CrushDifficulty records the preset applied to this config.
type CrushDifficulty struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// Validate checks that the config describes a playable board.
func (c CrushConfig) Validate() error {
	if c.Board.Size < 3 || c.Board.Size > 16 {
		return fmt.Errorf("config: board size %d out of range 3-16", c.Board.Size)
	}
	if c.Board.Palette < 3 || c.Board.Palette > 8 {
		return fmt.Errorf("config: palette %d out of range 3-8", c.Board.Palette)
	}
	if c.Scoring.MatchPoints < 0 || c.Scoring.BombPoints < 0 || c.Scoring.ColorClearPoints < 0 {
		return fmt.Errorf("config: point values must not be negative")
	}
	prev := -1
	for i, t := range c.Scoring.LevelThresholds {
		if t <= prev {
			return fmt.Errorf("config: level threshold %d (%d) is not ascending", i+1, t)
		}
		prev = t
	}
	if len(c.Scoring.LevelThresholds) > 0 && c.Scoring.LevelThresholds[0] != 0 {
		return fmt.Errorf("config: first level threshold must be 0")
	}
	if c.Gameplay.StartLevel < 1 {
		return fmt.Errorf("config: start level must be at least 1")
	}
	if c.Animation.FrameTicks < 0 || c.Animation.BannerTicks < 0 || c.Animation.HintTicks < 0 {
		return fmt.Errorf("config: animation ticks must not be negative")
	}
	return nil
}

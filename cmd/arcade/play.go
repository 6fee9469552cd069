package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/crush-arcade/internal/config"
	"github.com/vovakirdan/crush-arcade/internal/core"
	"github.com/vovakirdan/crush-arcade/internal/games/crush"
	"github.com/vovakirdan/crush-arcade/internal/platform/tui"
	"github.com/vovakirdan/crush-arcade/internal/registry"
	"github.com/vovakirdan/crush-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagBell       bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing Crush Match.

Without --difficulty or --level a setup screen asks for both.

Controls:
  Arrows/HJKL  - Move cursor
  Space/Enter  - Select tile (select two neighbours to swap)
  Mouse click  - Select tile under the pointer
  X            - Cancel selection
  ?/I          - Show a hint
  P/Esc        - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 5 colors, hints on
  normal - 6 colors
  hard   - 7 colors, hints off
  fixed  - Level never changes from the starting level

Examples:
  arcade play
  arcade play --difficulty easy
  arcade play --level 4 --bell
  arcade play crush --config ./my-crush.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Starting level (0 = from config)")
	playCmd.Flags().BoolVar(&flagBell, "bell", false, "Ring the terminal bell on power-ups, level-up and game over")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := crush.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if flagLevel < 0 || flagLevel > crush.LevelCount() {
		fmt.Fprintf(os.Stderr, "Error: level must be between 1 and %d\n", crush.LevelCount())
		os.Exit(1)
	}

	cfg := runtimeConfig()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := playCrush(store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func playCrush(store *storage.Store, cfg core.RuntimeConfig) error {
	crush.SetConfigPath(flagConfig)
	crush.SetDifficultyPreset(flagDifficulty)
	crush.SetStartLevel(flagLevel)

	// Show the setup screen unless flags already answered it
	if flagDifficulty == "" && flagLevel == 0 {
		selection, updatedCfg, err := tui.RunCrushSetup(store, cfg)
		if err != nil {
			return err
		}
		cfg = updatedCfg

		// User pressed back or quit
		if selection == nil {
			return nil
		}
		crush.SetDifficultyPreset(string(selection.Preset))
		crush.SetStartLevel(selection.Level)
	}

	game, err := registry.Create(crush.GameID)
	if err != nil {
		return err
	}
	return tui.Run(game, store, cfg, tui.ModelOptions{Bell: bellWriter()})
}

func bellWriter() io.Writer {
	if !flagBell {
		return nil
	}
	return os.Stdout
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

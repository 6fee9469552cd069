// arcade is a terminal match-3 arcade built around Crush Match.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play [game]       - Play Crush Match (the default game)
//	arcade menu              - Start menu with setup and scoreboard
//	arcade serve             - Start SSH server for remote play
//	arcade web               - Start HTTP/websocket bridge for browsers
//	arcade scores [game]     - Show high scores
//	arcade config path|init  - Inspect or create the config file
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible boards
//	--db <path>        - Set database path (default: ~/.arcade/scores.db)
//	--log-file <path>  - Write engine warnings to a file
//	--debug            - Log at debug level
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/crush-arcade/internal/games/crush"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

// logFile is closed on exit when --log-file is set.
var logFile *os.File

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Crush Arcade - match-3 in your terminal",
	Long: `Crush Arcade is a terminal match-3 game. Swap adjacent tiles to line up
three or more of a color, build bombs and color-clears from longer runs,
and climb levels until no move is left.

Available commands:
  list     - Show all available games
  play     - Play Crush Match directly
  menu     - Interactive menu with setup and scoreboard
  serve    - Start SSH server for remote play
  web      - Start HTTP/websocket bridge for browser clients
  scores   - View high scores
  config   - Show or create the config file

Examples:
  arcade play
  arcade play --difficulty hard --level 3
  arcade menu
  arcade serve --ssh :2222
  arcade web --addr :8080
  arcade scores`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupLogging()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write game logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging routes game logs to --log-file. Without it the terminal UI
// owns the screen, so game logs are discarded.
func setupLogging() error {
	var w io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	}
	crush.SetLogger(newLogger(w, "arcade"))
	return nil
}

// newLogger builds a timestamped logger honoring --debug.
func newLogger(w io.Writer, prefix string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// serverLogger logs to stderr, and to --log-file as well when set.
func serverLogger(prefix string) *log.Logger {
	var w io.Writer = os.Stderr
	if logFile != nil {
		w = io.MultiWriter(os.Stderr, logFile)
	}
	return newLogger(w, prefix)
}

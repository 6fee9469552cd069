package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/crush-arcade/internal/config"
	"github.com/vovakirdan/crush-arcade/internal/games/crush"
	"github.com/vovakirdan/crush-arcade/internal/platform/web"
	"github.com/vovakirdan/crush-arcade/internal/storage"
)

var (
	flagWebAddr     string
	flagWebSessions int
	flagWebTTL      time.Duration
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP/websocket bridge for browser clients",
	Long: `Start an HTTP server that lets browser clients play Crush Match.

Endpoints:
  GET    /health             - Liveness probe
  POST   /api/sessions       - New game (optional JSON: size, level, seed, difficulty, player)
  GET    /api/sessions/{id}  - Current board and score
  DELETE /api/sessions/{id}  - End a game
  GET    /api/scores         - Leaderboard (?limit=N)
  GET    /ws/{id}            - Websocket: swap, activate, select, reset, hint

Settings can also come from the environment or a .env file in the working
directory: ARCADE_WEB_ADDR, ARCADE_WEB_MAX_SESSIONS and ARCADE_DB. Flags win.

Finished games are saved to the same scores database as the terminal UI.

Examples:
  arcade web
  arcade web --addr :9000 --config ./crush.yaml`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().IntVar(&flagWebSessions, "max-sessions", 1024, "Maximum concurrent sessions (0 = unlimited)")
	webCmd.Flags().DurationVar(&flagWebTTL, "session-ttl", 30*time.Minute, "Drop sessions idle this long (0 = never)")
	webCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runWeb(cmd *cobra.Command, _ []string) {
	logger := serverLogger("arcade-web")
	crush.SetLogger(serverLogger("crush"))

	// A missing .env is normal outside development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not read .env", "error", err)
	}
	if err := applyWebEnv(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameCfg, err := config.LoadCrush(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	cfg := web.DefaultServerConfig()
	cfg.Address = flagWebAddr
	cfg.Game = gameCfg
	cfg.Store = store
	cfg.MaxSessions = flagWebSessions
	cfg.SessionTTL = flagWebTTL
	cfg.Logger = logger

	server := web.NewServer(cfg)
	fmt.Printf("Starting Crush Match web bridge on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	runErr := server.ListenAndServe()
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", runErr)
		os.Exit(1)
	}
}

// applyWebEnv fills flags the user did not set from ARCADE_* variables.
func applyWebEnv(cmd *cobra.Command) error {
	if v := os.Getenv("ARCADE_WEB_ADDR"); v != "" && !cmd.Flags().Changed("addr") {
		flagWebAddr = v
	}
	if v := os.Getenv("ARCADE_WEB_MAX_SESSIONS"); v != "" && !cmd.Flags().Changed("max-sessions") {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("ARCADE_WEB_MAX_SESSIONS must be a non-negative integer, got %q", v)
		}
		flagWebSessions = n
	}
	if v := os.Getenv("ARCADE_DB"); v != "" && !cmd.Flags().Changed("db") {
		flagDBPath = v
	}
	return nil
}

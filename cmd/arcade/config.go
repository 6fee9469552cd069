package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crush-arcade/internal/config"
	"github.com/vovakirdan/crush-arcade/internal/games/crush"
)

var flagForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the Crush Match config file",
	Long: `Inspect where configuration is loaded from, or write the built-in
defaults to the XDG config directory for editing.

Examples:
  arcade config path
  arcade config init
  arcade config init --force`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "List config search paths in load order",
	Run: func(_ *cobra.Command, _ []string) {
		for _, p := range config.SearchPaths(crush.GameID) {
			status := "missing"
			if _, err := os.Stat(p); err == nil {
				status = "found"
			}
			fmt.Printf("  %-8s %s\n", status, p)
		}
		fmt.Println("  (built-in defaults are used when none is found)")
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to the XDG config directory",
	Run: func(_ *cobra.Command, _ []string) {
		path, err := config.WriteDefault(crush.GameID, flagForce)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if path != "" {
				fmt.Fprintln(os.Stderr, "Use --force to overwrite.")
			}
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

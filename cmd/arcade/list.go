package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/crush-arcade/internal/config"
	"github.com/vovakirdan/crush-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available games and difficulty presets",
	Long:  `Shows the games registered in the arcade, their controls and the difficulty presets accepted by 'arcade play --difficulty'.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{g.ID, g.Title, g.Controls})
	}

	fmt.Println(gamesTable(rows, term.IsTerminal(int(os.Stdout.Fd()))))
	fmt.Println()

	names := make([]string, len(config.Presets))
	for i, p := range config.Presets {
		names[i] = string(p)
	}
	fmt.Printf("Difficulty presets: %s\n", strings.Join(names, ", "))
	fmt.Println("Run 'arcade play <id>' to play a game, or 'arcade menu' to pick one.")
}

// gamesTable renders the game list. Styling is dropped when stdout is not a
// terminal so the output stays greppable.
func gamesTable(rows [][]string, styled bool) string {
	t := table.New().
		Headers("ID", "TITLE", "CONTROLS").
		Rows(rows...)
	if !styled {
		return t.Border(lipgloss.HiddenBorder()).String()
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return t.
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

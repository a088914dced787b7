package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows a list of all game modes and what they are about.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, runewidth.StringWidth(g.ID))
		maxTitleLen = max(maxTitleLen, runewidth.StringWidth(g.Title))
	}

	// Print header
	fmt.Printf("  %s  %s  %s\n", runewidth.FillRight("ID", maxIDLen), runewidth.FillRight("Title", maxTitleLen), "Description")
	fmt.Printf("  %s  %s  %s\n", runewidth.FillRight("--", maxIDLen), runewidth.FillRight("-----", maxTitleLen), "-----------")

	// Print modes
	for _, g := range games {
		fmt.Printf("  %s  %s  %s\n", runewidth.FillRight(g.ID, maxIDLen), runewidth.FillRight(g.Title, maxTitleLen), g.Description)
	}

	fmt.Println()
	fmt.Println("Run 'match3 play <id>' to play a mode.")
}

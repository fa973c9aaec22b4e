package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-adventure/internal/games/adventure/levels"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure/world"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List all available maps",
	Long: `Shows the maps shipped with the game plus any found in --maps.
A map in --maps replaces a built-in map with the same ID.`,
	Run: runMaps,
}

func runMaps(_ *cobra.Command, _ []string) {
	all, err := levels.All(flagMapsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No maps available.")
		return
	}

	fmt.Println("Available maps:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxNameLen := 2, 4 // "ID", "Name" headers
	for _, lvl := range all {
		maxIDLen = max(maxIDLen, len(lvl.ID))
		maxNameLen = max(maxNameLen, len(lvl.Name))
	}

	fmt.Printf("  %-*s  %-*s  %-7s  %-7s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Size", "Enemies", "Source")
	fmt.Printf("  %-*s  %-*s  %-7s  %-7s  %s\n", maxIDLen, "--", maxNameLen, "----", "----", "-------", "------")

	for _, lvl := range all {
		source := lvl.FilePath
		if source == "" {
			source = "built-in"
		}

		enemies := "?"
		if grid, gridErr := lvl.Grid(); gridErr == nil {
			enemies = fmt.Sprint(len(grid.Find(world.KindEnemy)))
		} else {
			source += " (invalid: " + gridErr.Error() + ")"
		}

		size := fmt.Sprintf("%dx%d", lvl.Width(), lvl.Height())
		fmt.Printf("  %-*s  %-*s  %-7s  %-7s  %s\n", maxIDLen, lvl.ID, maxNameLen, lvl.Name, size, enemies, source)
	}

	fmt.Println()
	fmt.Println("Run 'adventure play <id>' to play a map.")
}

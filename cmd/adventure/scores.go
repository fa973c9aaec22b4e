package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-adventure/internal/games/adventure/levels"
	"github.com/vovakirdan/tui-adventure/internal/platform/tui"
	"github.com/vovakirdan/tui-adventure/internal/storage"
)

var (
	flagScoresPlain bool
	flagScoresClear bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [map]",
	Short: "Show coin totals for a map",
	Long: `Display the best finished sessions for a map, ranked by coins.

In a terminal this opens an interactive scoreboard (left/right switch maps).
Use --plain for a text table, or when piping the output.

Examples:
  adventure scores
  adventure scores grove --plain
  adventure scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a text table instead of the interactive view")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded sessions for the map")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of sessions to show")
}

func runScores(_ *cobra.Command, args []string) {
	mapID := levels.DefaultID
	if len(args) > 0 {
		mapID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	maps := knownMaps(store)
	title := mapID
	for _, m := range maps {
		if m.ID == mapID {
			title = m.Title
		}
	}

	if flagScoresClear {
		if err := store.ClearScores(mapID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return
	}

	if !flagScoresPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, maps, mapID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
		}
		return
	}

	scores, err := store.TopScores(mapID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("Coin Totals - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'adventure play %s' to set the first score!\n", mapID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-16s  %s\n", "Rank", "Coins", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-16s  %s\n", "----", "-----", "------", "----")

	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-16s  %s\n", i+1, entry.Coins, player, dateStr)
	}

	fmt.Println()
	if stats, statsErr := store.Stats(mapID); statsErr == nil {
		fmt.Printf("Best: %d  Sessions: %d  Average: %.1f\n", stats.BestCoins, stats.Sessions, stats.AvgCoins)
		if !stats.LastPlayed.IsZero() {
			fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
		}
	}
}

// knownMaps lists loadable maps followed by maps that only exist in the
// database, such as custom maps from another --maps directory.
func knownMaps(store *storage.Store) []tui.MapInfo {
	var maps []tui.MapInfo
	seen := make(map[string]bool)

	all, err := levels.All(flagMapsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load maps: %v\n", err)
	}
	for _, lvl := range all {
		maps = append(maps, tui.MapInfo{ID: lvl.ID, Title: lvl.Name})
		seen[lvl.ID] = true
	}

	played, err := store.PlayedMaps()
	if err != nil {
		return maps
	}
	for _, id := range played {
		if !seen[id] {
			maps = append(maps, tui.MapInfo{ID: id, Title: id})
		}
	}
	return maps
}

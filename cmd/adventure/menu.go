package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure/levels"
	"github.com/vovakirdan/tui-adventure/internal/platform/tui"
	"github.com/vovakirdan/tui-adventure/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a map picker menu",
	Long: `Start the game in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a map, Tab for scores.
After quitting a map, you return to the menu.

Examples:
  adventure menu
  adventure menu --maps ./maps --difficulty easy`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	all, err := levels.All(flagMapsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameCfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(io.Discard, "adventure")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var saver tui.ScoreSaver
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	} else {
		saver = store
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		FrameRate: gameCfg.Display.FrameRate,
		CellSize:  gameCfg.Display.CellSize,
		Seed:      flagSeed,
	}

	lastID := levels.DefaultID
	for {
		// Rebuilt each round so best totals stay current
		items := make([]tui.MenuItem, 0, len(all))
		for _, lvl := range all {
			item := tui.MenuItem{
				MapID: lvl.ID,
				Title: lvl.Name,
				Size:  fmt.Sprintf("%dx%d", lvl.Width(), lvl.Height()),
			}
			if store != nil {
				if best, bestErr := store.HighScore(lvl.ID); bestErr == nil {
					item.Best = best
				}
			}
			items = append(items, item)
		}

		menuResult, err := tui.RunMenu(items, lastID, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}
		lastID = menuResult.MapID

		if menuResult.WantsScoreboard {
			if store == nil {
				continue
			}
			maps := make([]tui.MapInfo, 0, len(items))
			for _, item := range items {
				maps = append(maps, tui.MapInfo{ID: item.MapID, Title: item.Title})
			}
			if sbErr := tui.RunScoreboard(store, maps, lastID, cfg.ScreenW, cfg.ScreenH); sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			continue
		}

		var level levels.Level
		for _, lvl := range all {
			if lvl.ID == lastID {
				level = lvl
			}
		}

		game := adventure.New(level, gameCfg, logger)
		if runErr := tui.Run(game, saver, cfg, playerName()); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		}
	}
}

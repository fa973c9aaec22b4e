package main

import (
	"errors"
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

var playCmd = &cobra.Command{
	Use:   "play [map]",
	Short: "Play a map",
	Long: `Start playing the specified map, or the classic map if none is given.

Controls:
  W/A/S/D, arrows - Move
  E               - Interact
  J               - Attack
  P/Esc           - Pause
  R               - Restart (after game over)
  ?               - Toggle help
  Q/Ctrl+C        - Quit

Difficulty options:
  easy   - More lives, slower patrols, speeds up as you collect coins
  normal - Patrols speed up as you collect coins
  hard   - Fewer lives, fast patrols from the start
  fixed  - Patrol speed never changes

Examples:
  adventure play
  adventure play grove
  adventure play --difficulty hard
  adventure play mymap --maps ./maps
  adventure play --config ./my-adventure.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	mapID := levels.DefaultID
	if len(args) > 0 {
		mapID = args[0]
	}

	level, err := levels.Find(flagMapsDir, mapID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, levels.ErrLevelNotFound) {
			fmt.Fprintln(os.Stderr, "Run 'adventure maps' to see available maps.")
		}
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

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
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

	// Open score storage
	var saver tui.ScoreSaver
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
	} else {
		saver = store
	}

	game := adventure.New(level, gameCfg, logger)
	logger.Info("starting game", "map", level.ID, "difficulty", gameCfg.Difficulty.Enabled, "lives", gameCfg.Gameplay.Lives)

	runErr := tui.Run(game, saver, cfg, playerName())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}

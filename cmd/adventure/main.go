// adventure is a terminal adventure game: explore a fog-covered map, pick
// up coins and keep away from patrolling enemies.
//
// Usage:
//
//	adventure maps             - List available maps
//	adventure menu             - Pick a map interactively
//	adventure play [map]       - Play a map (default: classic)
//	adventure scores [map]     - Show coin totals for a map
//	adventure serve            - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>        - Coin placement seed (0 = use config)
//	--db <path>           - Database path (default: ~/.adventure/scores.db)
//	--maps <dir>          - Extra map directory
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-adventure/internal/config"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagMapsDir    string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "adventure",
	Short: "TUI Adventure - explore, collect coins, avoid the patrols",
	Long: `TUI Adventure is a terminal game played on a grid map. The map is
hidden until you walk near it, coins are scattered across open ground and
enemies patrol the corridors. Touching an enemy costs a life.

Available commands:
  maps     - Show all available maps
  menu     - Interactive map picker
  play     - Play a map
  scores   - View coin totals
  serve    - Start SSH server for remote play

Examples:
  adventure maps
  adventure play
  adventure play grove --difficulty hard
  adventure serve --ssh :2222
  adventure scores classic`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Coin placement seed (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.adventure/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagMapsDir, "maps", "", "Directory with extra maps (.txt, .yaml)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the command logger. Without --log-file it writes to
// fallback, which is io.Discard while the TUI owns the terminal. The
// returned func closes the log file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		if dir := filepath.Dir(flagLogFile); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig reads the game config and applies the --difficulty preset.
func loadConfig() (config.AdventureConfig, error) {
	cfg, err := config.LoadAdventure(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyAdventurePreset(&cfg, preset)
	}
	return cfg, nil
}

// playerName returns the local user name recorded with scores.
func playerName() string {
	for _, key := range []string{"USER", "USERNAME", "LOGNAME"} {
		if name := os.Getenv(key); name != "" {
			return name
		}
	}
	return ""
}

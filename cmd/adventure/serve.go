package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-adventure/internal/games/adventure"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure/levels"
	"github.com/vovakirdan/tui-adventure/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeMap    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the adventure SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session. The map is taken from the SSH
command, falling back to --map. Scores are stored per-server (all users
share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.adventure/host_key

Examples:
  adventure serve                           # Listen on :23234 with auto-generated key
  adventure serve --ssh :2222               # Listen on port 2222
  adventure serve --host-key ./my_host_key  # Use specific host key
  adventure serve --maps ./maps --map cave  # Serve a custom map by default

Users can connect with:
  ssh localhost -p 23234
  ssh -t localhost -p 23234 grove`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeMap, "map", levels.DefaultID, "Map played when the SSH command names none")
}

func runServe(_ *cobra.Command, _ []string) {
	gameCfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Fail early on a bad default map rather than on the first connection.
	if _, err := levels.Find(flagMapsDir, flagServeMap); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(os.Stderr, "adventure-ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.FrameRate = gameCfg.Display.FrameRate
	cfg.CellSize = gameCfg.Display.CellSize
	cfg.Seed = flagSeed
	cfg.Logger = logger
	cfg.NewGame = func(mapID string, l *log.Logger) (tui.Game, error) {
		if mapID == "" {
			mapID = flagServeMap
		}
		level, err := levels.Find(flagMapsDir, mapID)
		if err != nil {
			return nil, err
		}
		return adventure.New(level, gameCfg, l), nil
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	fmt.Printf("Starting adventure SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-adventure/internal/core"
)

// Game is what the platform drives. Games hold no Bubble Tea state; the
// platform handles input mapping, timing and rendering.
type Game interface {
	// ID identifies the map, used as the score key.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts or restarts the session.
	Reset(cfg core.RuntimeConfig) error

	// Step applies the actions collected since the last frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the screen buffer.
	Render(dst *core.Screen)

	// State returns coins, lives and flags.
	State() core.GameState

	// Resize informs the game of a new terminal size.
	Resize(width, height int)

	// Close stops background work.
	Close()
}

// ScoreSaver persists the result of a finished session.
type ScoreSaver interface {
	SaveScore(mapID, player string, coins int) (int64, error)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for playing one map.
type Model struct {
	game       Game
	screen     *core.Screen
	store      ScoreSaver
	config     core.RuntimeConfig
	player     string
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether the score has been saved for the current game over
}

// NewModel creates a new Bubble Tea model for an already reset game.
// store may be nil.
func NewModel(game Game, store ScoreSaver, cfg core.RuntimeConfig, player string) Model {
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:      store,
		config:     cfg,
		player:     player,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The game keeps its state;
// only the view and the cell pixel size change.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick flushes collected input into the game.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	if m.gameState.GameOver && !result.State.GameOver {
		// Restarted
		m.scoreSaved = false
	}
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		if m.store != nil && m.gameState.Coins > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.player, m.gameState.Coins)
		}
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.FrameRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".adventure", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run resets the game, plays it until the user quits and stops it.
func Run(game Game, store ScoreSaver, cfg core.RuntimeConfig, player string) error {
	if err := game.Reset(cfg); err != nil {
		return err
	}
	defer game.Close()

	p := tea.NewProgram(
		NewModel(game, store, cfg, player),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// Package adventure adapts an engine session to the platform game loop:
// it turns input frames into session commands and draws snapshots onto a
// character screen.
package adventure

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-adventure/internal/config"
	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure/engine"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure/levels"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure/world"
)

// Layout rows.
const (
	statusRow = 0
	mapTop    = 2
)

// Symbols drawn by the renderer.
const (
	fogSymbol = '░'
)

// eventBuffer is the subscriber capacity. Step drains it every frame.
const eventBuffer = 64

// Game runs one level inside the terminal platform.
type Game struct {
	level  levels.Level
	cfg    config.AdventureConfig
	logger *log.Logger

	base     context.Context
	rc       core.RuntimeConfig
	session  *engine.Session
	events   *engine.Subscriber
	ctx      context.Context
	cancel   context.CancelFunc
	message  string
	cellSize int
}

// New creates a game for level. Call Reset before the first Step.
func New(level levels.Level, cfg config.AdventureConfig, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{level: level, cfg: cfg, logger: logger, base: context.Background()}
}

// SetContext sets the parent context for sessions started by Reset.
// Cancelling it stops the running session.
func (g *Game) SetContext(ctx context.Context) {
	g.base = ctx
}

// ID returns the level identifier, used as the score key.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level display name.
func (g *Game) Title() string {
	if g.level.Name != "" {
		return g.level.Name
	}
	return g.level.ID
}

// Reset stops any running session and starts a fresh one.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	g.Close()

	cfg := g.cfg
	if rc.CellSize > 0 {
		cfg.Display.CellSize = rc.CellSize
	}
	opts := []engine.Option{engine.WithConfig(cfg), engine.WithLogger(g.logger)}
	if rc.Seed != 0 {
		opts = append(opts, engine.WithSeed(rc.Seed))
	}

	session, err := engine.New(g.level, opts...)
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	events := session.Subscribe(eventBuffer)
	g.ctx, g.cancel = context.WithCancel(g.base)
	if err := session.Start(g.ctx); err != nil {
		g.cancel()
		return fmt.Errorf("start session: %w", err)
	}

	g.rc = rc
	g.session = session
	g.events = events
	g.message = ""
	g.cellSize = cfg.Display.CellSize
	if rc.ScreenW > 0 {
		g.Resize(rc.ScreenW, rc.ScreenH)
	}
	return nil
}

// Close stops the running session, if any.
func (g *Game) Close() {
	if g.session == nil {
		return
	}
	g.session.Unsubscribe(g.events)
	if err := g.session.Stop(); err != nil {
		g.logger.Error("session stopped with error", "err", err)
	}
	g.cancel()
	g.session = nil
	g.events = nil
}

// Resize recomputes the pixel size of a cell from the window width so
// proximity scales with the view.
func (g *Game) Resize(width, height int) {
	g.rc.ScreenW, g.rc.ScreenH = width, height
	if g.session == nil {
		return
	}
	cols := g.level.Width()
	if cols == 0 {
		return
	}
	size := max(width*g.cfg.Display.CellSize/cols, 1)
	if size == g.cellSize {
		return
	}
	if err := g.session.SetCellSize(g.ctx, size); err != nil {
		g.logger.Debug("cell size not applied", "err", err)
		return
	}
	g.cellSize = size
}

// Step feeds one frame of input to the session.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	for _, action := range in.Actions {
		switch action {
		case core.ActionUp:
			g.move(world.DirUp)
		case core.ActionDown:
			g.move(world.DirDown)
		case core.ActionLeft:
			g.move(world.DirLeft)
		case core.ActionRight:
			g.move(world.DirRight)
		case core.ActionInteract:
			g.act(g.session.Interact)
		case core.ActionAttack:
			g.act(g.session.Attack)
		case core.ActionPause:
			g.togglePause()
		case core.ActionRestart:
			if g.State().GameOver {
				if err := g.Reset(g.rc); err != nil {
					g.logger.Error("restart failed", "err", err)
				}
				return core.StepResult{State: g.State()}
			}
		}
	}

	g.drainEvents()
	return core.StepResult{State: g.State(), Message: g.message}
}

// drainEvents consumes whatever the session has emitted since the last
// frame without blocking. Patrol hits arrive here between key presses.
func (g *Game) drainEvents() {
	for {
		select {
		case evt := <-g.events.Events():
			g.handleEvent(evt)
		default:
			return
		}
	}
}

func (g *Game) handleEvent(evt world.Event) {
	switch evt := evt.(type) {
	case world.CoinCollectedEvent:
		g.message = fmt.Sprintf("You found a coin! (%d)", evt.Coins)
	case world.CollisionEvent:
		g.message = fmt.Sprintf("You were hit! Lives %d", evt.Lives)
	case world.GameOverEvent:
		g.message = fmt.Sprintf("Game over! You collected %d coins.", evt.Coins)
	}
}

func (g *Game) move(dir world.Direction) {
	_, err := g.session.Move(g.ctx, dir)
	g.ignorable(err)
}

func (g *Game) act(fn func(context.Context) (world.ActionResult, error)) {
	res, err := fn(g.ctx)
	if g.ignorable(err) {
		return
	}
	g.message = res.Message
}

func (g *Game) togglePause() {
	snap := g.session.Snapshot()
	if snap.GameOver {
		return
	}
	if err := g.session.SetPaused(g.ctx, !snap.Paused); err != nil {
		g.logger.Debug("pause not applied", "err", err)
	}
}

// ignorable reports whether err should end the current action. Expected
// refusals stay silent, anything else is logged.
func (g *Game) ignorable(err error) bool {
	if err == nil {
		return false
	}
	if !errors.Is(err, engine.ErrGameOver) && !errors.Is(err, engine.ErrPaused) {
		g.logger.Error("command failed", "err", err)
	}
	return true
}

// Snapshot returns the latest session snapshot, nil before Reset.
func (g *Game) Snapshot() *engine.Snapshot {
	if g.session == nil {
		return nil
	}
	return g.session.Snapshot()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	snap := g.Snapshot()
	if snap == nil {
		return core.GameState{}
	}
	return core.GameState{
		Coins:    snap.Coins,
		Lives:    snap.Lives,
		GameOver: snap.GameOver,
		Paused:   snap.Paused,
	}
}

// Render draws the status bar, the visible part of the map and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.Snapshot()
	if snap == nil {
		return
	}

	status := fmt.Sprintf("Position %v | Coins %d | Lives %d", snap.Player, snap.Coins, snap.Lives)
	dst.DrawColoredText(1, statusRow, status, core.ColorBrightWhite)
	if title := g.Title(); len([]rune(status))+len([]rune(title))+4 < dst.Width() {
		dst.DrawColoredText(dst.Width()-len([]rune(title))-1, statusRow, title, core.ColorGray)
	}
	for x := range dst.Width() {
		dst.SetColored(x, statusRow+1, '─', core.ColorDarkGray)
	}

	g.renderMap(dst, snap)

	if g.message != "" {
		dst.DrawColoredText(1, dst.Height()-1, g.message, core.ColorYellow)
	}

	switch {
	case snap.GameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Coins: %d", snap.Coins), "R restart  Q quit")
	case snap.Paused:
		g.renderOverlay(dst, "Paused", "", "P to continue")
	}
}

// viewport returns the screen origin of cell (0,0). Maps that fit are
// centered horizontally; larger maps scroll to keep the player in view.
func (g *Game) viewport(dst *core.Screen, snap *engine.Snapshot) (ox, oy int) {
	viewW := dst.Width()
	viewH := dst.Height() - mapTop - 1

	if snap.Width <= viewW {
		ox = (viewW - snap.Width) / 2
	} else {
		ox = -core.Clamp(snap.Player.X-viewW/2, 0, snap.Width-viewW)
	}
	if snap.Height <= viewH {
		oy = mapTop
	} else {
		oy = mapTop - core.Clamp(snap.Player.Y-viewH/2, 0, snap.Height-viewH)
	}
	return ox, oy
}

func (g *Game) renderMap(dst *core.Screen, snap *engine.Snapshot) {
	ox, oy := g.viewport(dst, snap)
	bottom := dst.Height() - 1

	for y := 0; y < snap.Height; y++ {
		sy := oy + y
		if sy < mapTop || sy >= bottom {
			continue
		}
		for x := 0; x < snap.Width; x++ {
			sx := ox + x
			if sx < 0 || sx >= dst.Width() {
				continue
			}
			cell := snap.Cell(x, y)
			switch {
			case !cell.Revealed:
				dst.SetColored(sx, sy, fogSymbol, core.ColorDarkGray)
			case snap.Player == world.C(x, y) && snap.EnemyAt(snap.Player) && cell.HasElement:
				// An enemy standing on the player hides the player glyph.
				dst.SetColored(sx, sy, cell.Descriptor.Symbol, cell.Descriptor.Color)
			case snap.Player == world.C(x, y):
				dst.SetColored(sx, sy, world.PlayerSymbol, core.ColorBrightWhite)
			case cell.HasElement:
				dst.SetColored(sx, sy, cell.Descriptor.Symbol, cell.Descriptor.Color)
			}
		}
	}
}

func (g *Game) renderOverlay(dst *core.Screen, title, line, hint string) {
	w := max(len(title), len(line), len(hint)) + 6
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(w, 5)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightWhite)
	if line != "" {
		dst.DrawTextCentered(box.Y+2, line, core.ColorGold)
	}
	dst.DrawTextCentered(box.Y+3, hint, core.ColorGray)
}

package adventure

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-adventure/internal/config"
	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure/levels"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure/world"
)

func newGame(t *testing.T, lives int, rows ...string) *Game {
	t.Helper()
	cfg := config.DefaultAdventureConfig()
	cfg.Gameplay.Lives = lives
	cfg.Gameplay.CoinAttempts = 0
	cfg.Gameplay.RevealRadius = 1
	cfg.Enemies.PatrolIntervalMS = 3600 * 1000
	cfg.Enemies.MinIntervalMS = 3600 * 1000

	g := New(levels.Level{ID: "test", Name: "Test", Rows: rows, Spawn: world.C(1, 1)}, cfg, nil)
	if err := g.Reset(core.RuntimeConfig{}); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestRenderStatusFogAndPlayer(t *testing.T) {
	g := newGame(t, 3, "#####", "#   #", "#####")
	screen := core.NewScreen(40, 8)
	g.Render(screen)

	if row := screen.Row(0); !strings.Contains(row, "Position (1,1) | Coins 0 | Lives 3") {
		t.Errorf("status row = %q", row)
	}
	// 5 columns centered in 40 start at x=17, the map starts on row 2.
	if got := screen.Get(18, 3); got != world.PlayerSymbol {
		t.Errorf("player cell = %q", got)
	}
	if got := screen.Get(20, 3); got != fogSymbol {
		t.Errorf("unrevealed cell = %q, expected fog", got)
	}
	if got := screen.Get(17, 2); got != '▣' {
		t.Errorf("revealed wall = %q", got)
	}

	g.Step(frame(core.ActionRight))
	g.Render(screen)
	if row := screen.Row(0); !strings.Contains(row, "Position (2,1)") {
		t.Errorf("status row after move = %q", row)
	}
	if got := screen.Get(20, 3); got == fogSymbol {
		t.Error("cell next to the player still fogged after move")
	}
}

func TestStepActionsSetMessage(t *testing.T) {
	g := newGame(t, 3, "######", "#  V #", "######")

	res := g.Step(frame(core.ActionAttack))
	if res.Message != "You swing at the air." {
		t.Errorf("Message = %q", res.Message)
	}

	res = g.Step(frame(core.ActionRight, core.ActionAttack))
	if res.Message != "You attack the vegetation." {
		t.Errorf("Message = %q", res.Message)
	}

	screen := core.NewScreen(30, 8)
	g.Render(screen)
	if row := screen.Row(7); !strings.Contains(row, "You attack the vegetation.") {
		t.Errorf("message row = %q", row)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newGame(t, 1, "#####", "#  I#", "#####")

	res := g.Step(frame(core.ActionRight))
	if !res.State.GameOver || res.State.Lives != 0 {
		t.Fatalf("state after contact = %+v", res.State)
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("game over overlay not drawn")
	}

	// Movement is ignored once the game is over.
	g.Step(frame(core.ActionLeft))
	if pos := g.Snapshot().Player; pos != world.C(2, 1) {
		t.Errorf("player moved after game over: %v", pos)
	}

	res = g.Step(frame(core.ActionRestart))
	if res.State.GameOver || res.State.Lives != 1 {
		t.Errorf("state after restart = %+v", res.State)
	}
	if pos := g.Snapshot().Player; pos != world.C(1, 1) {
		t.Errorf("player after restart at %v", pos)
	}
}

func TestCollisionAndGameOverMessages(t *testing.T) {
	g := newGame(t, 2, "#####", "#  I#", "#####")

	res := g.Step(frame(core.ActionRight))
	if res.Message != "You were hit! Lives 1" {
		t.Errorf("Message after hit = %q", res.Message)
	}
	if res.State.GameOver {
		t.Fatal("game over after the first hit")
	}

	res = g.Step(frame(core.ActionLeft, core.ActionRight))
	if !res.State.GameOver {
		t.Fatalf("state after second hit = %+v", res.State)
	}
	if res.Message != "Game over! You collected 0 coins." {
		t.Errorf("Message after game over = %q", res.Message)
	}

	// The notice is emitted once and stays until restart clears it.
	res = g.Step(frame())
	if res.Message != "Game over! You collected 0 coins." {
		t.Errorf("Message on idle frame = %q", res.Message)
	}
	res = g.Step(frame(core.ActionRestart))
	if res.Message != "" {
		t.Errorf("Message after restart = %q", res.Message)
	}
}

func TestCoinMessageFromEvents(t *testing.T) {
	g := newGame(t, 3, "#####", "# M #", "#####")

	res := g.Step(frame(core.ActionRight))
	if res.Message != "You found a coin! (1)" {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestEnemyDrawnOverPlayer(t *testing.T) {
	cfg := config.DefaultAdventureConfig()
	cfg.Gameplay.Lives = 1 << 20
	cfg.Gameplay.CoinAttempts = 0
	cfg.Gameplay.RevealRadius = 1
	cfg.Enemies.PatrolIntervalMS = 1
	cfg.Enemies.MinIntervalMS = 1

	// The enemy bounces between (1,0) and the player's cell.
	g := New(levels.Level{ID: "test", Name: "Test", Rows: []string{"#I#", "# #", "###"}, Spawn: world.C(1, 1)}, cfg, nil)
	if err := g.Reset(core.RuntimeConfig{}); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	t.Cleanup(g.Close)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		g.Step(frame(core.ActionPause))
		snap := g.Snapshot()
		if snap.Paused && snap.EnemyAt(snap.Player) {
			// Tall enough that the pause overlay sits below the map.
			screen := core.NewScreen(60, 20)
			g.Render(screen)
			enemy := snap.Cell(1, 1).Descriptor.Symbol
			// 3 columns centered in 60 start at x=28.
			if got := screen.Get(29, 3); got != enemy {
				t.Errorf("shared cell = %q, expected enemy %q", got, enemy)
			}
			return
		}
		g.Step(frame(core.ActionPause))
		time.Sleep(time.Millisecond)
	}
	t.Fatal("enemy never reached the player cell")
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	g := newGame(t, 3, "#####", "#   #", "#####")
	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionRestart))
	if pos := g.Snapshot().Player; pos != world.C(2, 1) {
		t.Errorf("restart reset a running game: %v", pos)
	}
}

func TestPauseToggle(t *testing.T) {
	g := newGame(t, 3, "#####", "#   #", "#####")

	if st := g.Step(frame(core.ActionPause)).State; !st.Paused {
		t.Fatal("not paused")
	}
	g.Step(frame(core.ActionRight))
	if pos := g.Snapshot().Player; pos != world.C(1, 1) {
		t.Errorf("moved while paused: %v", pos)
	}
	if st := g.Step(frame(core.ActionPause)).State; st.Paused {
		t.Fatal("still paused")
	}
	g.Step(frame(core.ActionRight))
	if pos := g.Snapshot().Player; pos != world.C(2, 1) {
		t.Errorf("did not move after resume: %v", pos)
	}
}

func TestResizeScalesCellSize(t *testing.T) {
	g := newGame(t, 3, "#####", "#   #", "#####")
	g.Resize(100, 30)
	if got := g.Snapshot().CellSize; got != 200 {
		t.Errorf("CellSize = %d, expected 200", got)
	}
	g.Resize(0, 30)
	if got := g.Snapshot().CellSize; got != 1 {
		t.Errorf("CellSize = %d, expected minimum 1", got)
	}
}

func TestScrollKeepsPlayerVisible(t *testing.T) {
	rows := []string{
		"##############################",
		"#                            #",
		"##############################",
	}
	g := newGame(t, 3, rows...)
	for range 20 {
		g.Step(frame(core.ActionRight))
	}

	screen := core.NewScreen(10, 6)
	g.Render(screen)
	if !strings.ContainsRune(screen.String(), world.PlayerSymbol) {
		t.Error("player scrolled out of view")
	}
}

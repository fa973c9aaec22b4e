package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/storage"
)

type fakeGame struct {
	state   core.GameState
	steps   [][]core.Action
	resized [2]int
	closed  bool
}

func (g *fakeGame) ID() string    { return "classic" }
func (g *fakeGame) Title() string { return "Classic" }
func (g *fakeGame) Close()        { g.closed = true }

func (g *fakeGame) Reset(core.RuntimeConfig) error {
	g.state = core.GameState{Lives: 3}
	return nil
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, in.Clone().Actions)
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "map")
}

func (g *fakeGame) State() core.GameState {
	return g.state
}

func (g *fakeGame) Resize(width, height int) {
	g.resized = [2]int{width, height}
}

type fakeSaver struct {
	saved []storage.ScoreEntry
}

func (s *fakeSaver) SaveScore(mapID, player string, coins int) (int64, error) {
	s.saved = append(s.saved, storage.ScoreEntry{MapID: mapID, Player: player, Coins: coins})
	return int64(len(s.saved)), nil
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapMapsBindings(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runeKey('w'), core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{runeKey('a'), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{runeKey('e'), core.ActionInteract, false},
		{runeKey('j'), core.ActionAttack, false},
		{runeKey('p'), core.ActionPause, false},
		{runeKey('r'), core.ActionRestart, false},
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('x'), core.ActionNone, false},
	}

	for _, tc := range tests {
		action, quit := keys.MapKey(tc.msg)
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.action, tc.quit)
		}
	}
}

func TestModelFlushesInputOnTick(t *testing.T) {
	game := &fakeGame{state: core.GameState{Lives: 3}}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 6, FrameRate: 30}, "ana")

	next, _ := m.Update(runeKey('d'))
	next, _ = next.Update(runeKey('d'))
	next, _ = next.Update(runeKey('e'))
	next, _ = next.Update(TickMsg(time.Now()))
	next.Update(TickMsg(time.Now()))

	if len(game.steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(game.steps))
	}
	want := []core.Action{core.ActionRight, core.ActionRight, core.ActionInteract}
	got := game.steps[0]
	if len(got) != len(want) {
		t.Fatalf("first frame = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("first frame = %v, expected %v", got, want)
		}
	}
	if len(game.steps[1]) != 0 {
		t.Errorf("input not cleared after tick: %v", game.steps[1])
	}
}

func TestModelSavesScoreOncePerGameOver(t *testing.T) {
	game := &fakeGame{state: core.GameState{Lives: 3}}
	saver := &fakeSaver{}
	var m tea.Model = NewModel(game, saver, core.RuntimeConfig{ScreenW: 20, ScreenH: 6}, "ana")

	game.state = core.GameState{Coins: 4, GameOver: true}
	m, _ = m.Update(TickMsg(time.Now()))
	m, _ = m.Update(TickMsg(time.Now()))
	if len(saver.saved) != 1 {
		t.Fatalf("expected 1 save, got %d", len(saver.saved))
	}
	if got := saver.saved[0]; got.MapID != "classic" || got.Player != "ana" || got.Coins != 4 {
		t.Errorf("saved %+v", got)
	}

	// Restart, then lose again
	game.state = core.GameState{Lives: 3}
	m, _ = m.Update(TickMsg(time.Now()))
	game.state = core.GameState{Coins: 2, GameOver: true}
	m.Update(TickMsg(time.Now()))
	if len(saver.saved) != 2 {
		t.Errorf("expected a second save after restart, got %d", len(saver.saved))
	}
}

func TestModelSkipsEmptyScores(t *testing.T) {
	game := &fakeGame{state: core.GameState{GameOver: true}}
	saver := &fakeSaver{}
	m := NewModel(game, saver, core.RuntimeConfig{ScreenW: 20, ScreenH: 6}, "")
	m.Update(TickMsg(time.Now()))
	if len(saver.saved) != 0 {
		t.Errorf("saved a session without coins: %+v", saver.saved)
	}
}

func TestModelQuitAndResize(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 6}, "")

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if game.resized != [2]int{120, 40} {
		t.Errorf("game saw resize %v", game.resized)
	}
	if view := next.View(); !strings.Contains(view, "map") {
		t.Errorf("view missing game render: %q", view)
	}

	next, cmd := next.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if view := next.View(); view != "" {
		t.Errorf("view after quit = %q", view)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawColoredText(0, 0, "ab", core.ColorGold)
	s.DrawText(2, 0, "cd")
	s.SetColored(0, 1, '♦', core.ColorGold)

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd", "♦"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q: %q", want, out)
		}
	}
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(lines))
	}
}

func TestScoreRows(t *testing.T) {
	rows := ScoreRows([]storage.ScoreEntry{
		{Coins: 9, Player: "ana"},
		{Coins: 3},
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "#1" || rows[0][1] != "9" || rows[0][2] != "ana" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1][2] != "-" {
		t.Errorf("anonymous player shown as %q", rows[1][2])
	}
}

package world

import "testing"

func TestPatrolSequence(t *testing.T) {
	g := mustGrid(t,
		"#####",
		"#I  #",
		"#   #",
		"#####",
	)
	p := NewPatrol(C(1, 1))

	type state struct {
		pos         Coord
		right, down bool
	}
	want := []state{
		{C(2, 1), true, true},   // right
		{C(3, 1), true, true},   // right
		{C(3, 2), false, true},  // right blocked, down, heading flips
		{C(2, 2), false, true},  // left
		{C(1, 2), false, true},  // left
		{C(1, 2), false, false}, // left and down blocked, vertical preference flips
		{C(1, 1), true, false},  // left blocked, up, heading flips
		{C(2, 1), true, false},  // right
	}

	for i, w := range want {
		p.Tick(g)
		if p.Pos != w.pos || p.MovingRight != w.right || p.PreferDown != w.down {
			t.Fatalf("tick %d: got pos=%v right=%v down=%v, expected pos=%v right=%v down=%v",
				i+1, p.Pos, p.MovingRight, p.PreferDown, w.pos, w.right, w.down)
		}
		if tile, _ := g.TileAt(p.Pos.X, p.Pos.Y); tile != IDEnemy {
			t.Fatalf("tick %d: grid and patrol disagree, %q at %v", i+1, tile, p.Pos)
		}
		if n := g.Count(IDEnemy); n != 1 {
			t.Fatalf("tick %d: %d enemies on grid", i+1, n)
		}
	}
}

func TestPatrolCorridorEnd(t *testing.T) {
	g := mustGrid(t, "I    ")
	p := NewPatrol(C(0, 0))

	tests := []struct {
		pos         Coord
		right, down bool
	}{
		{C(1, 0), true, true},
		{C(2, 0), true, true},
		{C(3, 0), true, true},
		{C(4, 0), true, true},
		{C(4, 0), true, false}, // end of row, down is off the map
		{C(4, 0), true, true},  // up is off the map too
	}

	for i, tt := range tests {
		step := p.Tick(g)
		if p.Pos != tt.pos || p.MovingRight != tt.right || p.PreferDown != tt.down {
			t.Fatalf("tick %d: got pos=%v right=%v down=%v, expected pos=%v right=%v down=%v",
				i+1, p.Pos, p.MovingRight, p.PreferDown, tt.pos, tt.right, tt.down)
		}
		if moved := i < 4; step.Moved != moved || step.Vertical {
			t.Errorf("tick %d: step = %+v", i+1, step)
		}
	}
}

func TestPatrolDeterminism(t *testing.T) {
	layout := []string{
		"##########",
		"#I   V  ##",
		"#  #   I #",
		"# M   #  #",
		"##########",
	}

	run := func() []Coord {
		g := mustGrid(t, layout...)
		var patrols []*Patrol
		for _, c := range g.Find(KindEnemy) {
			patrols = append(patrols, NewPatrol(c))
		}
		var trace []Coord
		for tick := 0; tick < 50; tick++ {
			for _, p := range patrols {
				p.Tick(g)
				trace = append(trace, p.Pos)
			}
		}
		return trace
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("trace lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("trace diverged at step %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPatrolBoxedInOnlyFlipsVertical(t *testing.T) {
	g := mustGrid(t,
		"###",
		"#I#",
		"###",
	)
	p := NewPatrol(C(1, 1))

	for i := 0; i < 4; i++ {
		step := p.Tick(g)
		if step.Moved {
			t.Fatalf("tick %d: boxed-in enemy moved", i+1)
		}
		if !p.MovingRight {
			t.Fatalf("tick %d: horizontal heading should not change", i+1)
		}
		if p.PreferDown != (i%2 == 1) {
			t.Fatalf("tick %d: PreferDown = %v", i+1, p.PreferDown)
		}
	}
}

func TestPatrolBlockedByOtherEnemy(t *testing.T) {
	g := mustGrid(t,
		"#II#",
		"#  #",
	)
	p := NewPatrol(C(1, 0))

	step := p.Tick(g)
	if !step.Vertical || p.Pos != C(1, 1) {
		t.Fatalf("expected vertical step to (1,1), got %+v", step)
	}
	if g.Count(IDEnemy) != 2 {
		t.Error("enemy lost or duplicated")
	}
}

func TestPatrolWalksOverCoinCellOnlyWhenEmpty(t *testing.T) {
	g := mustGrid(t, "IM ")
	p := NewPatrol(C(0, 0))

	p.Tick(g)
	// Coins are not empty cells, so the enemy cannot enter them
	if p.Pos != C(0, 0) {
		t.Errorf("enemy entered a coin cell: %v", p.Pos)
	}
	if tile, _ := g.TileAt(1, 0); tile != IDCoin {
		t.Errorf("coin disturbed: %q", tile)
	}
}

package world

import "testing"

func newResolver(t *testing.T, rows ...string) *Resolver {
	t.Helper()
	g := mustGrid(t, rows...)
	return &Resolver{
		Grid:         g,
		Fog:          NewFog(g.Width(), g.Height()),
		Vitals:       NewVitals(DefaultLives),
		RevealRadius: 1,
	}
}

func TestMoveIntoEmptyAndTraversable(t *testing.T) {
	r := newResolver(t,
		"#####",
		"#  V#",
		"#####",
	)
	p := &Player{Pos: C(1, 1)}

	out := r.Move(p, DirRight)
	if !out.Moved || p.Pos != C(2, 1) {
		t.Fatalf("move into empty: outcome %+v, pos %v", out, p.Pos)
	}
	out = r.Move(p, DirRight)
	if !out.Moved || p.Pos != C(3, 1) {
		t.Fatalf("move into vegetation: outcome %+v, pos %v", out, p.Pos)
	}
	// Vegetation stays on the grid under the player
	if tile, _ := r.Grid.TileAt(3, 1); tile != IDVegetation {
		t.Errorf("vegetation removed by walking over it: %q", tile)
	}
}

func TestMoveBlocked(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		from Coord
		dir  Direction
	}{
		{"wall", []string{"# "}, C(1, 0), DirLeft},
		{"top edge", []string{"  "}, C(0, 0), DirUp},
		{"right edge", []string{"  "}, C(1, 0), DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newResolver(t, tc.rows...)
			p := &Player{Pos: tc.from}
			before := r.Grid.Rows()
			revealed := r.Fog.Count()

			out := r.Move(p, tc.dir)
			if out.Moved {
				t.Fatal("blocked move reported success")
			}
			if p.Pos != tc.from {
				t.Errorf("player moved to %v", p.Pos)
			}
			if r.Fog.Count() != revealed {
				t.Error("blocked move revealed cells")
			}
			if after := r.Grid.Rows(); after[0] != before[0] {
				t.Errorf("blocked move changed grid: %q -> %q", before[0], after[0])
			}
			if p.Facing != tc.dir {
				t.Errorf("Facing = %v, expected %v", p.Facing, tc.dir)
			}
		})
	}
}

func TestMoveRevealsAroundTarget(t *testing.T) {
	r := newResolver(t,
		"     ",
		"     ",
		"     ",
	)
	p := &Player{Pos: C(0, 1)}
	out := r.Move(p, DirRight)

	// Radius 1 around (1,1): columns 0..2, rows 0..2
	if out.Revealed != 9 {
		t.Errorf("Revealed = %d, expected 9", out.Revealed)
	}
	if ok, _ := r.Fog.IsRevealed(3, 1); ok {
		t.Error("cell outside radius revealed")
	}
}

func TestCoinPickupIsCollectThenClear(t *testing.T) {
	r := newResolver(t, " MM ")
	p := &Player{Pos: C(0, 0)}

	out := r.Move(p, DirRight)
	if !out.Collected || out.Coins != 1 {
		t.Fatalf("first pickup: %+v", out)
	}
	if tile, _ := r.Grid.TileAt(1, 0); tile != Empty {
		t.Errorf("coin cell not cleared: %q", tile)
	}

	// Step off and back on: the coin is gone
	r.Move(p, DirLeft)
	out = r.Move(p, DirRight)
	if out.Collected {
		t.Error("same coin collected twice")
	}

	out = r.Move(p, DirRight)
	if !out.Collected || out.Coins != 2 {
		t.Errorf("second pickup: %+v", out)
	}
	if r.Vitals.Coins() != 2 {
		t.Errorf("Coins() = %d, expected 2", r.Vitals.Coins())
	}
}

func TestPlaceRevealsSpawn(t *testing.T) {
	r := newResolver(t, "   ", "   ")
	p := &Player{}
	n, err := r.Place(p, C(2, 1))
	if err != nil {
		t.Fatalf("Place failed: %v", err)
	}
	if n != 4 {
		t.Errorf("Place revealed %d cells, expected 4", n)
	}
	if _, err := r.Place(p, C(5, 5)); err == nil {
		t.Error("Place outside grid should fail")
	}
}

func TestInteractAndAttack(t *testing.T) {
	r := newResolver(t, " #  ")
	if err := r.Grid.RegisterElement('D', Descriptor{Name: "door", Interactable: true}); err != nil {
		t.Fatal(err)
	}
	//nolint:errcheck
	r.Grid.SetCell('D', 3, 0)

	p := &Player{Pos: C(0, 0), Facing: DirRight}
	if res := r.Interact(p); res.Element != "wall" || res.Message != "Nothing to interact with." {
		t.Errorf("interact with wall: %+v", res)
	}
	if res := r.Attack(p); res.Message != "You attack the wall." {
		t.Errorf("attack wall: %+v", res)
	}

	p = &Player{Pos: C(2, 0), Facing: DirRight}
	if res := r.Interact(p); res.Message != "You interact with the door." {
		t.Errorf("interact with door: %+v", res)
	}

	p = &Player{Pos: C(2, 0), Facing: DirUp}
	if res := r.Attack(p); res.Element != "" || res.Message != "You swing at the air." {
		t.Errorf("attack outside grid: %+v", res)
	}
}

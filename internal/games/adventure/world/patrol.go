package world

// Patrol is the state machine driving one enemy. Each tick it tries one
// horizontal step, then a vertical one, and adjusts its heading flags from
// the outcome.
type Patrol struct {
	Pos         Coord
	MovingRight bool
	PreferDown  bool
}

// NewPatrol creates a patrol at pos heading right and down.
func NewPatrol(pos Coord) *Patrol {
	return &Patrol{Pos: pos, MovingRight: true, PreferDown: true}
}

// PatrolStep records what one tick did.
type PatrolStep struct {
	From, To Coord
	Moved    bool
	Vertical bool
}

// Tick advances the patrol by at most one cell:
//
//   - horizontal move in the current heading succeeds: heading unchanged
//   - otherwise vertical move (down when PreferDown) succeeds: MovingRight flips
//   - both fail: PreferDown flips
func (p *Patrol) Tick(g *Grid) PatrolStep {
	step := PatrolStep{From: p.Pos, To: p.Pos}

	dx := -1
	if p.MovingRight {
		dx = 1
	}
	if next := p.Pos.Add(C(dx, 0)); g.MoveElement(p.Pos, next) == nil {
		p.Pos = next
		step.To, step.Moved = next, true
		return step
	}

	dy := -1
	if p.PreferDown {
		dy = 1
	}
	if next := p.Pos.Add(C(0, dy)); g.MoveElement(p.Pos, next) == nil {
		p.Pos = next
		p.MovingRight = !p.MovingRight
		step.To, step.Moved, step.Vertical = next, true, true
		return step
	}

	p.PreferDown = !p.PreferDown
	return step
}

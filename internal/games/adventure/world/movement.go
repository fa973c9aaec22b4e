package world

import "fmt"

// Player is the user-controlled actor. It is not stored in the grid; the
// cell under it keeps whatever identifier it had.
type Player struct {
	Pos    Coord
	Facing Direction
}

// MoveOutcome describes the result of one player move attempt.
type MoveOutcome struct {
	From, To  Coord
	Moved     bool
	Collected bool
	Coins     int // Coin total, set when Collected
	Revealed  int // Newly revealed cells
}

// ActionResult is the answer to an interact or attack command.
type ActionResult struct {
	Target  Coord
	Element string // Name of the faced element, empty when nothing is there
	Message string
}

// Resolver applies player commands to the world.
type Resolver struct {
	Grid         *Grid
	Fog          *Fog
	Vitals       *Vitals
	RevealRadius int
}

// Place puts the player at pos and reveals around it. It is used for the
// spawn, which counts as the first relocation.
func (r *Resolver) Place(p *Player, pos Coord) (int, error) {
	if !r.Grid.InBounds(pos) {
		return 0, fmt.Errorf("place player at %v: %w", pos, ErrOutOfBounds)
	}
	p.Pos = pos
	return r.Fog.Reveal(pos, r.RevealRadius), nil
}

// Move attempts to move the player one cell in dir. The target must be
// inside the grid and either empty or traversable. Blocked moves leave
// everything untouched.
func (r *Resolver) Move(p *Player, dir Direction) MoveOutcome {
	p.Facing = dir
	target := p.Pos.Step(dir)
	out := MoveOutcome{From: p.Pos, To: p.Pos}

	if !r.Grid.InBounds(target) {
		return out
	}
	if d, occupied := r.Grid.ElementAt(target.X, target.Y); occupied && !d.Traversable {
		return out
	}

	p.Pos = target
	out.To = target
	out.Moved = true
	out.Revealed = r.Fog.Reveal(target, r.RevealRadius)

	if _, ok := r.Grid.TakeCollectible(target); ok {
		out.Collected = true
		out.Coins = r.Vitals.AddCoin()
	}
	return out
}

// Interact inspects the cell the player faces.
func (r *Resolver) Interact(p *Player) ActionResult {
	target := p.Pos.Step(p.Facing)
	res := ActionResult{Target: target, Message: "Nothing to interact with."}
	if d, ok := r.Grid.ElementAt(target.X, target.Y); ok {
		res.Element = d.Name
		if d.Interactable {
			res.Message = fmt.Sprintf("You interact with the %s.", d.Name)
		}
	}
	return res
}

// Attack strikes the cell the player faces. It has no effect on the world.
func (r *Resolver) Attack(p *Player) ActionResult {
	target := p.Pos.Step(p.Facing)
	res := ActionResult{Target: target, Message: "You swing at the air."}
	if d, ok := r.Grid.ElementAt(target.X, target.Y); ok {
		res.Element = d.Name
		res.Message = fmt.Sprintf("You attack the %s.", d.Name)
	}
	return res
}

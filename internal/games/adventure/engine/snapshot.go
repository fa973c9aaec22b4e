package engine

import "github.com/vovakirdan/tui-adventure/internal/games/adventure/world"

// CellView is what an observer may know about one cell.
type CellView struct {
	ID         rune
	Descriptor world.Descriptor
	HasElement bool
	Revealed   bool
}

// EnemyView is the position of one patrolling enemy.
type EnemyView struct {
	Index int
	Pos   world.Coord
}

// Pixel projects the enemy onto pixel space.
func (e EnemyView) Pixel(cellSize int) world.Pixel {
	return e.Pos.Pixel(cellSize)
}

// Snapshot is an immutable copy of the session state taken after a command
// was applied. It is safe to share between goroutines.
type Snapshot struct {
	MapID         string
	Width         int
	Height        int
	Player        world.Coord
	Facing        world.Direction
	Enemies       []EnemyView
	Coins         int
	CoinsLeft     int
	Lives         int
	GameOver      bool
	Paused        bool
	CellSize      int
	RevealedCount int
	Tick          uint64 // Number of commands applied so far
	PatrolTicks   uint64 // Patrol steps applied so far

	tiles    [][]rune
	revealed [][]bool
	elements map[rune]world.Descriptor
}

// Cell returns the view of (x, y). Out of bounds cells return the zero view.
func (s *Snapshot) Cell(x, y int) CellView {
	if x < 0 || y < 0 || y >= s.Height || x >= s.Width {
		return CellView{}
	}
	id := s.tiles[y][x]
	view := CellView{ID: id, Revealed: s.revealed[y][x]}
	if id != world.Empty {
		view.Descriptor, view.HasElement = s.elements[id]
	}
	return view
}

// PlayerPixel returns the player's position in pixel space.
func (s *Snapshot) PlayerPixel() world.Pixel {
	return s.Player.Pixel(s.CellSize)
}

// EnemyAt reports whether an enemy occupies c.
func (s *Snapshot) EnemyAt(c world.Coord) bool {
	for _, e := range s.Enemies {
		if e.Pos == c {
			return true
		}
	}
	return false
}

package world

import "fmt"

// Coord is a position in cell space. X is the column, Y the row.
type Coord struct {
	X, Y int
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns the sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Step returns the neighbor in the given direction.
func (c Coord) Step(d Direction) Coord {
	return c.Add(d.Delta())
}

// Pixel projects the cell onto pixel space for the given cell size.
// The result is derived on every call and never stored.
func (c Coord) Pixel(cellSize int) Pixel {
	return Pixel{X: c.X * cellSize, Y: c.Y * cellSize}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Pixel is a position in the presentation coordinate space.
type Pixel struct {
	X, Y int
}

// Direction is one of the four movement directions. No diagonals exist.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Delta returns the unit vector of the direction.
func (d Direction) Delta() Coord {
	switch d {
	case DirUp:
		return Coord{0, -1}
	case DirDown:
		return Coord{0, 1}
	case DirLeft:
		return Coord{-1, 0}
	case DirRight:
		return Coord{1, 0}
	default:
		return Coord{}
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

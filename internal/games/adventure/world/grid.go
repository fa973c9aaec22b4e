package world

import (
	"fmt"
	"sort"
	"sync"

	"github.com/zyedidia/generic/mapset"
)

// Grid is the mutable character map. Rows all share the same width and every
// cell holds either Empty or a registered identifier.
//
// All mutation goes through the grid's lock, so the check-then-write sequence
// of MoveElement cannot interleave with another mover.
type Grid struct {
	mu     sync.RWMutex
	cells  [][]rune
	width  int
	height int
	reg    *Registry
}

// NewGrid builds a grid from row strings, one identifier per rune.
func NewGrid(rows []string, reg *Registry) (*Grid, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	if len(rows) == 0 {
		return nil, NewLoadError(CodeEmptyMap, 0, "map has no rows")
	}

	cells := make([][]rune, len(rows))
	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, NewLoadError(CodeEmptyMap, 1, "map rows are empty")
	}

	unknown := mapset.New[rune]()
	firstUnknown := 0
	for y, row := range rows {
		line := []rune(row)
		if len(line) != width {
			return nil, NewLoadError(CodeNotRectangular, y+1,
				"row has width %d, expected %d", len(line), width)
		}
		for _, id := range line {
			if !reg.Known(id) && !unknown.Has(id) {
				unknown.Put(id)
				if firstUnknown == 0 {
					firstUnknown = y + 1
				}
			}
		}
		cells[y] = line
	}
	if unknown.Size() > 0 {
		var ids []rune
		unknown.Each(func(id rune) { ids = append(ids, id) })
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		return nil, NewLoadError(CodeUnknownTile, firstUnknown,
			"unregistered element identifiers %q", string(ids))
	}

	return &Grid{cells: cells, width: width, height: len(rows), reg: reg}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Registry returns the element registry backing the grid.
func (g *Grid) Registry() *Registry { return g.reg }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// TileAt returns the raw identifier at (x, y).
func (g *Grid) TileAt(x, y int) (rune, bool) {
	if !g.InBounds(C(x, y)) {
		return Empty, false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells[y][x], true
}

// ElementAt returns the descriptor of the element at (x, y). It reports false
// for empty and out-of-bounds cells.
func (g *Grid) ElementAt(x, y int) (Descriptor, bool) {
	id, ok := g.TileAt(x, y)
	if !ok || id == Empty {
		return Descriptor{}, false
	}
	return g.reg.Lookup(id)
}

// SetCell writes id at (x, y) without any occupancy check.
func (g *Grid) SetCell(id rune, x, y int) error {
	if !g.InBounds(C(x, y)) {
		return fmt.Errorf("set %q at (%d,%d): %w", id, x, y, ErrOutOfBounds)
	}
	if !g.reg.Known(id) {
		return fmt.Errorf("set %q at (%d,%d): %w", id, x, y, ErrNotFound)
	}
	g.mu.Lock()
	g.cells[y][x] = id
	g.mu.Unlock()
	return nil
}

// ClearCell empties (x, y).
func (g *Grid) ClearCell(x, y int) error {
	return g.SetCell(Empty, x, y)
}

// RegisterElement adds a descriptor to the grid's registry.
func (g *Grid) RegisterElement(id rune, d Descriptor) error {
	return g.reg.Register(id, d)
}

// MoveElement relocates the identifier at src to dst. It fails when either
// end is outside the grid, when src is empty, or when dst is not empty. On
// failure the grid is unchanged.
func (g *Grid) MoveElement(src, dst Coord) error {
	if !g.InBounds(src) || !g.InBounds(dst) {
		return fmt.Errorf("move %v->%v: %w", src, dst, ErrOutOfBounds)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.cells[src.Y][src.X]
	if id == Empty {
		return fmt.Errorf("move %v->%v: %w", src, dst, ErrEmptySource)
	}
	if g.cells[dst.Y][dst.X] != Empty {
		return fmt.Errorf("move %v->%v: %w", src, dst, ErrOccupied)
	}
	g.cells[dst.Y][dst.X] = id
	g.cells[src.Y][src.X] = Empty
	return nil
}

// TakeCollectible clears c if it holds a collectible and returns its
// descriptor. Only one caller can take a given coin.
func (g *Grid) TakeCollectible(c Coord) (Descriptor, bool) {
	if !g.InBounds(c) {
		return Descriptor{}, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.cells[c.Y][c.X]
	if id == Empty {
		return Descriptor{}, false
	}
	d, ok := g.reg.Lookup(id)
	if !ok || d.Kind != KindCollectible {
		return Descriptor{}, false
	}
	g.cells[c.Y][c.X] = Empty
	return d, true
}

// Find returns the coordinates of every element of the given kind, in
// row-major order.
func (g *Grid) Find(kind Kind) []Coord {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Coord
	for y, row := range g.cells {
		for x, id := range row {
			if id == Empty {
				continue
			}
			if d, ok := g.reg.Lookup(id); ok && d.Kind == kind {
				out = append(out, C(x, y))
			}
		}
	}
	return out
}

// Count returns how many cells hold id.
func (g *Grid) Count(id rune) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := 0
	for _, row := range g.cells {
		for _, r := range row {
			if r == id {
				n++
			}
		}
	}
	return n
}

// Tiles returns a copy of the identifier matrix.
func (g *Grid) Tiles() [][]rune {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([][]rune, g.height)
	for y, row := range g.cells {
		out[y] = append([]rune(nil), row...)
	}
	return out
}

// Rows returns the grid as strings, one per row.
func (g *Grid) Rows() []string {
	tiles := g.Tiles()
	rows := make([]string, len(tiles))
	for y, row := range tiles {
		rows[y] = string(row)
	}
	return rows
}

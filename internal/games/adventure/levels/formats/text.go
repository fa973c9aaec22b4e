// Package formats provides the map file parsers.
package formats

import (
	"strings"

	"github.com/vovakirdan/tui-adventure/internal/games/adventure/world"
)

// Level is a parsed map ready for validation against a registry.
type Level struct {
	ID       string
	Name     string
	Rows     []string // Spawn marker already replaced by world.Empty
	Spawn    world.Coord
	Elements map[rune]world.Descriptor // Map-specific additions to the default set
	Metadata map[string]string
}

// ParseText parses the plain text format: one row per line, one identifier
// per character, exactly one spawn marker.
func ParseText(id string, data []byte) (Level, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	rows, spawn, err := extractSpawn(lines)
	if err != nil {
		return Level{}, err
	}
	return Level{ID: id, Name: id, Rows: rows, Spawn: spawn}, nil
}

// extractSpawn checks that rows form a rectangle, locates the single spawn
// marker and blanks it out.
func extractSpawn(lines []string) ([]string, world.Coord, error) {
	if len(lines) == 0 {
		return nil, world.Coord{}, world.NewLoadError(world.CodeEmptyMap, 0, "map has no rows")
	}

	width := len([]rune(lines[0]))
	rows := make([]string, len(lines))
	var spawn world.Coord
	spawns := 0

	for y, line := range lines {
		runes := []rune(line)
		if len(runes) != width {
			return nil, world.Coord{}, world.NewLoadError(world.CodeNotRectangular, y+1,
				"row has width %d, expected %d", len(runes), width)
		}
		for x, r := range runes {
			if r != world.IDSpawn {
				continue
			}
			spawns++
			if spawns > 1 {
				return nil, world.Coord{}, world.NewLoadError(world.CodeMultipleSpawns, y+1,
					"second spawn marker at (%d,%d), first at %v", x, y, spawn)
			}
			spawn = world.C(x, y)
			runes[x] = world.Empty
		}
		rows[y] = string(runes)
	}

	if spawns == 0 {
		return nil, world.Coord{}, world.NewLoadError(world.CodeNoSpawn, 0,
			"map has no spawn marker %q", world.IDSpawn)
	}
	return rows, spawn, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".map", ".yaml", ".yml"}
}

// Package levels loads adventure maps from disk and from the maps embedded in
// the binary. It depends on world but world does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-adventure/internal/games/adventure/levels/formats"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure/world"
)

// DefaultID is the map played when none is chosen.
const DefaultID = "classic"

// ErrLevelNotFound is returned when no map has the requested ID.
var ErrLevelNotFound = errors.New("levels: level not found")

//go:embed maps/*
var embeddedMaps embed.FS

// Level is a loaded, not yet validated map.
type Level struct {
	ID       string
	Name     string
	Rows     []string
	Spawn    world.Coord
	Elements map[rune]world.Descriptor
	Metadata map[string]string
	FilePath string // Empty for embedded maps
}

// Width returns the number of columns.
func (l Level) Width() int {
	if len(l.Rows) == 0 {
		return 0
	}
	return len([]rune(l.Rows[0]))
}

// Height returns the number of rows.
func (l Level) Height() int {
	return len(l.Rows)
}

// Registry returns the default element set extended with this map's elements.
func (l Level) Registry() (*world.Registry, error) {
	reg := world.DefaultRegistry()
	ids := make([]rune, 0, len(l.Elements))
	for id := range l.Elements {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if err := reg.Register(id, l.Elements[id]); err != nil {
			return nil, fmt.Errorf("level %s: %w", l.ID, err)
		}
	}
	return reg, nil
}

// Grid validates the map and builds a fresh grid for it.
func (l Level) Grid() (*world.Grid, error) {
	reg, err := l.Registry()
	if err != nil {
		return nil, err
	}
	g, err := world.NewGrid(l.Rows, reg)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return g, nil
}

// Loader handles loading maps from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new map loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans Root and loads every map file.
// Returns maps sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(p)) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortLevels(levels)
	return levels, nil
}

// LoadFile loads a single map file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	level, err := parse(filepath.Base(p), data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	level.FilePath = p
	return level, nil
}

// LoadByID loads a specific map by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// Embedded returns the maps shipped with the binary, sorted by ID.
func Embedded() ([]Level, error) {
	entries, err := fs.ReadDir(embeddedMaps, "maps")
	if err != nil {
		return nil, fmt.Errorf("reading embedded maps: %w", err)
	}

	var levels []Level
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(path.Ext(e.Name())) {
			continue
		}
		data, err := embeddedMaps.ReadFile(path.Join("maps", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading embedded map %s: %w", e.Name(), err)
		}
		level, err := parse(e.Name(), data)
		if err != nil {
			return nil, fmt.Errorf("parsing embedded map %s: %w", e.Name(), err)
		}
		levels = append(levels, level)
	}

	sortLevels(levels)
	return levels, nil
}

// Default returns the classic embedded map.
func Default() (Level, error) {
	return Find("", DefaultID)
}

// All returns the embedded maps followed by those found under dir. A map in
// dir replaces an embedded map with the same ID. An empty dir means embedded
// maps only.
func All(dir string) ([]Level, error) {
	levels, err := Embedded()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return levels, nil
	}

	extra, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(levels))
	for i, lvl := range levels {
		byID[lvl.ID] = i
	}
	for _, lvl := range extra {
		if i, ok := byID[lvl.ID]; ok {
			levels[i] = lvl
			continue
		}
		levels = append(levels, lvl)
	}
	sortLevels(levels)
	return levels, nil
}

// Find returns the map with the given ID from All(dir).
func Find(dir, id string) (Level, error) {
	levels, err := All(dir)
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

func parse(filename string, data []byte) (Level, error) {
	ext := strings.ToLower(path.Ext(filename))
	id := strings.TrimSuffix(filename, path.Ext(filename))

	var (
		parsed formats.Level
		err    error
	)
	switch ext {
	case ".yaml", ".yml":
		parsed, err = formats.ParseYAML(id, data)
	case ".txt", ".map":
		parsed, err = formats.ParseText(id, data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return Level{}, err
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Rows:     parsed.Rows,
		Spawn:    parsed.Spawn,
		Elements: parsed.Elements,
		Metadata: parsed.Metadata,
	}, nil
}

func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func sortLevels(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}

package formats

import (
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure/world"
)

// YAMLLevel represents the YAML structure for a map file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows"`
	Elements []YAMLElement     `yaml:"elements,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLElement declares a map-specific element.
type YAMLElement struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Symbol       string `yaml:"symbol"`
	Color        string `yaml:"color"`
	Traversable  bool   `yaml:"traversable"`
	Interactable bool   `yaml:"interactable"`
	Kind         string `yaml:"kind"`
}

// ParseYAML parses a YAML map file. fallbackID is used when the file has no id.
func ParseYAML(fallbackID string, data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, world.NewLoadError(world.CodeParse, 0, "yaml unmarshal: %v", err)
	}

	rows, spawn, err := extractSpawn(yl.Rows)
	if err != nil {
		return Level{}, err
	}

	id := yl.ID
	if id == "" {
		id = fallbackID
	}
	name := yl.Name
	if name == "" {
		name = id
	}

	level := Level{
		ID:       id,
		Name:     name,
		Rows:     rows,
		Spawn:    spawn,
		Metadata: yl.Metadata,
	}

	if len(yl.Elements) > 0 {
		level.Elements = make(map[rune]world.Descriptor, len(yl.Elements))
	}
	for i, e := range yl.Elements {
		eid, d, err := e.descriptor()
		if err != nil {
			return Level{}, world.NewLoadError(world.CodeParse, 0, "element %d: %v", i+1, err)
		}
		if _, dup := level.Elements[eid]; dup {
			return Level{}, world.NewLoadError(world.CodeParse, 0, "element %q declared twice", eid)
		}
		level.Elements[eid] = d
	}

	return level, nil
}

func (e YAMLElement) descriptor() (rune, world.Descriptor, error) {
	id, err := singleRune("id", e.ID)
	if err != nil {
		return 0, world.Descriptor{}, err
	}
	if id == world.Empty || id == world.IDSpawn {
		return 0, world.Descriptor{}, fmt.Errorf("identifier %q is reserved", id)
	}
	symbol, err := singleRune("symbol", e.Symbol)
	if err != nil {
		return 0, world.Descriptor{}, err
	}
	color := core.ColorDefault
	if e.Color != "" {
		c, ok := core.ParseColor(e.Color)
		if !ok {
			return 0, world.Descriptor{}, fmt.Errorf("unknown color %q", e.Color)
		}
		color = c
	}
	kind, err := world.ParseKind(e.Kind)
	if err != nil {
		return 0, world.Descriptor{}, err
	}

	name := e.Name
	if name == "" {
		name = string(id)
	}
	return id, world.Descriptor{
		Name:         name,
		Symbol:       symbol,
		Color:        color,
		Traversable:  e.Traversable,
		Interactable: e.Interactable,
		Kind:         kind,
	}, nil
}

func singleRune(field, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

package formats

import (
	"testing"

	"github.com/vovakirdan/tui-adventure/internal/core"
	"github.com/vovakirdan/tui-adventure/internal/games/adventure/world"
)

func TestParseTextSpawn(t *testing.T) {
	data := []byte("#####\r\n#  P#\r\n#####\r\n\r\n")
	lvl, err := ParseText("tiny", data)
	if err != nil {
		t.Fatalf("ParseText failed: %v", err)
	}
	if lvl.Spawn != world.C(3, 1) {
		t.Errorf("Spawn = %v, expected (3,1)", lvl.Spawn)
	}
	if len(lvl.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lvl.Rows))
	}
	if lvl.Rows[1] != "#   #" {
		t.Errorf("spawn marker not blanked: %q", lvl.Rows[1])
	}
	if lvl.ID != "tiny" {
		t.Errorf("ID = %q", lvl.ID)
	}
}

func TestParseTextErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code string
	}{
		{"empty", "", world.CodeEmptyMap},
		{"ragged", "####\n#P#\n####\n", world.CodeNotRectangular},
		{"no spawn", "###\n# #\n###\n", world.CodeNoSpawn},
		{"two spawns", "####\n#PP#\n####\n", world.CodeMultipleSpawns},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseText("x", []byte(tc.data))
			if !world.IsLoadError(err, tc.code) {
				t.Fatalf("expected LoadError %s, got %v", tc.code, err)
			}
		})
	}
}

func TestParseYAMLElements(t *testing.T) {
	data := []byte(`
id: pond
name: Pond
rows:
  - "#####"
  - "#PW #"
  - "#####"
elements:
  - id: "W"
    name: water
    symbol: "≈"
    color: blue
  - id: "K"
    name: key
    symbol: "⚷"
    color: gold
    traversable: true
    kind: collectible
metadata:
  author: test
`)
	lvl, err := ParseYAML("fallback", data)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if lvl.ID != "pond" || lvl.Name != "Pond" {
		t.Errorf("ID/Name = %q/%q", lvl.ID, lvl.Name)
	}
	if lvl.Spawn != world.C(1, 1) {
		t.Errorf("Spawn = %v", lvl.Spawn)
	}

	water, ok := lvl.Elements['W']
	if !ok {
		t.Fatal("water element missing")
	}
	if water.Symbol != '≈' || water.Color != core.ColorBlue || water.Traversable {
		t.Errorf("water descriptor = %+v", water)
	}
	if key := lvl.Elements['K']; key.Kind != world.KindCollectible || !key.Traversable {
		t.Errorf("key descriptor = %+v", key)
	}
	if lvl.Metadata["author"] != "test" {
		t.Errorf("metadata = %v", lvl.Metadata)
	}
}

func TestParseYAMLFallbackID(t *testing.T) {
	lvl, err := ParseYAML("cave", []byte("rows:\n  - \"P \"\n"))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if lvl.ID != "cave" || lvl.Name != "cave" {
		t.Errorf("fallback ID/Name = %q/%q", lvl.ID, lvl.Name)
	}
}

func TestParseYAMLRejectsBadElements(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"multi-rune id", "rows: [\"P\"]\nelements:\n  - {id: \"WW\", symbol: \"x\"}\n"},
		{"reserved id", "rows: [\"P\"]\nelements:\n  - {id: \"P\", symbol: \"x\"}\n"},
		{"unknown color", "rows: [\"P\"]\nelements:\n  - {id: \"W\", symbol: \"x\", color: plaid}\n"},
		{"unknown kind", "rows: [\"P\"]\nelements:\n  - {id: \"W\", symbol: \"x\", kind: boss}\n"},
		{"duplicate", "rows: [\"P\"]\nelements:\n  - {id: \"W\", symbol: \"x\"}\n  - {id: \"W\", symbol: \"y\"}\n"},
		{"bad yaml", "rows: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseYAML("x", []byte(tc.data)); !world.IsLoadError(err, world.CodeParse) {
				t.Errorf("expected PARSE LoadError, got %v", err)
			}
		})
	}
}

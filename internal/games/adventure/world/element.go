package world

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-adventure/internal/core"
)

// Empty is the identifier of an empty cell.
const Empty rune = ' '

// Identifiers of the built-in element set.
const (
	IDWall       rune = '#'
	IDVegetation rune = 'V'
	IDEnemy      rune = 'I'
	IDCoin       rune = 'M'
	IDSpawn      rune = 'P'
)

// PlayerSymbol is the glyph drawn at the player position.
const PlayerSymbol = '☺'

// Kind classifies what an element does in the world.
type Kind int

const (
	KindStatic Kind = iota
	KindCollectible
	KindEnemy
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindCollectible:
		return "collectible"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// ParseKind resolves a kind name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "static":
		return KindStatic, nil
	case "collectible":
		return KindCollectible, nil
	case "enemy":
		return KindEnemy, nil
	}
	return KindStatic, fmt.Errorf("unknown element kind %q", s)
}

// Descriptor describes how an element is drawn and how it behaves.
type Descriptor struct {
	Name         string
	Symbol       rune
	Color        core.Color
	Traversable  bool
	Interactable bool
	Kind         Kind
}

// Registry maps element identifiers to descriptors. Identifiers are unique;
// registering one twice is an error rather than an overwrite.
type Registry struct {
	mu       sync.RWMutex
	elements map[rune]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{elements: make(map[rune]Descriptor)}
}

// DefaultRegistry returns a registry with walls, vegetation, enemies and coins.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for id, d := range DefaultElements() {
		//nolint:errcheck // Fresh registry, identifiers are distinct
		r.Register(id, d)
	}
	return r
}

// DefaultElements returns the built-in element set keyed by identifier.
func DefaultElements() map[rune]Descriptor {
	return map[rune]Descriptor{
		IDWall:       {Name: "wall", Symbol: '▣', Color: core.ColorBrown, Kind: KindStatic},
		IDVegetation: {Name: "vegetation", Symbol: '♣', Color: core.ColorForest, Traversable: true, Kind: KindStatic},
		IDEnemy:      {Name: "enemy", Symbol: '☠', Color: core.ColorRed, Traversable: true, Kind: KindEnemy},
		IDCoin:       {Name: "coin", Symbol: '♦', Color: core.ColorGold, Traversable: true, Kind: KindCollectible},
	}
}

// Register adds a descriptor under id.
func (r *Registry) Register(id rune, d Descriptor) error {
	if id == Empty {
		return fmt.Errorf("register %q: %w", id, ErrReservedID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.elements[id]; exists {
		return fmt.Errorf("register %q: %w", id, ErrDuplicateID)
	}
	r.elements[id] = d
	return nil
}

// Lookup returns the descriptor registered under id.
func (r *Registry) Lookup(id rune) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.elements[id]
	return d, ok
}

// Known reports whether id is empty or registered.
func (r *Registry) Known(id rune) bool {
	if id == Empty {
		return true
	}
	_, ok := r.Lookup(id)
	return ok
}

// IDs returns all registered identifiers in ascending order.
func (r *Registry) IDs() []rune {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]rune, 0, len(r.elements))
	for id := range r.elements {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

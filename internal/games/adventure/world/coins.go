package world

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// Coin distribution defaults.
const (
	DefaultCoinAttempts = 100
	DefaultCoinSeed     = 1
)

// DistributeCoins draws attempts random cells from rng and places id on each
// one that is empty and not listed in avoid. Returns how many were placed.
func DistributeCoins(g *Grid, rng *rand.Rand, attempts int, id rune, avoid ...Coord) int {
	skip := mapset.New[Coord]()
	for _, c := range avoid {
		skip.Put(c)
	}

	placed := 0
	for i := 0; i < attempts; i++ {
		c := C(rng.Intn(g.Width()), rng.Intn(g.Height()))
		if skip.Has(c) {
			continue
		}
		if tile, _ := g.TileAt(c.X, c.Y); tile != Empty {
			continue
		}
		if g.SetCell(id, c.X, c.Y) == nil {
			placed++
		}
	}
	return placed
}

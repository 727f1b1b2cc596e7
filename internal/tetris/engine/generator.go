package engine

import (
	"math/rand/v2"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/tetris/piece"
)

// Generator IDs.
const (
	GeneratorRandom = "random"
	GeneratorBag    = "bag"
)

func init() {
	registry.Register(GeneratorRandom, func(rng *rand.Rand) registry.Generator {
		return NewRandomGenerator(rng)
	})
	registry.Register(GeneratorBag, func(rng *rand.Rand) registry.Generator {
		return NewBagGenerator(rng)
	})
}

// RandomGenerator picks every kind independently and uniformly.
type RandomGenerator struct {
	rng *rand.Rand
}

// NewRandomGenerator creates an independent-random generator.
func NewRandomGenerator(rng *rand.Rand) *RandomGenerator {
	return &RandomGenerator{rng: rng}
}

func (g *RandomGenerator) ID() string    { return GeneratorRandom }
func (g *RandomGenerator) Title() string { return "Independent random" }

// Next returns a uniformly random kind.
func (g *RandomGenerator) Next() piece.Kind {
	return piece.All[g.rng.IntN(len(piece.All))]
}

// BagGenerator deals the seven kinds in shuffled rounds, so every kind
// appears exactly once per seven pieces.
type BagGenerator struct {
	rng *rand.Rand
	bag []piece.Kind
}

// NewBagGenerator creates a 7-bag generator with an empty bag.
func NewBagGenerator(rng *rand.Rand) *BagGenerator {
	return &BagGenerator{rng: rng, bag: make([]piece.Kind, 0, len(piece.All))}
}

func (g *BagGenerator) ID() string    { return GeneratorBag }
func (g *BagGenerator) Title() string { return "7-bag shuffle" }

// Next takes the next kind from the bag, refilling it when empty.
func (g *BagGenerator) Next() piece.Kind {
	if len(g.bag) == 0 {
		g.refill()
	}
	k := g.bag[len(g.bag)-1]
	g.bag = g.bag[:len(g.bag)-1]
	return k
}

// Remaining returns how many kinds are left before the next refill.
func (g *BagGenerator) Remaining() int {
	return len(g.bag)
}

func (g *BagGenerator) refill() {
	if len(g.bag) != 0 {
		panic("engine: refilling a non-empty bag")
	}
	g.bag = append(g.bag, piece.All[:]...)
	g.rng.Shuffle(len(g.bag), func(i, j int) {
		g.bag[i], g.bag[j] = g.bag[j], g.bag[i]
	})
}

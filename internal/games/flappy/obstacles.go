package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/cookedbird/internal/config"
)

// Generator picks gap positions for obstacle pairs. The first gap is placed
// anywhere within the margins; every later gap stays within MaxDelta of the
// previous one so consecutive gaps are always reachable.
type Generator struct {
	rng      *rand.Rand
	worldH   float64
	gap      float64 // Gap height in pixels
	margin   float64 // Distance kept from top and bottom edges
	maxDelta float64 // Largest vertical move between consecutive gaps
	last     float64
	hasLast  bool
}

// NewGenerator creates a generator with the given RNG seed.
// Out-of-range geometry is clamped so that no derived size is negative.
func NewGenerator(seed int64, world config.WorldConfig, cfg config.ObstacleConfig) *Generator {
	h := math.Max(world.Height, 0)
	return &Generator{
		rng:      rand.New(rand.NewSource(seed)),
		worldH:   h,
		gap:      clampF(cfg.GapFraction, 0, 1) * h,
		margin:   clampF(cfg.Margin, 0, 0.5) * h,
		maxDelta: math.Max(cfg.MaxDelta, 0) * h,
	}
}

// Reseed resets the RNG.
func (g *Generator) Reseed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// Reset forgets the previous gap so the next one is placed freely.
func (g *Generator) Reset() {
	g.last = 0
	g.hasLast = false
}

// GapHeight returns the height of every gap in pixels.
func (g *Generator) GapHeight() float64 {
	return g.gap
}

// Bounds returns the lowest and highest allowed gap center.
// When the gap and margins do not fit in the world both collapse to the middle.
func (g *Generator) Bounds() (lo, hi float64) {
	lo = g.gap/2 + g.margin
	hi = g.worldH - g.gap/2 - g.margin
	if lo > hi {
		mid := g.worldH / 2
		return mid, mid
	}
	return lo, hi
}

// Range returns the interval the next gap center will be drawn from.
func (g *Generator) Range() (lo, hi float64) {
	lo, hi = g.Bounds()
	if !g.hasLast {
		return lo, hi
	}
	last := clampF(g.last, lo, hi)
	return math.Max(lo, last-g.maxDelta), math.Min(hi, last+g.maxDelta)
}

// Last returns the previous gap center, if any.
func (g *Generator) Last() (float64, bool) {
	return g.last, g.hasLast
}

// Next draws the next gap center and remembers it.
func (g *Generator) Next() float64 {
	lo, hi := g.Range()
	center := lo + g.rng.Float64()*(hi-lo)
	g.last = center
	g.hasLast = true
	return center
}

// clampF restricts a float64 value to be within [min, max].
func clampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

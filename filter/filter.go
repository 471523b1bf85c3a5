package filter

import (
	"log/slog"
	"time"

	"github.com/gogpu/cursor"
)

// Predicate is a filter that can be evaluated per path.
type Predicate interface {
	cursor.Filter

	// Keep reports whether p survives the filter.
	Keep(p *cursor.Path) bool
}

// apply prunes pc with keep and reports the reduction.
func apply(name string, pc *cursor.PathCollection, keep func(*cursor.Path) bool) {
	t0 := time.Now()
	before, after := pc.Retain(keep)
	cursor.Logger().Info("filter applied",
		slog.String("filter", name),
		slog.Int("before", before),
		slog.Int("after", after),
		slog.Duration("elapsed", time.Since(t0)))
}

// filtered applies f to a copy of pc.
func filtered(f cursor.Filter, pc *cursor.PathCollection) *cursor.PathCollection {
	c := pc.Copy()
	f.Apply(c)
	return c
}

// EntropyMin keeps paths whose x and y entropies both exceed a minimum.
type EntropyMin struct {
	MinX, MinY float64
}

// NewEntropyMin creates an EntropyMin filter.
func NewEntropyMin(minX, minY float64) *EntropyMin {
	return &EntropyMin{MinX: minX, MinY: minY}
}

// Keep implements Predicate.
func (f *EntropyMin) Keep(p *cursor.Path) bool {
	return p.EntropyX() > f.MinX && p.EntropyY() > f.MinY
}

// Apply implements cursor.Filter.
func (f *EntropyMin) Apply(pc *cursor.PathCollection) { apply("EntropyMin", pc, f.Keep) }

// Filtered returns a filtered copy of pc.
func (f *EntropyMin) Filtered(pc *cursor.PathCollection) *cursor.PathCollection {
	return filtered(f, pc)
}

// EntropyMax keeps paths whose x and y entropies are both below a maximum.
type EntropyMax struct {
	MaxX, MaxY float64
}

// NewEntropyMax creates an EntropyMax filter.
func NewEntropyMax(maxX, maxY float64) *EntropyMax {
	return &EntropyMax{MaxX: maxX, MaxY: maxY}
}

// Keep implements Predicate.
func (f *EntropyMax) Keep(p *cursor.Path) bool {
	return p.EntropyX() < f.MaxX && p.EntropyY() < f.MaxY
}

// Apply implements cursor.Filter.
func (f *EntropyMax) Apply(pc *cursor.PathCollection) { apply("EntropyMax", pc, f.Keep) }

// Filtered returns a filtered copy of pc.
func (f *EntropyMax) Filtered(pc *cursor.PathCollection) *cursor.PathCollection {
	return filtered(f, pc)
}

// BoundingBox keeps paths lying strictly inside a box.
type BoundingBox struct {
	Box cursor.BoundingBox
}

// NewBoundingBox creates a BoundingBox filter.
func NewBoundingBox(bb cursor.BoundingBox) *BoundingBox {
	return &BoundingBox{Box: bb}
}

// Keep implements Predicate.
func (f *BoundingBox) Keep(p *cursor.Path) bool {
	return f.Box.Inside(p)
}

// Apply implements cursor.Filter.
func (f *BoundingBox) Apply(pc *cursor.PathCollection) { apply("BoundingBox", pc, f.Keep) }

// Filtered returns a filtered copy of pc.
func (f *BoundingBox) Filtered(pc *cursor.PathCollection) *cursor.PathCollection {
	return filtered(f, pc)
}

// MinPointCount keeps paths with at least N vertices.
type MinPointCount struct {
	N int
}

// NewMinPointCount creates a MinPointCount filter.
func NewMinPointCount(n int) *MinPointCount {
	return &MinPointCount{N: n}
}

// Keep implements Predicate.
func (f *MinPointCount) Keep(p *cursor.Path) bool {
	return p.Len() >= f.N
}

// Apply implements cursor.Filter.
func (f *MinPointCount) Apply(pc *cursor.PathCollection) { apply("MinPointCount", pc, f.Keep) }

// Filtered returns a filtered copy of pc.
func (f *MinPointCount) Filtered(pc *cursor.PathCollection) *cursor.PathCollection {
	return filtered(f, pc)
}

// MaxPointCount keeps paths with at most N vertices.
type MaxPointCount struct {
	N int
}

// NewMaxPointCount creates a MaxPointCount filter.
func NewMaxPointCount(n int) *MaxPointCount {
	return &MaxPointCount{N: n}
}

// Keep implements Predicate.
func (f *MaxPointCount) Keep(p *cursor.Path) bool {
	return p.Len() <= f.N
}

// Apply implements cursor.Filter.
func (f *MaxPointCount) Apply(pc *cursor.PathCollection) { apply("MaxPointCount", pc, f.Keep) }

// Filtered returns a filtered copy of pc.
func (f *MaxPointCount) Filtered(pc *cursor.PathCollection) *cursor.PathCollection {
	return filtered(f, pc)
}

// Distance keeps paths whose travel distance at a device resolution does
// not exceed Max.
type Distance struct {
	Max        float64
	Resolution cursor.Resolution
}

// NewDistance creates a Distance filter.
func NewDistance(maxDistance float64, res cursor.Resolution) *Distance {
	return &Distance{Max: maxDistance, Resolution: res}
}

// Keep implements Predicate.
func (f *Distance) Keep(p *cursor.Path) bool {
	return p.Distance(f.Resolution) <= f.Max
}

// Apply implements cursor.Filter.
func (f *Distance) Apply(pc *cursor.PathCollection) { apply("Distance", pc, f.Keep) }

// Filtered returns a filtered copy of pc.
func (f *Distance) Filtered(pc *cursor.PathCollection) *cursor.PathCollection {
	return filtered(f, pc)
}

// Chain applies filters in order.
type Chain []cursor.Filter

// Apply implements cursor.Filter. Nil entries are skipped.
func (c Chain) Apply(pc *cursor.PathCollection) {
	for _, f := range c {
		if f != nil {
			f.Apply(pc)
		}
	}
}

// Filtered returns a filtered copy of pc.
func (c Chain) Filtered(pc *cursor.PathCollection) *cursor.PathCollection {
	return filtered(c, pc)
}

// Ensure all filters implement the interfaces.
var (
	_ Predicate     = (*EntropyMin)(nil)
	_ Predicate     = (*EntropyMax)(nil)
	_ Predicate     = (*BoundingBox)(nil)
	_ Predicate     = (*MinPointCount)(nil)
	_ Predicate     = (*MaxPointCount)(nil)
	_ Predicate     = (*Distance)(nil)
	_ cursor.Filter = Chain(nil)
)

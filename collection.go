package cursor

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"iter"
	"math"
	"math/rand/v2"
	"slices"
	"time"
)

// PathCollection is a bag of paths captured in one session, plus the time
// the collection was created. Insertion order is kept so that iteration and
// rendering are deterministic, but carries no meaning otherwise.
//
// A collection never stores an empty path. It owns its paths; combining
// collections copies path references, so the sources must not be mutated
// while the result is in use.
//
// PathCollection is not safe for concurrent use.
type PathCollection struct {
	paths     []*Path
	timestamp float64
}

// NewPathCollection creates an empty collection timestamped with the current
// UTC time unless WithTimestamp is given.
func NewPathCollection(opts ...CollectionOption) *PathCollection {
	var o collectionOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !o.timestampSet {
		o.timestamp = float64(time.Now().UTC().UnixNano()) / float64(time.Second)
	}
	return &PathCollection{
		paths:     make([]*Path, 0, o.capacity),
		timestamp: o.timestamp,
	}
}

// Add appends p. Empty paths are silently dropped.
func (pc *PathCollection) Add(p *Path) {
	if p == nil || p.Empty() {
		return
	}
	pc.paths = append(pc.paths, p)
}

// Len returns the number of paths.
func (pc *PathCollection) Len() int {
	return len(pc.paths)
}

// Empty reports whether the collection holds no paths.
func (pc *PathCollection) Empty() bool {
	return len(pc.paths) == 0
}

// Timestamp returns the creation time in seconds since the Unix epoch.
func (pc *PathCollection) Timestamp() float64 {
	return pc.timestamp
}

// At returns the i-th path.
func (pc *PathCollection) At(i int) (*Path, error) {
	if i < 0 || i >= len(pc.paths) {
		return nil, fmt.Errorf("%w: %d (maximum is %d)", ErrIndexOutOfRange, i, len(pc.paths)-1)
	}
	return pc.paths[i], nil
}

// Paths returns a new slice of the paths. The paths themselves are shared.
func (pc *PathCollection) Paths() []*Path {
	return slices.Clone(pc.paths)
}

// All returns an iterator over the paths in insertion order.
func (pc *PathCollection) All() iter.Seq2[int, *Path] {
	return func(yield func(int, *Path) bool) {
		for i, p := range pc.paths {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Random returns a path chosen with r.
func (pc *PathCollection) Random(r *rand.Rand) (*Path, error) {
	if len(pc.paths) == 0 {
		return nil, ErrEmptyCollection
	}
	return pc.paths[r.IntN(len(pc.paths))], nil
}

// Clean drops every path with one vertex or fewer and cleans the rest.
func (pc *PathCollection) Clean() {
	pc.Retain(func(p *Path) bool { return p.Len() > 1 })
	for _, p := range pc.paths {
		p.Clean()
	}
}

// Retain keeps only the paths for which keep returns true, rebuilding the
// owned sequence in place. It returns the path counts before and after.
func (pc *PathCollection) Retain(keep func(*Path) bool) (before, after int) {
	before = len(pc.paths)
	kept := pc.paths[:0]
	for _, p := range pc.paths {
		if keep(p) {
			kept = append(kept, p)
		}
	}
	clear(pc.paths[len(kept):])
	pc.paths = kept
	return before, len(kept)
}

// Filter applies f to the collection in place. A nil filter, including a
// nil pointer or func stored in the interface, is ErrInvalidFilter.
func (pc *PathCollection) Filter(f Filter) error {
	if isNilFilter(f) {
		return ErrInvalidFilter
	}
	f.Apply(pc)
	return nil
}

// Filtered returns a new collection holding the paths that pass f. The
// receiver is left untouched and the result keeps its timestamp.
func (pc *PathCollection) Filtered(f Filter) (*PathCollection, error) {
	if isNilFilter(f) {
		return nil, ErrInvalidFilter
	}
	c := pc.Copy()
	f.Apply(c)
	return c, nil
}

// Copy returns a new collection with the same timestamp sharing the same
// paths.
func (pc *PathCollection) Copy() *PathCollection {
	return &PathCollection{
		paths:     slices.Clone(pc.paths),
		timestamp: pc.timestamp,
	}
}

// Concat returns a new collection holding the paths of pc followed by those
// of other, which must be a *PathCollection or a []*Path. Any other operand
// yields ErrUnsupportedOperand.
func (pc *PathCollection) Concat(other any) (*PathCollection, error) {
	switch o := other.(type) {
	case *PathCollection:
		if o == nil {
			return nil, fmt.Errorf("%w: nil *PathCollection", ErrUnsupportedOperand)
		}
		return pc.Merge(o), nil
	case []*Path:
		return pc.Extend(o), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrUnsupportedOperand, other)
	}
}

// Merge returns a new collection holding the paths of pc followed by those
// of other.
func (pc *PathCollection) Merge(other *PathCollection) *PathCollection {
	return pc.Extend(other.paths)
}

// Extend returns a new collection holding the paths of pc followed by paths.
// Empty paths are dropped.
func (pc *PathCollection) Extend(paths []*Path) *PathCollection {
	c := NewPathCollection(WithCapacity(len(pc.paths) + len(paths)))
	c.paths = append(c.paths, pc.paths...)
	for _, p := range paths {
		c.Add(p)
	}
	return c
}

// Equal is a shallow comparison: two collections are equal when they hold
// the same number of paths and share a creation timestamp. Path contents are
// not compared.
func (pc *PathCollection) Equal(o *PathCollection) bool {
	if o == nil {
		return false
	}
	// TODO: compare path contents once callers stop relying on the shallow form.
	return len(pc.paths) == len(o.paths) && pc.timestamp == o.timestamp
}

// Min returns the smallest x and y over all vertices of all paths.
func (pc *PathCollection) Min() (Point, error) {
	bb, err := pc.BoundingBox()
	if err != nil {
		return Point{}, err
	}
	return Point{X: bb.X, Y: bb.Y}, nil
}

// Max returns the largest x and y over all vertices of all paths.
func (pc *PathCollection) Max() (Point, error) {
	bb, err := pc.BoundingBox()
	if err != nil {
		return Point{}, err
	}
	return Point{X: bb.W, Y: bb.H}, nil
}

// BoundingBox returns the box spanning Min and Max.
func (pc *PathCollection) BoundingBox() (BoundingBox, error) {
	if len(pc.paths) == 0 {
		return BoundingBox{}, ErrEmptyCollection
	}
	bb := BoundingBox{
		X: math.Inf(1), Y: math.Inf(1),
		W: math.Inf(-1), H: math.Inf(-1),
	}
	for _, p := range pc.paths {
		for _, v := range p.vertices {
			bb = bb.extend(v)
		}
	}
	return bb, nil
}

// Translate moves every path by (dx, dy).
func (pc *PathCollection) Translate(dx, dy float64) {
	for _, p := range pc.paths {
		p.Translate(dx, dy)
	}
}

// Scale multiplies every path by (sx, sy).
func (pc *PathCollection) Scale(sx, sy float64) {
	for _, p := range pc.paths {
		p.Scale(sx, sy)
	}
}

// Fit maps the collection onto a page of the given size, leaving padding on
// every side. It first shifts negative coordinates into the positive
// quadrant, then scales each axis independently so the maximum corner fits
// the padded page, and finally centers the result on the page. The steps are
// not interchangeable.
func (pc *PathCollection) Fit(page Size, padding float64) error {
	bb, err := pc.BoundingBox()
	if err != nil {
		return err
	}

	var dx, dy float64
	if bb.X < 0 {
		dx = math.Abs(bb.X)
	}
	if bb.Y < 0 {
		dy = math.Abs(bb.Y)
	}
	pc.Translate(dx, dy)

	bb, _ = pc.BoundingBox()
	xfac := fitFactor(page.Width-padding*2, bb.W)
	yfac := fitFactor(page.Height-padding*2, bb.H)
	pc.Scale(xfac, yfac)

	bb, _ = pc.BoundingBox()
	center := bb.Center()
	pc.Translate(page.Width/2-center.X, page.Height/2-center.Y)
	return nil
}

// fitFactor returns avail/extent, or 1 when extent is zero.
func fitFactor(avail, extent float64) float64 {
	if extent == 0 {
		return 1
	}
	return avail / extent
}

// Hash returns a hex content fingerprint over all paths in order.
func (pc *PathCollection) Hash() string {
	h := md5.New()
	for _, p := range pc.paths {
		h.Write([]byte(p.Hash()))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (pc *PathCollection) String() string {
	return fmt.Sprintf("PathCollection(%d paths, t=%.3f)", len(pc.paths), pc.timestamp)
}

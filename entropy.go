package cursor

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// EntropyX returns the Shannon entropy (natural log) of the distribution of
// consecutive x deltas. Regular strokes such as straight lines score low,
// jittery ones high.
func (p *Path) EntropyX() float64 {
	return Entropy(p.deltas(func(tp TimedPosition) float64 { return tp.X }))
}

// EntropyY is EntropyX for the y axis.
func (p *Path) EntropyY() float64 {
	return Entropy(p.deltas(func(tp TimedPosition) float64 { return tp.Y }))
}

func (p *Path) deltas(coord func(TimedPosition) float64) []float64 {
	if len(p.vertices) < 2 {
		return nil
	}
	d := make([]float64, len(p.vertices)-1)
	for i := 1; i < len(p.vertices); i++ {
		d[i-1] = coord(p.vertices[i]) - coord(p.vertices[i-1])
	}
	return d
}

// Entropy returns the Shannon entropy (natural log) of the empirical
// distribution of labels. Fewer than two labels, or a single distinct
// label, yield exactly 0.
func Entropy(labels []float64) float64 {
	n := len(labels)
	if n <= 1 {
		return 0
	}

	counts := make(map[float64]int, n)
	for _, l := range labels {
		counts[l]++
	}
	if len(counts) <= 1 {
		return 0
	}

	// Iterate in label order so the sum is reproducible.
	keys := make([]float64, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, cmp.Compare[float64])

	probs := make([]float64, len(keys))
	for i, k := range keys {
		probs[i] = float64(counts[k]) / float64(n)
	}
	return stat.Entropy(probs)
}

package distribution

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Bin is one histogram bucket over [Lo, Hi).
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram buckets percentiles into n equal bins over [0,1]. Values outside
// the range are clamped into the first or last bin; NaNs are dropped.
func Histogram(values []float64, n int) []Bin {
	if n <= 0 {
		return nil
	}
	h := stats.NewLinearHist(0, 1, n)
	for _, v := range values {
		if !math.IsNaN(v) {
			h.Add(v)
		}
	}
	under, counts, over := h.Counts()

	bins := make([]Bin, n)
	width := 1.0 / float64(n)
	for i := range bins {
		bins[i] = Bin{Lo: float64(i) * width, Hi: float64(i+1) * width, Count: int(counts[i])}
	}
	bins[0].Count += int(under)
	bins[n-1].Count += int(over)
	return bins
}

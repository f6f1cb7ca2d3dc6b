package individual

import (
	"math"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
)

// Slope returns the ordinary least squares slope of ys against xs. It is NaN
// when there are fewer than two points or every x is the same.
func Slope(xs, ys []float64) float64 {
	if len(xs) < 2 || len(xs) != len(ys) {
		return math.NaN()
	}
	if lo, hi := stats.Bounds(xs); lo == hi {
		return math.NaN()
	}
	return fit.PolynomialRegression(xs, ys, nil, 1).Coefficients[1]
}

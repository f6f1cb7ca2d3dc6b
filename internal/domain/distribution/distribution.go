// Package distribution computes per-tournament percentile distributions and
// normalizes individual percentiles against them.
package distribution

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/okian/tourneystats/internal/domain/model"
	"github.com/okian/tourneystats/internal/domain/placement"
	"github.com/okian/tourneystats/pkg/logger"
	"github.com/okian/tourneystats/pkg/metrics"
)

// Stats counts what happened to the cells of one table.
type Stats struct {
	Placements int
	Skipped    int
	Malformed  int
}

// Option applies a configuration option to a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger used for malformed cells.
func WithLogger(l logger.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records cell outcomes on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(c *Calculator) {
		c.metrics = m
	}
}

// Calculator computes tournament distributions.
type Calculator struct {
	logger  logger.Logger
	metrics *metrics.Manager
}

// NewCalculator creates a Calculator. Without WithLogger it logs nothing.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{logger: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Percentiles collects the percentile of every event cell of t, skipping the
// identifier column. Malformed placements are logged and skipped.
func (c *Calculator) Percentiles(ctx context.Context, t *model.Table) ([]float64, Stats) {
	var (
		values []float64
		st     Stats
	)
	for i := 0; i < t.Len(); i++ {
		for col, cell := range t.EventCells(i) {
			p, err := placement.Parse(cell)
			switch {
			case err == nil:
				values = append(values, p)
				st.Placements++
				c.record(t.Name, metrics.OutcomePlacement)
			case errors.Is(err, placement.ErrNotPlacement):
				st.Skipped++
				c.record(t.Name, metrics.OutcomeSkipped)
			default:
				st.Malformed++
				c.record(t.Name, metrics.OutcomeMalformed)
				c.logger.Warn(ctx, "skipping malformed placement",
					logger.String("tournament", t.Name),
					logger.Int("row", i+1),
					logger.Int("column", col+1+model.IdentifierColumn),
					logger.Error(err),
				)
			}
		}
	}
	return values, st
}

// Compute returns the population mean and standard deviation of every
// percentile in t. It returns ErrEmpty when t has no placements.
func (c *Calculator) Compute(ctx context.Context, t *model.Table) (model.Distribution, Stats, error) {
	values, st := c.Percentiles(ctx, t)
	d, err := FromPercentiles(values)
	if err != nil {
		return model.Distribution{}, st, fmt.Errorf("tournament %q: %w", t.Name, err)
	}
	return d, st, nil
}

// FromPercentiles returns the population statistics of values.
func FromPercentiles(values []float64) (model.Distribution, error) {
	if len(values) == 0 {
		return model.Distribution{}, ErrEmpty
	}
	mean, std := MeanStdDev(values)
	return model.Distribution{Mean: mean, StdDev: std, N: len(values)}, nil
}

// MeanStdDev returns the mean and population standard deviation (divide by
// N) of xs. Both are NaN for an empty slice.
func MeanStdDev(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	mean := stats.Mean(xs)
	sq := make([]float64, len(xs))
	for i, x := range xs {
		d := x - mean
		sq[i] = d * d
	}
	return mean, math.Sqrt(stats.Mean(sq))
}

// Normalize re-expresses a raw percentile relative to its tournament: the
// z-score against d is mapped through the standard normal CDF. A tournament
// with zero spread maps everything to its median, 0.5.
func Normalize(p float64, d model.Distribution) float64 {
	if d.StdDev == 0 || math.IsNaN(d.StdDev) {
		return stats.StdNormal.CDF(0)
	}
	return stats.StdNormal.CDF((p - d.Mean) / d.StdDev)
}

func (c *Calculator) record(tournament, outcome string) {
	if c.metrics != nil {
		c.metrics.RecordCell(tournament, outcome)
	}
}

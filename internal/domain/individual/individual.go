// Package individual computes a competitor's longitudinal statistics per
// event across a chronologically ordered season of tournaments.
package individual

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/okian/tourneystats/internal/domain/distribution"
	"github.com/okian/tourneystats/internal/domain/model"
	"github.com/okian/tourneystats/internal/domain/placement"
	"github.com/okian/tourneystats/pkg/logger"
)

// Point is one result of a competitor in one event.
type Point struct {
	Seq        int
	Tournament string
	Raw        float64
	Normalized float64
}

// EventStats summarizes a competitor's normalized percentiles in one event.
type EventStats struct {
	Name   string
	Points []Point
	Mean   float64
	StdDev float64
	Slope  float64 // NaN with fewer than two points
	Count  int
}

// Report is the statistics of one competitor, events in first-seen order.
type Report struct {
	Member     int
	Identifier string
	Events     []EventStats
}

// Trended returns the events with more than one result, the ones worth a line.
func (r Report) Trended() []EventStats {
	out := make([]EventStats, 0, len(r.Events))
	for _, e := range r.Events {
		if e.Count > 1 {
			out = append(out, e)
		}
	}
	return out
}

// Option applies a configuration option to a Calculator.
type Option func(*Calculator)

// WithMinNameLength drops event names of at most n characters.
func WithMinNameLength(n int) Option {
	return func(c *Calculator) {
		if n >= 0 {
			c.minNameLen = n
		}
	}
}

// WithIdentityCheck requires the member's identifier cell to be the same in
// every tournament table.
func WithIdentityCheck(enabled bool) Option {
	return func(c *Calculator) {
		c.identityCheck = enabled
	}
}

// WithLogger sets the logger used for skipped cells.
func WithLogger(l logger.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// Calculator computes individual reports.
type Calculator struct {
	minNameLen    int
	identityCheck bool
	logger        logger.Logger
}

// NewCalculator creates a Calculator with the default name filter.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		minNameLen: placement.DefaultMinNameLength,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute walks row member (1-based) of every tournament in Seq order. Each
// placement is normalized against its tournament's distribution and grouped
// under its event name.
func (c *Calculator) Compute(ctx context.Context, member int, tournaments []model.Tournament) (Report, error) {
	ordered := make([]model.Tournament, len(tournaments))
	copy(ordered, tournaments)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Seq < ordered[j].Seq })

	row := member - 1
	if err := c.checkMember(member, ordered); err != nil {
		return Report{}, err
	}

	report := Report{Member: member}
	if len(ordered) > 0 {
		report.Identifier = ordered[0].Table.Identifier(row)
	}

	index := make(map[string]int)
	for _, t := range ordered {
		for _, cell := range t.Table.EventCells(row) {
			raw, err := placement.Parse(cell)
			if err != nil {
				if !errors.Is(err, placement.ErrNotPlacement) {
					c.logger.Warn(ctx, "skipping malformed placement",
						logger.String("tournament", t.Name),
						logger.Int("member", member),
						logger.Error(err),
					)
				}
				continue
			}
			name := placement.EventName(cell)
			i, ok := index[name]
			if !ok {
				if !placement.IsEventName(name, c.minNameLen) {
					continue
				}
				i = len(report.Events)
				index[name] = i
				report.Events = append(report.Events, EventStats{Name: name})
			}
			report.Events[i].Points = append(report.Events[i].Points, Point{
				Seq:        t.Seq,
				Tournament: t.Name,
				Raw:        raw,
				Normalized: distribution.Normalize(raw, t.Distribution),
			})
		}
	}

	for i := range report.Events {
		summarize(&report.Events[i])
	}
	return report, nil
}

func (c *Calculator) checkMember(member int, tournaments []model.Tournament) error {
	if member < 1 {
		return fmt.Errorf("%w: member %d, numbering starts at 1", ErrMemberOutOfRange, member)
	}
	row := member - 1
	var want string
	for i, t := range tournaments {
		if row >= t.Table.Len() {
			return fmt.Errorf("%w: member %d, tournament %q has %d rows", ErrMemberOutOfRange, member, t.Name, t.Table.Len())
		}
		if !c.identityCheck {
			continue
		}
		id := t.Table.Identifier(row)
		if i == 0 {
			want = id
			continue
		}
		if id != want {
			return fmt.Errorf("%w: member %d is %q in %q but %q in %q",
				ErrIdentityMismatch, member, want, tournaments[0].Name, id, t.Name)
		}
	}
	return nil
}

func summarize(e *EventStats) {
	xs := make([]float64, len(e.Points))
	ys := make([]float64, len(e.Points))
	for i, p := range e.Points {
		xs[i] = float64(p.Seq)
		ys[i] = p.Normalized
	}
	e.Count = len(e.Points)
	e.Mean, e.StdDev = distribution.MeanStdDev(ys)
	e.Slope = Slope(xs, ys)
}

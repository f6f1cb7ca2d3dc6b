// Package breakdown computes team performance by subject and strategy for
// one tournament table.
package breakdown

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/okian/tourneystats/internal/domain/distribution"
	"github.com/okian/tourneystats/internal/domain/model"
	"github.com/okian/tourneystats/internal/domain/placement"
	"github.com/okian/tourneystats/pkg/logger"
)

// Bucket is the mean percentile of one category. Mean is NaN when Count is 0.
type Bucket struct {
	Name  string
	Mean  float64
	Count int
}

// Result is the breakdown of one tournament in the fixed category orders.
type Result struct {
	Tournament string
	Subjects   []Bucket
	Strategies []Bucket
	Classified int
	Ignored    int
}

// Option applies a configuration option to a Classifier.
type Option func(*Classifier)

// WithRules replaces the keyword table.
func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.rules = rules
	}
}

// WithLogger sets the logger used for malformed cells.
func WithLogger(l logger.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// Classifier buckets event cells by keyword.
type Classifier struct {
	rules  []Rule
	logger logger.Logger
}

// NewClassifier creates a Classifier using DefaultRules. Every rule must name
// a charted subject and strategy.
func NewClassifier(opts ...Option) (*Classifier, error) {
	c := &Classifier{rules: DefaultRules, logger: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	for _, r := range c.rules {
		if indexOf(SubjectOrder, r.Subject) < 0 || indexOf(StrategyOrder, r.Strategy) < 0 {
			return nil, fmt.Errorf("%w: rule %q -> %s/%s", ErrUnknownCategory, r.Keyword, r.Subject, r.Strategy)
		}
	}
	return c, nil
}

// Classify returns the first rule whose keyword occurs in cell, ignoring case.
func (c *Classifier) Classify(cell string) (Rule, bool) {
	lower := strings.ToLower(cell)
	for _, r := range c.rules {
		if strings.Contains(lower, r.Keyword) {
			return r, true
		}
	}
	return Rule{}, false
}

// Compute accumulates the percentile of every classified placement of t into
// its subject and strategy buckets.
func (c *Classifier) Compute(ctx context.Context, t *model.Table) Result {
	subjects := make([][]float64, len(SubjectOrder))
	strategies := make([][]float64, len(StrategyOrder))
	res := Result{Tournament: t.Name}

	for i := 0; i < t.Len(); i++ {
		for _, cell := range t.EventCells(i) {
			p, err := placement.Parse(cell)
			if err != nil {
				if !errors.Is(err, placement.ErrNotPlacement) {
					c.logger.Warn(ctx, "skipping malformed placement",
						logger.String("tournament", t.Name),
						logger.Int("row", i+1),
						logger.Error(err),
					)
				}
				continue
			}
			rule, ok := c.Classify(cell)
			if !ok {
				res.Ignored++
				continue
			}
			res.Classified++
			si := indexOf(SubjectOrder, rule.Subject)
			ti := indexOf(StrategyOrder, rule.Strategy)
			subjects[si] = append(subjects[si], p)
			strategies[ti] = append(strategies[ti], p)
		}
	}

	res.Subjects = make([]Bucket, len(SubjectOrder))
	for i, s := range SubjectOrder {
		res.Subjects[i] = bucket(string(s), subjects[i])
	}
	res.Strategies = make([]Bucket, len(StrategyOrder))
	for i, s := range StrategyOrder {
		res.Strategies[i] = bucket(string(s), strategies[i])
	}
	return res
}

func bucket(name string, values []float64) Bucket {
	mean, _ := distribution.MeanStdDev(values)
	return Bucket{Name: name, Mean: mean, Count: len(values)}
}

func indexOf[T comparable](order []T, v T) int {
	for i, o := range order {
		if o == v {
			return i
		}
	}
	return -1
}

// Package report writes the console report and the workbook export.
package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/okian/tourneystats/internal/domain/breakdown"
	"github.com/okian/tourneystats/internal/domain/distribution"
	"github.com/okian/tourneystats/internal/domain/individual"
	"github.com/okian/tourneystats/internal/domain/model"
	"github.com/okian/tourneystats/internal/domain/placement"
)

// TournamentSummary is one line of the distribution section.
type TournamentSummary struct {
	Tournament model.Tournament
	Stats      distribution.Stats
}

// Printer renders report sections as plain text.
type Printer struct {
	w         io.Writer
	runID     string
	precision int
}

// NewPrinter creates a Printer writing to w with full float precision.
func NewPrinter(w io.Writer, opts ...Option) *Printer {
	p := &Printer{w: w, precision: -1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Header prints the run banner.
func (p *Printer) Header(tournaments int) error {
	if p.runID == "" {
		_, err := fmt.Fprintf(p.w, "Tournament statistics (%d tournaments)\n\n", tournaments)
		return err
	}
	_, err := fmt.Fprintf(p.w, "Tournament statistics (%d tournaments, run %s)\n\n", tournaments, p.runID)
	return err
}

// Distributions prints one row per tournament in chronological order.
func (p *Printer) Distributions(rows []TournamentSummary) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTournament\tMean\tStd Dev\tPlacements\tSkipped\tMalformed")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\n",
			r.Tournament.Seq+1,
			r.Tournament.Name,
			p.float(r.Tournament.Distribution.Mean),
			p.float(r.Tournament.Distribution.StdDev),
			r.Stats.Placements,
			r.Stats.Skipped,
			r.Stats.Malformed,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.w)
	return err
}

// Breakdown prints the subject and strategy means of one tournament.
func (p *Printer) Breakdown(res breakdown.Result) error {
	fmt.Fprintf(p.w, "Team breakdown: %s (%d classified, %d ignored)\n", res.Tournament, res.Classified, res.Ignored)
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	p.buckets(tw, "Subject", res.Subjects)
	p.buckets(tw, "Strategy", res.Strategies)
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.w)
	return err
}

func (p *Printer) buckets(tw io.Writer, kind string, bs []breakdown.Bucket) {
	fmt.Fprintf(tw, "%s\tMean\tCount\n", kind)
	for _, b := range bs {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", b.Name, p.float(b.Mean), b.Count)
	}
}

// Individual prints the per-event statistics of one competitor.
func (p *Printer) Individual(r individual.Report) error {
	if _, err := fmt.Fprintf(p.w, "Name: %d\n", r.Member); err != nil {
		return err
	}
	for _, e := range r.Events {
		_, err := fmt.Fprintf(p.w,
			"Event: %s\nAverage Percentile: %s\nStandard Deviation: %s\nLinear Regression Slope: %s\nNumber of times competed: %d\n",
			placement.DisplayName(e.Name),
			p.float(e.Mean),
			p.float(e.StdDev),
			p.float(e.Slope),
			e.Count,
		)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(p.w)
	return err
}

func (p *Printer) float(v float64) string {
	return strconv.FormatFloat(v, 'f', p.precision, 64)
}

// Package service wires the tournament statistics pipeline: loading tables,
// computing distributions, and producing breakdown and individual reports.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/tourneystats/internal/adapters/chart"
	"github.com/okian/tourneystats/internal/adapters/report"
	"github.com/okian/tourneystats/internal/adapters/repository"
	"github.com/okian/tourneystats/internal/config"
	"github.com/okian/tourneystats/internal/domain/breakdown"
	"github.com/okian/tourneystats/internal/domain/distribution"
	"github.com/okian/tourneystats/internal/domain/individual"
	"github.com/okian/tourneystats/internal/domain/model"
	"github.com/okian/tourneystats/internal/domain/placement"
	"github.com/okian/tourneystats/pkg/logger"
	"github.com/okian/tourneystats/pkg/metrics"
)

// Pipeline stages, as reported by the stage duration histogram.
const (
	StageLoad         = "load"
	StageDistribution = "distribution"
	StageBreakdown    = "breakdown"
	StageIndividual   = "individual"
	StageExport       = "export"
)

const histogramBins = 10

// Service runs the statistics pipeline over one season of tournaments.
type Service struct {
	mu sync.RWMutex

	// Inputs
	store   repository.Store
	dataDir string
	sources []repository.Source

	// Run selection
	members        []int
	breakdownNames []string

	// Computation settings
	minNameLen    int
	identityCheck bool

	// Outputs
	out              io.Writer
	chartDir         string
	renderCharts     bool
	renderHistograms bool
	exportPath       string
	metricsFile      string

	runID   string
	logger  logger.Logger
	metrics *metrics.Manager

	// State, set by Load
	loaded      bool
	tournaments []model.Tournament
	percentiles [][]float64
	summaries   []report.TournamentSummary
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the table store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSources sets the tournament sources in chronological order.
func WithSources(srcs []repository.Source) Option {
	return func(s *Service) {
		s.sources = srcs
	}
}

// WithMembers sets the 1-based members reported by Run.
func WithMembers(members ...int) Option {
	return func(s *Service) {
		s.members = members
	}
}

// WithBreakdownTournaments sets the tournaments Run breaks down by category.
func WithBreakdownTournaments(names ...string) Option {
	return func(s *Service) {
		s.breakdownNames = names
	}
}

// WithMinEventNameLength drops event names of at most n characters.
func WithMinEventNameLength(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.minNameLen = n
		}
	}
}

// WithIdentityCheck requires a member's identifier to match in every table.
func WithIdentityCheck(enabled bool) Option {
	return func(s *Service) {
		s.identityCheck = enabled
	}
}

// WithOutput sets the destination of the text report.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.out = w
		}
	}
}

// WithCharts enables PNG charts written into dir.
func WithCharts(dir string, histograms bool) Option {
	return func(s *Service) {
		s.renderCharts = dir != ""
		s.renderHistograms = dir != "" && histograms
		s.chartDir = dir
	}
}

// WithExportXLSX writes every member report into a workbook at path.
func WithExportXLSX(path string) Option {
	return func(s *Service) {
		s.exportPath = path
	}
}

// WithMetricsFile dumps the metrics registry to path after Run.
func WithMetricsFile(path string) Option {
	return func(s *Service) {
		s.metricsFile = path
	}
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.runID = id
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager shared by every component.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithConfig applies every setting of cfg, including a file store rooted at
// cfg.DataDir. Options listed after it still override.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		srcs := make([]repository.Source, len(cfg.Tournaments))
		for i, t := range cfg.Tournaments {
			srcs[i] = repository.Source{Name: t.Name, Path: t.File, Sheet: t.Sheet}
		}
		s.sources = srcs
		s.store = nil // built in New with the final logger and metrics
		s.dataDir = cfg.DataDir
		s.members = cfg.Members
		s.breakdownNames = cfg.BreakdownTournaments
		s.minNameLen = cfg.MinEventNameLength
		s.identityCheck = cfg.IdentityCheck
		s.renderCharts = cfg.RenderCharts
		s.renderHistograms = cfg.RenderHistograms
		s.chartDir = cfg.ChartDir
		s.exportPath = cfg.ExportXLSX
		s.metricsFile = cfg.MetricsFile
	}
}

// New constructs a Service. Without WithStore, tables are read from disk.
func New(opts ...Option) *Service {
	s := &Service{
		minNameLen: placement.DefaultMinNameLength,
		out:        os.Stdout,
		runID:      uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.metrics == nil {
		s.metrics = metrics.Default()
	}
	s.logger = s.logger.With(logger.String("run_id", s.runID))
	if s.store == nil {
		s.store = repository.NewFileStore(
			repository.WithBaseDir(s.dataDir),
			repository.WithLogger(s.logger.Named("repository")),
			repository.WithMetrics(s.metrics),
		)
	}
	return s
}

// RunID identifies this run in logs and the report header.
func (s *Service) RunID() string {
	return s.runID
}

// Load reads every tournament table and computes the tournament
// distributions concurrently. A tournament without placements fails the
// load with distribution.ErrEmpty.
func (s *Service) Load(ctx context.Context) error {
	start := time.Now()
	tables, err := s.store.LoadAll(ctx, s.sources)
	s.metrics.ObserveStage(StageLoad, time.Since(start))
	if err != nil {
		s.metrics.RecordError("repository")
		return fmt.Errorf("load tournaments: %w", err)
	}

	start = time.Now()
	calc := distribution.NewCalculator(
		distribution.WithLogger(s.logger.Named("distribution")),
		distribution.WithMetrics(s.metrics),
	)
	tournaments := make([]model.Tournament, len(tables))
	percentiles := make([][]float64, len(tables))
	summaries := make([]report.TournamentSummary, len(tables))

	g, gctx := errgroup.WithContext(ctx)
	for i, table := range tables {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			values, st := calc.Percentiles(gctx, table)
			d, err := distribution.FromPercentiles(values)
			if err != nil {
				return fmt.Errorf("tournament %q: %w", table.Name, err)
			}
			tournaments[i] = model.Tournament{Seq: i, Name: table.Name, Table: table, Distribution: d}
			percentiles[i] = values
			summaries[i] = report.TournamentSummary{Tournament: tournaments[i], Stats: st}
			s.metrics.SetDistribution(table.Name, d.Mean, d.StdDev)
			return nil
		})
	}
	err = g.Wait()
	s.metrics.ObserveStage(StageDistribution, time.Since(start))
	if err != nil {
		s.metrics.RecordError("distribution")
		return err
	}

	s.mu.Lock()
	s.tournaments = tournaments
	s.percentiles = percentiles
	s.summaries = summaries
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info(ctx, "tournaments loaded", logger.Int("tournaments", len(tournaments)))
	return nil
}

// Tournaments returns the loaded tournaments in chronological order.
func (s *Service) Tournaments() []model.Tournament {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Tournament, len(s.tournaments))
	copy(out, s.tournaments)
	return out
}

// Tournament returns a loaded tournament by name.
func (s *Service) Tournament(name string) (model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return model.Tournament{}, ErrNotLoaded
	}
	for _, t := range s.tournaments {
		if t.Name == name {
			return t, nil
		}
	}
	return model.Tournament{}, fmt.Errorf("%w: %q", ErrUnknownTournament, name)
}

// TeamBreakdown computes the subject and strategy means of table and, when
// charts are enabled, renders them as two bar charts.
func (s *Service) TeamBreakdown(ctx context.Context, table *model.Table) (breakdown.Result, error) {
	classifier, err := breakdown.NewClassifier(breakdown.WithLogger(s.logger.Named("breakdown")))
	if err != nil {
		return breakdown.Result{}, err
	}
	res := classifier.Compute(ctx, table)
	if !s.renderCharts {
		return res, nil
	}

	r := s.renderer()
	if _, err := r.Bars(ctx, table.Name+" subjects", "Subjects: "+table.Name, bars(res.Subjects), 1); err != nil {
		return res, s.chartError(err)
	}
	if _, err := r.Bars(ctx, table.Name+" strategies", "Strategies: "+table.Name, bars(res.Strategies), 1); err != nil {
		return res, s.chartError(err)
	}
	return res, nil
}

// IndividualStats computes the per-event report of a 1-based member across
// every loaded tournament and, when charts are enabled, renders the trend of
// each event competed more than once.
func (s *Service) IndividualStats(ctx context.Context, member int) (individual.Report, error) {
	tournaments := s.Tournaments()
	if len(tournaments) == 0 {
		return individual.Report{}, ErrNotLoaded
	}

	calc := individual.NewCalculator(
		individual.WithMinNameLength(s.minNameLen),
		individual.WithIdentityCheck(s.identityCheck),
		individual.WithLogger(s.logger.Named("individual")),
	)
	rep, err := calc.Compute(ctx, member, tournaments)
	if err != nil {
		s.metrics.RecordError("individual")
		return individual.Report{}, err
	}
	s.metrics.RecordMemberReport(len(rep.Events))
	if !s.renderCharts {
		return rep, nil
	}

	ticks := make([]string, len(tournaments))
	for i, t := range tournaments {
		ticks[i] = t.Name
	}
	trended := rep.Trended()
	lines := make([]chart.Line, len(trended))
	for i, e := range trended {
		lines[i] = chart.Line{Name: e.Name}
		for _, p := range e.Points {
			lines[i].X = append(lines[i].X, float64(p.Seq))
			lines[i].Y = append(lines[i].Y, p.Normalized)
		}
	}
	_, err = s.renderer().Lines(ctx, fmt.Sprintf("member %d", member), fmt.Sprintf("Member %d", member), lines, ticks)
	switch {
	case errors.Is(err, chart.ErrNothingToRender):
		s.logger.Debug(ctx, "no trended events to chart", logger.Int("member", member))
	case err != nil:
		return rep, s.chartError(err)
	}
	return rep, nil
}

// Histograms renders the raw percentile histogram of every loaded tournament.
func (s *Service) Histograms(ctx context.Context) error {
	s.mu.RLock()
	tournaments, percentiles := s.tournaments, s.percentiles
	s.mu.RUnlock()
	if len(tournaments) == 0 {
		return ErrNotLoaded
	}

	r := s.renderer()
	for i, t := range tournaments {
		bins := distribution.Histogram(percentiles[i], histogramBins)
		hb := make([]chart.Bar, len(bins))
		for j, b := range bins {
			hb[j] = chart.Bar{Label: fmt.Sprintf("%.1f-%.1f", b.Lo, b.Hi), Value: float64(b.Count)}
		}
		if _, err := r.Histogram(ctx, t.Name+" histogram", "Percentiles: "+t.Name, hb); err != nil {
			return s.chartError(err)
		}
	}
	return nil
}

// Run executes the whole batch: load, distributions, breakdowns, member
// reports, then the optional workbook and metrics dump.
func (s *Service) Run(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}

	s.mu.RLock()
	summaries := s.summaries
	s.mu.RUnlock()

	p := report.NewPrinter(s.out, report.WithRunID(s.runID))
	if err := p.Header(len(summaries)); err != nil {
		return err
	}
	if err := p.Distributions(summaries); err != nil {
		return err
	}
	if s.renderHistograms {
		if err := s.Histograms(ctx); err != nil {
			return err
		}
	}

	start := time.Now()
	for _, name := range s.breakdownNames {
		t, err := s.Tournament(name)
		if err != nil {
			return err
		}
		res, err := s.TeamBreakdown(ctx, t.Table)
		if err != nil {
			return err
		}
		if err := p.Breakdown(res); err != nil {
			return err
		}
	}
	s.metrics.ObserveStage(StageBreakdown, time.Since(start))

	start = time.Now()
	reports := make([]individual.Report, 0, len(s.members))
	for _, m := range s.members {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep, err := s.IndividualStats(ctx, m)
		if err != nil {
			return err
		}
		if err := p.Individual(rep); err != nil {
			return err
		}
		reports = append(reports, rep)
	}
	s.metrics.ObserveStage(StageIndividual, time.Since(start))

	if s.exportPath != "" {
		start = time.Now()
		if err := report.ExportXLSX(s.exportPath, reports); err != nil {
			s.metrics.RecordError("report")
			return err
		}
		s.metrics.ObserveStage(StageExport, time.Since(start))
		s.logger.Info(ctx, "workbook exported", logger.String("path", s.exportPath))
	}

	if s.metricsFile != "" {
		if err := s.metrics.WriteTextfile(s.metricsFile); err != nil {
			return err
		}
	}

	s.logger.Info(ctx, "run complete",
		logger.Int("members", len(reports)),
		logger.Int("breakdowns", len(s.breakdownNames)),
	)
	return nil
}

func (s *Service) renderer() *chart.Renderer {
	return chart.NewRenderer(
		chart.WithDir(s.chartDir),
		chart.WithLogger(s.logger.Named("chart")),
		chart.WithMetrics(s.metrics),
	)
}

func (s *Service) chartError(err error) error {
	s.metrics.RecordError("chart")
	return err
}

func bars(buckets []breakdown.Bucket) []chart.Bar {
	out := make([]chart.Bar, len(buckets))
	for i, b := range buckets {
		out[i] = chart.Bar{Label: b.Name, Value: b.Mean}
	}
	return out
}

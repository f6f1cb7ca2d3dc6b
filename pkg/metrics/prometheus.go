package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cell outcomes recorded by RecordCell.
const (
	OutcomePlacement = "placement"
	OutcomeSkipped   = "skipped"
	OutcomeMalformed = "malformed"
)

// Manager owns the Prometheus collectors of one process.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Parsing
	cells *prometheus.CounterVec

	// Tournaments
	tournamentsLoaded *prometheus.CounterVec
	tournamentMean    *prometheus.GaugeVec
	tournamentStdDev  *prometheus.GaugeVec

	// Reports
	membersReported prometheus.Counter
	eventGroups     prometheus.Histogram
	chartsRendered  *prometheus.CounterVec

	// Run health
	stageDuration *prometheus.HistogramVec
	errors        *prometheus.CounterVec
}

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry dumped at exit

var globalManager = NewManager(WithPrometheusRegistry(customRegistry)) //nolint:gochecknoglobals // singleton manager

// NewManager creates a new metrics manager registered on its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tourney",
		subsystem:        "stats",
		histogramBuckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.cells = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cells_total",
		Help:      "Event cells seen, by tournament and parse outcome",
	}, []string{"tournament", "outcome"})

	m.tournamentsLoaded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tournaments_loaded_total",
		Help:      "Tournament tables loaded, by source format",
	}, []string{"format"})

	m.tournamentMean = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tournament_percentile_mean",
		Help:      "Mean percentile of a tournament",
	}, []string{"tournament"})

	m.tournamentStdDev = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tournament_percentile_stddev",
		Help:      "Population standard deviation of a tournament's percentiles",
	}, []string{"tournament"})

	m.membersReported = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "members_reported_total",
		Help:      "Competitors with an individual statistics report",
	})

	m.eventGroups = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "member_event_groups",
		Help:      "Number of event groups per competitor report",
		Buckets:   prometheus.LinearBuckets(1, 2, 10),
	})

	m.chartsRendered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "charts_rendered_total",
		Help:      "Charts written, by kind",
	}, []string{"kind"})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_duration_seconds",
		Help:      "Wall time of each batch stage",
		Buckets:   m.histogramBuckets,
	}, []string{"stage"})

	m.errors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Errors by component",
	}, []string{"component"})
}

// Registry returns the registry the manager's collectors live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// RecordCell counts one event cell for a tournament.
func (m *Manager) RecordCell(tournament, outcome string) {
	m.cells.WithLabelValues(tournament, outcome).Inc()
}

// RecordTournamentLoaded counts a loaded table by format ("csv", "xlsx").
func (m *Manager) RecordTournamentLoaded(format string) {
	m.tournamentsLoaded.WithLabelValues(format).Inc()
}

// SetDistribution publishes a tournament's distribution.
func (m *Manager) SetDistribution(tournament string, mean, stddev float64) {
	m.tournamentMean.WithLabelValues(tournament).Set(mean)
	m.tournamentStdDev.WithLabelValues(tournament).Set(stddev)
}

// RecordMemberReport counts a competitor report with its number of event groups.
func (m *Manager) RecordMemberReport(groups int) {
	m.membersReported.Inc()
	m.eventGroups.Observe(float64(groups))
}

// RecordChart counts a rendered chart.
func (m *Manager) RecordChart(kind string) {
	m.chartsRendered.WithLabelValues(kind).Inc()
}

// ObserveStage records how long a stage took.
func (m *Manager) ObserveStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordError counts an error for a component.
func (m *Manager) RecordError(component string) {
	m.errors.WithLabelValues(component).Inc()
}

// WriteTextfile dumps the registry in the Prometheus text format.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}

// Default returns the process-wide manager.
func Default() *Manager {
	return globalManager
}

// RecordCell counts one event cell on the process-wide manager.
func RecordCell(tournament, outcome string) { globalManager.RecordCell(tournament, outcome) }

// RecordTournamentLoaded counts a loaded table on the process-wide manager.
func RecordTournamentLoaded(format string) { globalManager.RecordTournamentLoaded(format) }

// SetDistribution publishes a distribution on the process-wide manager.
func SetDistribution(tournament string, mean, stddev float64) {
	globalManager.SetDistribution(tournament, mean, stddev)
}

// RecordMemberReport counts a competitor report on the process-wide manager.
func RecordMemberReport(groups int) { globalManager.RecordMemberReport(groups) }

// RecordChart counts a chart on the process-wide manager.
func RecordChart(kind string) { globalManager.RecordChart(kind) }

// ObserveStage records a stage duration on the process-wide manager.
func ObserveStage(stage string, d time.Duration) { globalManager.ObserveStage(stage, d) }

// RecordError counts an error on the process-wide manager.
func RecordError(component string) { globalManager.RecordError(component) }

// WriteTextfile dumps the process-wide registry.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

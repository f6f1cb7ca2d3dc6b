// Package config defines the batch run configuration and its loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and TOURNEY_ environment variables over New().
// - External errors are wrapped with this package's sentinel errors.
package config

// TournamentSource names one tournament table on disk. Sources are listed in
// chronological order; their position is the time axis of trend statistics.
type TournamentSource struct {
	// Name identifies the tournament in reports, charts and metrics.
	Name string `koanf:"name"`

	// File is a .csv or .xlsx path, relative to DataDir unless absolute.
	File string `koanf:"file"`

	// Sheet selects a worksheet for .xlsx sources; empty means the first sheet.
	Sheet string `koanf:"sheet"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DataDir is the directory relative source files are resolved against.
	DataDir string `koanf:"data_dir"`

	// Tournaments lists the tournament tables in chronological order.
	Tournaments []TournamentSource `koanf:"tournaments"`

	// Members are the 1-based competitor row numbers to report on.
	Members []int `koanf:"members"`

	// BreakdownTournaments names the tournaments that get a team breakdown.
	BreakdownTournaments []string `koanf:"breakdown_tournaments"`

	// MinEventNameLength drops event names of this length or shorter.
	MinEventNameLength int `koanf:"min_event_name_length"`

	// IdentityCheck requires a competitor's identifier cell to match across tables.
	IdentityCheck bool `koanf:"identity_check"`

	// RenderCharts enables PNG output into ChartDir.
	RenderCharts bool `koanf:"render_charts"`

	// RenderHistograms adds a percentile histogram per tournament.
	RenderHistograms bool `koanf:"render_histograms"`

	// ChartDir receives rendered charts.
	ChartDir string `koanf:"chart_dir"`

	// ExportXLSX, when set, is the path of a workbook with every member report.
	ExportXLSX string `koanf:"export_xlsx"`

	// MetricsFile, when set, receives a Prometheus text dump at the end of the run.
	MetricsFile string `koanf:"metrics_file"`
}

// DefaultTournaments is the season the tool was written for.
func DefaultTournaments() []TournamentSource {
	return []TournamentSource{
		{Name: "initial_diagnostic", File: "initial_diagnostic.csv"},
		{Name: "rickards", File: "rickards.csv"},
		{Name: "boyceville", File: "boyceville.csv"},
		{Name: "regionals_diagnostic", File: "regionals_diagnostic.csv"},
		{Name: "regionals", File: "regionals.csv"},
		{Name: "yuso", File: "yuso.csv"},
		{Name: "birdso", File: "birdso.csv"},
		{Name: "states", File: "states.csv"},
	}
}

// New creates a Config populated with defaults.
func New() *Config {
	tournaments := DefaultTournaments()
	names := make([]string, 0, len(tournaments))
	for _, t := range tournaments {
		names = append(names, t.Name)
	}
	return &Config{
		LogLevel:             "info",
		DataDir:              ".",
		Tournaments:          tournaments,
		Members:              []int{1, 2, 3},
		BreakdownTournaments: names,
		MinEventNameLength:   4,
		RenderCharts:         true,
		ChartDir:             "charts",
	}
}

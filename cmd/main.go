package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	app "github.com/okian/tourneystats/internal/app"
	"github.com/okian/tourneystats/internal/config"
	"github.com/okian/tourneystats/pkg/logger"
	"github.com/okian/tourneystats/pkg/metrics"
)

// Process exit codes.
const (
	exitOK     = 0
	exitConfig = 1
	exitRun    = 2
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(exitConfig)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stdout)
	stop()
	os.Exit(code)
}

// run loads configuration and executes one batch, writing the text report to
// out. It returns the process exit code.
func run(ctx context.Context, out io.Writer) int {
	loggerInstance := logger.Get()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		loggerInstance.Error(ctx, "failed to load config", logger.Error(err))
		return exitConfig
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithConfig(cfg),
		app.WithOutput(out),
		app.WithLogger(loggerInstance),
		app.WithMetrics(metrics.Default()),
	)

	loggerInstance.Info(ctx, "starting run",
		logger.String("run_id", svc.RunID()),
		logger.String("data_dir", cfg.DataDir),
		logger.Int("tournaments", len(cfg.Tournaments)),
		logger.Int("members", len(cfg.Members)),
	)
	if err := svc.Run(ctx); err != nil {
		loggerInstance.Error(ctx, "run failed", logger.String("run_id", svc.RunID()), logger.Error(err))
		return exitRun
	}
	return exitOK
}

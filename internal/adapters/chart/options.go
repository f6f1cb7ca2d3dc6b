package chart

import (
	"github.com/okian/tourneystats/pkg/logger"
	"github.com/okian/tourneystats/pkg/metrics"
)

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithDir sets the output directory of PNG files.
func WithDir(dir string) Option {
	return func(r *Renderer) {
		if dir != "" {
			r.dir = dir
		}
	}
}

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width = width
			r.height = height
		}
	}
}

// WithLogger sets the renderer logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics counts rendered charts on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

package repository

import (
	"github.com/okian/tourneystats/pkg/logger"
	"github.com/okian/tourneystats/pkg/metrics"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithBaseDir resolves relative source paths against dir.
func WithBaseDir(dir string) Option {
	return func(s *FileStore) {
		if dir != "" {
			s.baseDir = dir
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records loaded tables on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *FileStore) {
		s.metrics = m
	}
}

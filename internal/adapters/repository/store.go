// Package repository loads tournament tables from disk.
package repository

import (
	"context"

	"github.com/okian/tourneystats/internal/domain/model"
)

// Source names one tournament table: a .csv file, or a sheet of an .xlsx workbook.
type Source struct {
	Name  string
	Path  string
	Sheet string
}

// Store provides read access to tournament tables.
type Store interface {
	// Load reads one table. Returns ErrNotFound if the source file is missing.
	Load(ctx context.Context, src Source) (*model.Table, error)

	// LoadAll reads every source, preserving order.
	LoadAll(ctx context.Context, srcs []Source) ([]*model.Table, error)
}

package repository

import "errors"

// Sentinel kinds for tournament table loading.
var (
	ErrNotFound          = errors.New("tournament source not found")
	ErrUnsupportedFormat = errors.New("unsupported tournament source format")
	ErrSheetNotFound     = errors.New("worksheet not found")
	ErrNoHeader          = errors.New("tournament source has no header row")
)

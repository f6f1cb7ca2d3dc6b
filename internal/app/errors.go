package service

import "errors"

// Sentinel kinds for pipeline misuse.
var (
	ErrNotLoaded         = errors.New("tournaments not loaded")
	ErrUnknownTournament = errors.New("unknown tournament")
)

package chart

import "errors"

// Sentinel kinds for chart rendering.
var (
	ErrNothingToRender = errors.New("nothing to render")
	ErrRender          = errors.New("chart render failed")
)

// Package placement turns free-text tournament cells into percentiles and
// stable event names.
//
// Accepted notations:
//
//	"12/45"          place 12 of 45       -> 1 - 12/45
//	"87%"            87th of 100          -> 1 - 87/100
//	"score 30/50"    30 points of 50      -> 1 - (50-30)/50
package placement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMinNameLength is the longest event name still treated as noise.
const DefaultMinNameLength = 4

const (
	percentMarker = "%"
	scoreMarker   = "score"
	percentDenom  = 100
	minTokenCount = 2
)

var (
	numberPattern    = regexp.MustCompile(`\d*\.\d+|\d+`)
	nameNoisePattern = regexp.MustCompile(`[0-9]+|[/*.%()]|rank|score`)
)

// Placement is the (numerator, denominator) pair read from a cell, after the
// score rewrite has been applied.
type Placement struct {
	Numerator   float64
	Denominator float64
}

// Percentile returns 1 - numerator/denominator; higher is better.
func (p Placement) Percentile() float64 {
	return 1 - p.Numerator/p.Denominator
}

// ParsePlacement extracts the placement of a cell. It returns ErrNotPlacement
// when fewer than two numbers are present and ErrMalformedPlacement when the
// denominator is zero.
func ParsePlacement(cell string) (Placement, error) {
	lower := strings.ToLower(cell)

	raw := numberPattern.FindAllString(lower, -1)
	tokens := make([]float64, 0, len(raw)+1)
	for _, r := range raw {
		v, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return Placement{}, fmt.Errorf("%w: %q: %w", ErrMalformedPlacement, cell, err)
		}
		tokens = append(tokens, v)
	}
	if strings.Contains(lower, percentMarker) {
		tokens = append(tokens, percentDenom)
	}
	if len(tokens) < minTokenCount {
		return Placement{}, ErrNotPlacement
	}

	p := Placement{Numerator: tokens[0], Denominator: tokens[1]}
	if strings.Contains(lower, scoreMarker) {
		// A score counts up; the gap to the maximum plays the role of a place.
		p.Numerator = p.Denominator - p.Numerator
	}
	if p.Denominator == 0 {
		return Placement{}, fmt.Errorf("%w: zero denominator in %q", ErrMalformedPlacement, cell)
	}
	return p, nil
}

// Parse returns the percentile of a cell.
func Parse(cell string) (float64, error) {
	p, err := ParsePlacement(cell)
	if err != nil {
		return 0, err
	}
	return p.Percentile(), nil
}

// EventName strips numbers, punctuation and the words "rank" and "score"
// from a cell and case-folds the rest, so "Anatomy & Physiology rank 3/10"
// and "anatomy & physiology (score 41.5/80)" share a key.
func EventName(cell string) string {
	name := nameNoisePattern.ReplaceAllString(strings.ToLower(cell), "")
	return strings.Join(strings.Fields(name), " ")
}

// IsEventName reports whether name is long enough to be a real event rather
// than a stray token.
func IsEventName(name string, minLen int) bool {
	return utf8.RuneCountInString(name) > minLen
}

// DisplayName upper-cases the first letter of a normalized event name.
func DisplayName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// Package chart renders report charts as PNG files.
package chart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/okian/tourneystats/pkg/logger"
	"github.com/okian/tourneystats/pkg/metrics"
)

// Chart kinds, used for file naming and metrics.
const (
	KindBar       = "bar"
	KindLine      = "line"
	KindHistogram = "histogram"
)

const (
	defaultWidth  = 1400
	defaultHeight = 700
	barWidth      = 80
	barSpacing    = 40
	filePerm      = 0o644
	dirPerm       = 0o755
)

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]+`)

// Bar is one category of a bar chart. A NaN value is drawn as an empty bar.
type Bar struct {
	Label string
	Value float64
}

// Line is one series of a line chart.
type Line struct {
	Name string
	X    []float64
	Y    []float64
}

// Renderer writes charts into a directory.
type Renderer struct {
	dir     string
	width   int
	height  int
	logger  logger.Logger
	metrics *metrics.Manager
}

// NewRenderer creates a Renderer writing into ./charts.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		dir:    "charts",
		width:  defaultWidth,
		height: defaultHeight,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderBars draws a bar chart with a [0, yMax] value axis to w.
func (r *Renderer) RenderBars(w io.Writer, title string, bars []Bar, yMax float64) error {
	if len(bars) == 0 {
		return ErrNothingToRender
	}
	if yMax <= 0 || math.IsNaN(yMax) {
		yMax = 1
	}
	values := make([]gochart.Value, len(bars))
	for i, b := range bars {
		v, label := b.Value, b.Label
		if math.IsNaN(v) {
			v, label = 0, label+" (n/a)"
		}
		values[i] = gochart.Value{Label: label, Value: v}
	}
	bc := gochart.BarChart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: yMax}},
		Bars:       values,
	}
	if err := bc.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrRender, title, err)
	}
	return nil
}

// RenderLines draws normalized percentile series against the tournament axis.
// ticks label the x positions 0..len(ticks)-1.
func (r *Renderer) RenderLines(w io.Writer, title string, lines []Line, ticks []string) error {
	series := make([]gochart.Series, 0, len(lines))
	for _, l := range lines {
		if len(l.X) < 2 || len(l.X) != len(l.Y) {
			continue
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    l.Name,
			XValues: l.X,
			YValues: l.Y,
			Style: gochart.Style{
				StrokeWidth: 2,
				DotWidth:    4,
			},
		})
	}
	if len(series) == 0 {
		return ErrNothingToRender
	}

	xMax := float64(len(ticks) - 1)
	if xMax < 1 {
		xMax = 1
	}
	xTicks := make([]gochart.Tick, len(ticks))
	for i, t := range ticks {
		xTicks[i] = gochart.Tick{Value: float64(i), Label: t}
	}

	ch := gochart.Chart{
		Title:      title,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  "Tournament",
			Range: &gochart.ContinuousRange{Min: 0, Max: xMax},
			Ticks: xTicks,
		},
		YAxis: gochart.YAxis{
			Name:  "Normalized percentile",
			Range: &gochart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrRender, title, err)
	}
	return nil
}

// Bars renders a bar chart into <dir>/<name>.png and returns the path.
func (r *Renderer) Bars(ctx context.Context, name, title string, bars []Bar, yMax float64) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderBars(&buf, title, bars, yMax); err != nil {
		return "", err
	}
	return r.write(ctx, KindBar, name, buf.Bytes())
}

// Histogram renders bucket counts as a bar chart.
func (r *Renderer) Histogram(ctx context.Context, name, title string, bars []Bar) (string, error) {
	yMax := 0.0
	for _, b := range bars {
		if b.Value > yMax {
			yMax = b.Value
		}
	}
	var buf bytes.Buffer
	if err := r.RenderBars(&buf, title, bars, yMax); err != nil {
		return "", err
	}
	return r.write(ctx, KindHistogram, name, buf.Bytes())
}

// Lines renders a line chart into <dir>/<name>.png and returns the path.
func (r *Renderer) Lines(ctx context.Context, name, title string, lines []Line, ticks []string) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderLines(&buf, title, lines, ticks); err != nil {
		return "", err
	}
	return r.write(ctx, KindLine, name, buf.Bytes())
}

func (r *Renderer) write(ctx context.Context, kind, name string, png []byte) (string, error) {
	if err := os.MkdirAll(r.dir, dirPerm); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(r.dir, FileName(name))
	if err := os.WriteFile(path, png, filePerm); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	if r.metrics != nil {
		r.metrics.RecordChart(kind)
	}
	r.logger.Info(ctx, "chart written", logger.String("kind", kind), logger.String("path", path))
	return path, nil
}

// FileName turns a chart name into a safe PNG file name.
func FileName(name string) string {
	slug := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if slug == "" {
		slug = "chart"
	}
	return slug + ".png"
}

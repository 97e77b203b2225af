// Package chart draws price bundles as dual-axis time-series PNG charts.
package chart

import (
	"bytes"
	"math"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"

	"github.com/rxtech-lab/fxgold/internal/logger"
	"github.com/rxtech-lab/fxgold/pkg/errors"
	"github.com/rxtech-lab/fxgold/pkg/marketdata"
)

const (
	DefaultDPI          = 300
	DefaultWidthInches  = 12.0
	DefaultHeightInches = 6.0
	// TitleDateLayout formats the range dates in the chart title.
	TitleDateLayout = "2006-01-02"
	// rangePadding widens each value axis by this fraction of its span.
	rangePadding = 0.05
)

var (
	// goldColor is used for every secondary-axis series.
	goldColor = drawing.ColorFromHex("DAA520")
	// primaryColors cycle over the exchange-rate series.
	primaryColors = []drawing.Color{
		drawing.ColorFromHex("1F77B4"),
		drawing.ColorFromHex("D62728"),
		drawing.ColorFromHex("2CA02C"),
		drawing.ColorFromHex("9467BD"),
		drawing.ColorFromHex("8C564B"),
	}
)

// Options configures a Renderer. Zero values fall back to defaults.
type Options struct {
	OutputDir    string
	DPI          float64
	WidthInches  float64
	HeightInches float64
	// Open shows the written chart with Viewer.
	Open   bool
	Viewer Viewer
	Logger *logger.Logger
	Clock  func() time.Time
}

// Renderer lays out a bundle on a dual-axis chart and persists it as PNG.
type Renderer struct {
	outputDir    string
	dpi          float64
	widthInches  float64
	heightInches float64
	open         bool
	viewer       Viewer
	logger       *logger.Logger
	now          func() time.Time
}

// NewRenderer creates a renderer from options.
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		outputDir:    opts.OutputDir,
		dpi:          opts.DPI,
		widthInches:  opts.WidthInches,
		heightInches: opts.HeightInches,
		open:         opts.Open,
		viewer:       opts.Viewer,
		logger:       opts.Logger,
		now:          opts.Clock,
	}

	if r.outputDir == "" {
		r.outputDir = "."
	}

	if r.dpi <= 0 {
		r.dpi = DefaultDPI
	}

	if r.widthInches <= 0 {
		r.widthInches = DefaultWidthInches
	}

	if r.heightInches <= 0 {
		r.heightInches = DefaultHeightInches
	}

	if r.viewer == nil {
		r.viewer = NewSystemViewer()
	}

	if r.logger == nil {
		r.logger = logger.NewNop()
	}

	if r.now == nil {
		r.now = time.Now
	}

	return r
}

// Title returns the chart title for a date range.
func Title(r marketdata.DateRange) string {
	return "Exchange Rates vs Gold Price (" + r.Start.Format(TitleDateLayout) + " to " + r.End.Format(TitleDateLayout) + ")"
}

// Render draws the bundle, writes it to a new timestamped file in the output
// directory and returns the file path. The bundle must not be empty.
// A viewer failure is logged and does not fail the render.
func (r *Renderer) Render(bundle *marketdata.Bundle, dateRange marketdata.DateRange) (string, error) {
	graph, err := r.Build(bundle, dateRange)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return "", errors.Wrap(errors.ErrCodeChartRenderFailed, "failed to render chart", err)
	}

	f, err := createFree(r.outputDir, r.now())
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeChartWriteFailed, err, "failed to create chart file in %s", r.outputDir)
	}

	path := f.Name()

	if _, err := buf.WriteTo(f); err != nil {
		_ = f.Close()

		return "", errors.Wrapf(errors.ErrCodeChartWriteFailed, err, "failed to write %s", path)
	}

	if err := f.Close(); err != nil {
		return "", errors.Wrapf(errors.ErrCodeChartWriteFailed, err, "failed to close %s", path)
	}

	r.logger.Info("Chart saved",
		zap.String("path", path),
		zap.Int("width", graph.Width),
		zap.Int("height", graph.Height),
		zap.Float64("dpi", graph.DPI))

	if r.open {
		if err := r.viewer.Open(path); err != nil {
			r.logger.Warn("Failed to open chart viewer", zap.String("path", path), zap.Error(err))
		}
	}

	return path, nil
}

// Build lays out the chart without rendering it.
func (r *Renderer) Build(bundle *marketdata.Bundle, dateRange marketdata.DateRange) (gochart.Chart, error) {
	if bundle.Empty() {
		return gochart.Chart{}, errors.New(errors.ErrCodeNoDataFound, "no data to chart")
	}

	primary := bundle.ByAxis(marketdata.AxisPrimary)
	secondary := bundle.ByAxis(marketdata.AxisSecondary)

	xMin := monthStart(dateRange.Start)
	xMax := dateRange.End
	if !xMax.After(xMin) {
		xMax = xMin.AddDate(0, 0, 1)
	}

	graph := gochart.Chart{
		Title:  Title(dateRange),
		Width:  int(math.Round(r.widthInches * r.dpi)),
		Height: int(math.Round(r.heightInches * r.dpi)),
		DPI:    r.dpi,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 60, Left: 40, Right: 40, Bottom: 40},
		},
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeValueFormatterWithFormat(TickLayout),
			Range:          &gochart.ContinuousRange{Min: gochart.TimeToFloat64(xMin), Max: gochart.TimeToFloat64(xMax)},
			Ticks:          AxisTicks(xMin, xMax),
			TickStyle:      gochart.Style{TextRotationDegrees: 45.0},
		},
		YAxis: gochart.YAxis{
			Name: marketdata.AxisPrimary.Title(),
		},
		YAxisSecondary: gochart.YAxis{
			Name: marketdata.AxisSecondary.Title(),
		},
	}

	primaryRange, hasPrimary := valueRange(primary)
	secondaryRange, hasSecondary := valueRange(secondary)

	if !hasPrimary && !hasSecondary {
		return gochart.Chart{}, errors.New(errors.ErrCodeNoDataFound, "no values to chart")
	}

	switch {
	case !hasPrimary:
		// the primary axis always needs a range; mirror the secondary one and hide it
		primaryRange = secondaryRange
		graph.YAxis.Style = gochart.Style{Hidden: true}
	case !hasSecondary:
		secondaryRange = primaryRange
		graph.YAxisSecondary.Style = gochart.Style{Hidden: true}
	}

	graph.YAxis.Range = primaryRange
	graph.YAxisSecondary.Range = secondaryRange

	// legend order follows bundle order across both axes
	colorIndex := 0

	for _, s := range bundle.Series() {
		series := gochart.TimeSeries{
			Name:    s.Label,
			XValues: s.Dates(),
			YValues: s.Values(),
		}

		if s.Axis == marketdata.AxisSecondary {
			series.YAxis = gochart.YAxisSecondary
			series.Style = gochart.Style{StrokeColor: goldColor, StrokeWidth: 6}
		} else {
			series.YAxis = gochart.YAxisPrimary
			series.Style = gochart.Style{StrokeColor: primaryColors[colorIndex%len(primaryColors)], StrokeWidth: 3}
			colorIndex++
		}

		graph.Series = append(graph.Series, series)
	}

	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	r.logger.Debug("Chart layout",
		zap.Int("primary", len(primary)),
		zap.Int("secondary", len(secondary)),
		zap.Int("ticks", len(graph.XAxis.Ticks)))

	return graph, nil
}

// valueRange spans every value of the series with some padding. It reports
// false when there are no values.
func valueRange(series []marketdata.PriceSeries) (*gochart.ContinuousRange, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)

	for _, s := range series {
		for _, p := range s.Points {
			lo = math.Min(lo, p.Value)
			hi = math.Max(hi, p.Value)
		}
	}

	if math.IsInf(lo, 1) {
		return nil, false
	}

	pad := (hi - lo) * rangePadding
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*rangePadding, 1)
	}

	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}, true
}

// Package charts renders the pipeline's PNG charts with go-chart.
package charts

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"salesreport/domain/core"
	"salesreport/domain/sales"
	"salesreport/internal"
	"salesreport/internal/analysis"
	"salesreport/internal/config"
	"salesreport/internal/errors"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart titles
const (
	TitleCountBar     = "Counts of Ratings for Each Main Category"
	TitleMeanBar      = "Mean Ratings for Each Main Category"
	titleHistogramFmt = "Ratings Distribution for %s"
)

const (
	barWidth   = 40
	barSpacing = 20
	sideMargin = 160
)

var (
	barColor       = drawing.ColorFromHex("ADD8E6")
	histogramColor = drawing.ColorFromHex("93C572")
	edgeColor      = drawing.ColorFromHex("000000")
)

// RendererConfig holds chart output settings
type RendererConfig struct {
	ImageDir          string
	Bins              int
	HistogramCategory string // config.SelectFirst / SelectAlphabetical / SelectLargest
	Width             int
	Height            int
}

// DefaultRendererConfig mirrors config.Default
func DefaultRendererConfig() RendererConfig {
	return RendererConfig{
		ImageDir:          "images",
		Bins:              20,
		HistogramCategory: config.SelectFirst,
		Width:             1000,
		Height:            600,
	}
}

// Renderer writes the histogram and both bar charts
type Renderer struct {
	config RendererConfig
	logger *internal.Logger
}

// NewRenderer creates a renderer
func NewRenderer(config RendererConfig, logger *internal.Logger) *Renderer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Renderer{config: config, logger: logger.With("charts")}
}

// Render writes every chart into the image directory, overwriting existing
// files, and returns them in the order written. An empty dataset fails
// before anything touches the disk.
func (r *Renderer) Render(ctx context.Context, ds *sales.Dataset, tables sales.Tables) ([]sales.ChartArtifact, error) {
	if ds.IsEmpty() {
		return nil, core.ErrEmptyDataset
	}

	category, err := analysis.SelectHistogramCategory(ds, r.config.HistogramCategory)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(r.config.ImageDir, 0o755); err != nil {
		return nil, errors.RenderError("create image directory", err)
	}

	steps := []struct {
		kind     sales.ChartKind
		category string
		build    func() (*chart.BarChart, error)
	}{
		{sales.ChartRatingsHistogram, category, func() (*chart.BarChart, error) {
			return r.histogramChart(category, analysis.RatingsFor(ds, category))
		}},
		{sales.ChartCountBar, "", func() (*chart.BarChart, error) {
			return r.countChart(tables.MainCounts)
		}},
		{sales.ChartMeanRatingsBar, "", func() (*chart.BarChart, error) {
			return r.meanChart(tables.Stats)
		}},
	}

	artifacts := make([]sales.ChartArtifact, 0, len(steps))
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return artifacts, err
		}

		bc, err := step.build()
		if err != nil {
			return artifacts, errors.RenderError(fmt.Sprintf("build %s", step.kind), err)
		}

		path := sales.ChartPath(r.config.ImageDir, step.kind, step.category)
		if err := writePNG(bc, path); err != nil {
			return artifacts, errors.RenderError(fmt.Sprintf("render %s", path), err)
		}

		r.logger.Info("wrote %s", path)
		artifacts = append(artifacts, sales.ChartArtifact{
			Kind:     step.kind,
			Category: step.category,
			Path:     path,
		})
	}
	return artifacts, nil
}

func (r *Renderer) histogramChart(category string, ratings []float64) (*chart.BarChart, error) {
	bins, err := Histogram(ratings, r.config.Bins)
	if err != nil {
		return nil, err
	}

	bars := make([]chart.Value, 0, len(bins))
	maxCount := 0
	for _, b := range bins {
		bars = append(bars, chart.Value{Label: b.Label(), Value: float64(b.Count), Style: barStyle(histogramColor)})
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	return r.barChart(fmt.Sprintf(titleHistogramFmt, category), bars, float64(maxCount), "%.0f"), nil
}

func (r *Renderer) countChart(counts []sales.CategoryCount) (*chart.BarChart, error) {
	if len(counts) == 0 {
		return nil, fmt.Errorf("no category counts")
	}

	bars := make([]chart.Value, 0, len(counts))
	maxCount := 0
	for _, c := range counts {
		bars = append(bars, chart.Value{Label: c.Value, Value: float64(c.Count), Style: barStyle(barColor)})
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}
	return r.barChart(TitleCountBar, bars, float64(maxCount), "%.0f"), nil
}

func (r *Renderer) meanChart(stats []sales.CategoryStats) (*chart.BarChart, error) {
	if len(stats) == 0 {
		return nil, fmt.Errorf("no category statistics")
	}

	bars := make([]chart.Value, 0, len(stats))
	maxMean := 0.0
	for _, s := range stats {
		bars = append(bars, chart.Value{Label: s.MainCategory, Value: s.MeanRatings, Style: barStyle(barColor)})
		if s.MeanRatings > maxMean {
			maxMean = s.MeanRatings
		}
	}
	return r.barChart(TitleMeanBar, bars, maxMean, "%.2f"), nil
}

// barChart lays out bars on a y axis starting at zero. go-chart rejects a
// zero-height range, so an all-zero series still gets a unit axis.
func (r *Renderer) barChart(title string, bars []chart.Value, maxValue float64, tickFormat string) *chart.BarChart {
	top := maxValue * 1.1
	if top <= 0 {
		top = 1
	}

	width := r.config.Width
	if need := len(bars)*(barWidth+barSpacing) + sideMargin; need > width {
		width = need
	}

	return &chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     r.config.Height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf(tickFormat, f)
				}
				return ""
			},
		},
		Bars: bars,
	}
}

func barStyle(fill drawing.Color) chart.Style {
	return chart.Style{
		FillColor:   fill,
		StrokeColor: edgeColor,
		StrokeWidth: 1,
	}
}

// writePNG renders fully in memory first so a failed render never leaves a
// truncated file behind.
func writePNG(bc *chart.BarChart, path string) error {
	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Package pdf assembles the sales report document with fpdf.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"salesreport/domain/sales"
	"salesreport/internal"
	"salesreport/internal/errors"

	"github.com/go-pdf/fpdf"
)

// Section headings
const (
	DefaultTitle        = "Amazon Sales Dataset Report"
	HeadingMainCounts   = "Counts of Main Categories"
	HeadingSubCounts    = "Counts of Sub Categories"
	HeadingStats        = "Descriptive Statistics for Ratings and Number of Ratings"
	HeadingCountChart   = "Counts of Ratings for Each Main Category"
	HeadingMeanChart    = "Mean Ratings for Each Main Category"
	headingHistogramFmt = "Ratings Distribution for %s"
)

// A4 portrait with 10mm margins
const (
	contentWidth = 190.0
	cellWidth    = 95.0
	lineHeight   = 10.0
	imageX       = 10.0
	imageY       = 30.0
)

// AssemblerConfig holds report layout settings
type AssemblerConfig struct {
	Title    string
	ImageDir string // Where chart pages are looked up
}

// DefaultAssemblerConfig returns the default title and image directory
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{Title: DefaultTitle, ImageDir: "images"}
}

// Assembler lays out the tables and chart images into one PDF
type Assembler struct {
	config AssemblerConfig
	logger *internal.Logger
}

// NewAssembler creates an assembler
func NewAssembler(config AssemblerConfig, logger *internal.Logger) *Assembler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.Title == "" {
		config.Title = DefaultTitle
	}
	return &Assembler{config: config, logger: logger.With("report")}
}

// chartPage is one optional image page
type chartPage struct {
	heading string
	path    string
}

// Assemble builds the document in memory and writes it once to outputPath.
//
// Page order: title with both count tables, the statistics table, then the
// count chart, the mean chart and one histogram per stats category. Image
// pages whose file is absent are skipped.
func (a *Assembler) Assemble(ctx context.Context, tables sales.Tables, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := a.layout(tables)
	if doc.Err() {
		return errors.ReportError("lay out report", doc.Error())
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.ReportError("create report directory", err)
		}
	}
	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return errors.ReportError(fmt.Sprintf("write %s", outputPath), err)
	}

	a.logger.Info("wrote report %s (%d pages)", outputPath, doc.PageCount())
	return nil
}

// layout builds every page in memory without writing anything
func (a *Assembler) layout(tables sales.Tables) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(a.config.Title, true)
	doc.SetCreator("salesreport", true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	a.countsPage(doc, tr, tables)
	a.statsPage(doc, tr, tables)

	for _, page := range a.chartPages(tables) {
		if _, err := os.Stat(page.path); err != nil {
			a.logger.Debug("skipping missing chart %s", page.path)
			continue
		}
		doc.AddPage()
		doc.SetFont("Arial", "", 12)
		doc.CellFormat(contentWidth, lineHeight, tr(page.heading), "", 1, "L", false, 0, "")
		doc.ImageOptions(page.path, imageX, imageY, contentWidth, 0, false,
			fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}
	return doc
}

func (a *Assembler) countsPage(doc *fpdf.Fpdf, tr func(string) string, tables sales.Tables) {
	doc.AddPage()
	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(contentWidth, lineHeight, tr(a.config.Title), "", 1, "C", false, 0, "")

	countTable(doc, tr, HeadingMainCounts, tables.MainCounts)
	countTable(doc, tr, HeadingSubCounts, tables.SubCounts)
}

func countTable(doc *fpdf.Fpdf, tr func(string) string, heading string, counts []sales.CategoryCount) {
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(contentWidth, lineHeight, heading, "", 1, "L", false, 0, "")

	doc.SetFont("Arial", "", 10)
	for _, c := range counts {
		doc.CellFormat(cellWidth, lineHeight, tr(c.Value), "1", 0, "L", false, 0, "")
		doc.CellFormat(cellWidth, lineHeight, strconv.Itoa(c.Count), "1", 1, "L", false, 0, "")
	}
}

func (a *Assembler) statsPage(doc *fpdf.Fpdf, tr func(string) string, tables sales.Tables) {
	doc.AddPage()
	doc.SetFont("Arial", "B", 10)
	doc.CellFormat(contentWidth, lineHeight, HeadingStats, "", 1, "L", false, 0, "")

	// Monospace keeps the tabwriter columns aligned.
	doc.SetFont("Courier", "", 7)
	doc.SetXY(imageX, imageY)
	doc.MultiCell(contentWidth, 4, tr(sales.FormatStats(tables.Stats)), "", "L", false)
}

func (a *Assembler) chartPages(tables sales.Tables) []chartPage {
	pages := []chartPage{
		{HeadingCountChart, sales.ChartPath(a.config.ImageDir, sales.ChartCountBar, "")},
		{HeadingMeanChart, sales.ChartPath(a.config.ImageDir, sales.ChartMeanRatingsBar, "")},
	}
	for _, category := range tables.Categories() {
		pages = append(pages, chartPage{
			heading: fmt.Sprintf(headingHistogramFmt, category),
			path:    sales.ChartPath(a.config.ImageDir, sales.ChartRatingsHistogram, category),
		})
	}
	return pages
}

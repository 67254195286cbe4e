package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"salesreport/domain/sales"
)

// SalesHeader is the column layout of the raw product export
var SalesHeader = []string{
	"name",
	sales.ColMainCategory,
	sales.ColSubCategory,
	"image",
	"link",
	sales.ColRatings,
	sales.ColNoOfRatings,
	sales.ColDiscountPrice,
	sales.ColActualPrice,
}

// DefaultCategories maps main categories to their sub categories
var DefaultCategories = map[string][]string{
	"appliances":          {"Air Conditioners", "Kitchen & Home Appliances", "Refrigerators"},
	"car & motorbike":     {"All Car & Motorbike Products", "Car Accessories"},
	"home & kitchen":      {"Kitchen & Dining", "Home Storage"},
	"men's shoes":         {"Casual Shoes", "Sports Shoes"},
	"tv, audio & cameras": {"Televisions", "Headphones", "Speakers"},
}

// SalesGeneratorConfig configures the raw sales file generator
type SalesGeneratorConfig struct {
	RowCount   int                 `json:"row_count"`
	DirtyRate  float64             `json:"dirty_rate"` // Share of rows that must be dropped by cleaning
	Categories map[string][]string `json:"categories"`
	Seed       int64               `json:"seed"`
}

// DefaultSalesConfig returns a small, mostly clean dataset
func DefaultSalesConfig() SalesGeneratorConfig {
	return SalesGeneratorConfig{
		RowCount:   200,
		DirtyRate:  0.15,
		Categories: DefaultCategories,
		Seed:       42,
	}
}

// GeneratedSales is a raw export plus what cleaning should make of it
type GeneratedSales struct {
	Header    []string
	Rows      [][]string
	CleanRows int
	DirtyRows int
	// MainCounts holds the expected count per main category after cleaning
	MainCounts map[string]int
}

// SalesDataGenerator produces deterministic raw sales exports in the text
// encodings the cleaner has to undo: star suffixes, thousands separators,
// currency symbols and null markers.
type SalesDataGenerator struct {
	config SalesGeneratorConfig
	rng    *rand.Rand
	mains  []string
}

// NewSalesDataGenerator creates a new sales data generator
func NewSalesDataGenerator(config SalesGeneratorConfig) *SalesDataGenerator {
	if len(config.Categories) == 0 {
		config.Categories = DefaultCategories
	}
	mains := make([]string, 0, len(config.Categories))
	for m := range config.Categories {
		mains = append(mains, m)
	}
	// Map order is random; the seed alone must decide the output.
	sort.Strings(mains)

	return &SalesDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
		mains:  mains,
	}
}

// Generate builds the rows
func (g *SalesDataGenerator) Generate() *GeneratedSales {
	out := &GeneratedSales{
		Header:     append([]string(nil), SalesHeader...),
		Rows:       make([][]string, 0, g.config.RowCount),
		MainCounts: make(map[string]int),
	}

	for i := 0; i < g.config.RowCount; i++ {
		main := g.mains[g.rng.Intn(len(g.mains))]
		subs := g.config.Categories[main]
		sub := subs[g.rng.Intn(len(subs))]
		row := g.cleanRow(i, main, sub)

		if g.rng.Float64() < g.config.DirtyRate {
			g.dirty(row)
			out.DirtyRows++
		} else {
			out.CleanRows++
			out.MainCounts[main]++
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func (g *SalesDataGenerator) cleanRow(i int, main, sub string) []string {
	rating := 1.0 + float64(g.rng.Intn(41))/10 // 1.0 .. 5.0
	count := 1 + g.rng.Intn(50000)
	actual := 100 + g.rng.Intn(99900)
	discount := actual - g.rng.Intn(actual/2+1)

	return []string{
		fmt.Sprintf("Product %05d", i+1),
		main,
		sub,
		fmt.Sprintf("https://example.com/images/%05d.jpg", i+1),
		fmt.Sprintf("https://example.com/dp/%05d", i+1),
		g.ratingText(rating),
		thousands(count),
		"₹" + thousands(discount),
		"₹" + thousands(actual),
	}
}

func (g *SalesDataGenerator) ratingText(r float64) string {
	if g.rng.Intn(4) == 0 {
		return fmt.Sprintf("%.1f stars", r)
	}
	return fmt.Sprintf("%.1f", r)
}

// dirty corrupts exactly one cell so the row cannot survive cleaning
func (g *SalesDataGenerator) dirty(row []string) {
	switch g.rng.Intn(6) {
	case 0:
		row[5] = ""
	case 1:
		row[5] = "Get"
	case 2:
		row[6] = "null"
	case 3:
		row[7] = "₹"
	case 4:
		row[8] = ""
	case 5:
		row[3] = "null"
	}
}

// WriteCSV writes header and rows as CSV
func (s *GeneratedSales) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(s.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteFile writes the CSV to path, creating parent directories
func (s *GeneratedSales) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func thousands(n int) string {
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

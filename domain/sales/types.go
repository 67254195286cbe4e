package sales

import (
	"path/filepath"
	"strings"
)

// Column names the pipeline reads by header.
const (
	ColMainCategory  = "main_category"
	ColSubCategory   = "sub_category"
	ColRatings       = "ratings"
	ColNoOfRatings   = "no_of_ratings"
	ColDiscountPrice = "discount_price"
	ColActualPrice   = "actual_price"
)

// RequiredColumns lists the columns every input file must carry.
var RequiredColumns = []string{
	ColMainCategory,
	ColSubCategory,
	ColRatings,
	ColNoOfRatings,
	ColDiscountPrice,
	ColActualPrice,
}

// Record is one cleaned input row. Every field is present; rows that failed
// coercion never become Records.
type Record struct {
	MainCategory  string            `json:"main_category"`
	SubCategory   string            `json:"sub_category"`
	Ratings       float64           `json:"ratings"`
	NoOfRatings   int64             `json:"no_of_ratings"`
	DiscountPrice float64           `json:"discount_price"`
	ActualPrice   float64           `json:"actual_price"`
	Passthrough   map[string]string `json:"passthrough,omitempty"` // Columns not used by the pipeline
}

// Dataset is the immutable cleaned record set plus the accounting of what
// the cleaner threw away.
type Dataset struct {
	Source      string         `json:"source"`
	Headers     []string       `json:"headers"` // File order
	Records     []Record       `json:"records"` // File order
	RowsRead    int            `json:"rows_read"`
	RowsDropped int            `json:"rows_dropped"`
	DropReasons map[string]int `json:"drop_reasons,omitempty"` // "missing:<col>" / "unparseable:<col>"
}

// Len returns the number of surviving records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// IsEmpty reports whether no records survived cleaning
func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0
}

// CategoryStats holds descriptive statistics for one main category.
// StdRatings is nil when the group has a single record: the sample standard
// deviation is undefined there.
type CategoryStats struct {
	MainCategory    string   `json:"main_category"`
	MeanRatings     float64  `json:"mean_ratings"`
	MedianRatings   float64  `json:"median_ratings"`
	StdRatings      *float64 `json:"std_ratings"`
	MeanNoOfRatings float64  `json:"mean_no_of_ratings"`
}

// CategoryCount is the occurrence count of one category value
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"counts"`
}

// Tables bundles every aggregate the report is built from
type Tables struct {
	Stats      []CategoryStats `json:"stats"`
	MainCounts []CategoryCount `json:"main_category_counts"`
	SubCounts  []CategoryCount `json:"sub_category_counts"`
}

// Categories returns the main categories in stats-table order
func (t Tables) Categories() []string {
	out := make([]string, 0, len(t.Stats))
	for _, s := range t.Stats {
		out = append(out, s.MainCategory)
	}
	return out
}

// ChartKind identifies one of the fixed chart types
type ChartKind string

const (
	ChartRatingsHistogram ChartKind = "ratings_histogram"
	ChartCountBar         ChartKind = "main_category_ratings_count_bar_chart"
	ChartMeanRatingsBar   ChartKind = "main_category_mean_ratings_bar_chart"
)

// ChartArtifact is a rendered image on disk
type ChartArtifact struct {
	Kind     ChartKind `json:"kind"`
	Category string    `json:"category,omitempty"` // Histograms only
	Path     string    `json:"path"`
}

// ChartFileName returns the deterministic file name for a chart. Path
// separators in category names are replaced so the file stays inside the
// image directory.
func ChartFileName(kind ChartKind, category string) string {
	if kind == ChartRatingsHistogram {
		return safeFileComponent(category) + "_" + string(ChartRatingsHistogram) + ".png"
	}
	return string(kind) + ".png"
}

// ChartPath joins the image directory and the chart file name
func ChartPath(imageDir string, kind ChartKind, category string) string {
	return filepath.Join(imageDir, ChartFileName(kind, category))
}

func safeFileComponent(s string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(s)
}

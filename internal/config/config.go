package config

import (
	"os"
	"strconv"
	"strings"

	"salesreport/internal/errors"
)

// Histogram category selection rules
const (
	SelectFirst        = "first"
	SelectAlphabetical = "alphabetical"
	SelectLargest      = "largest"
)

// Config represents the complete application configuration
type Config struct {
	Paths    PathConfig
	Cleaning CleaningConfig
	Charts   ChartConfig
	Report   ReportConfig
	Logging  LoggingConfig
}

// PathConfig holds file system paths
type PathConfig struct {
	InputFile  string
	ImageDir   string
	ReportFile string
}

// CleaningConfig holds the loader's missing-value and currency rules
type CleaningConfig struct {
	NullMarkers     []string
	CurrencySymbols []string
}

// ChartConfig holds renderer settings
type ChartConfig struct {
	HistogramBins     int
	HistogramCategory string
	Width             int
	Height            int
}

// ReportConfig holds report layout settings
type ReportConfig struct {
	Title string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Paths: PathConfig{
			InputFile:  "Amazon-Products-100k.csv",
			ImageDir:   "images",
			ReportFile: "Amazon_Sales_Report.pdf",
		},
		Cleaning: CleaningConfig{
			NullMarkers:     []string{"", "null"},
			CurrencySymbols: []string{"₹"},
		},
		Charts: ChartConfig{
			HistogramBins:     20,
			HistogramCategory: SelectFirst,
			Width:             1000,
			Height:            600,
		},
		Report: ReportConfig{
			Title: "Amazon Sales Dataset Report",
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	def := Default()
	config := &Config{
		Paths: PathConfig{
			InputFile:  getEnvOrDefault("SALES_INPUT_FILE", def.Paths.InputFile),
			ImageDir:   getEnvOrDefault("IMAGE_DIR", def.Paths.ImageDir),
			ReportFile: getEnvOrDefault("REPORT_FILE", def.Paths.ReportFile),
		},
		Cleaning: CleaningConfig{
			NullMarkers:     getEnvListOrDefault("NULL_MARKERS", def.Cleaning.NullMarkers),
			CurrencySymbols: getEnvListOrDefault("CURRENCY_SYMBOLS", def.Cleaning.CurrencySymbols),
		},
		Charts: ChartConfig{
			HistogramBins:     getEnvIntOrDefault("HISTOGRAM_BINS", def.Charts.HistogramBins),
			HistogramCategory: strings.ToLower(getEnvOrDefault("HISTOGRAM_CATEGORY", def.Charts.HistogramCategory)),
			Width:             getEnvIntOrDefault("CHART_WIDTH", def.Charts.Width),
			Height:            getEnvIntOrDefault("CHART_HEIGHT", def.Charts.Height),
		},
		Report: ReportConfig{
			Title: getEnvOrDefault("REPORT_TITLE", def.Report.Title),
		},
		Logging: LoggingConfig{
			Level: getEnvOrDefault("LOG_LEVEL", def.Logging.Level),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Validate checks the fields every pipeline run depends on
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.InputFile) == "" {
		return errors.ConfigInvalid("input file path is required")
	}
	if strings.TrimSpace(c.Paths.ImageDir) == "" {
		return errors.ConfigInvalid("image directory is required")
	}
	if strings.TrimSpace(c.Paths.ReportFile) == "" {
		return errors.ConfigInvalid("report file path is required")
	}
	if c.Charts.HistogramBins < 1 {
		return errors.ConfigInvalid("HISTOGRAM_BINS must be at least 1")
	}
	if c.Charts.Width <= 0 || c.Charts.Height <= 0 {
		return errors.ConfigInvalid("chart dimensions must be positive")
	}
	switch c.Charts.HistogramCategory {
	case SelectFirst, SelectAlphabetical, SelectLargest:
	default:
		return errors.ConfigInvalid("HISTOGRAM_CATEGORY must be one of first, alphabetical, largest")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvListOrDefault splits a comma separated variable. Entries are kept
// verbatim, so ",null" yields the empty string and "null".
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return strings.Split(value, ",")
}

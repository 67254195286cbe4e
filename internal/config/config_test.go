package config

import (
	"testing"

	"salesreport/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SALES_INPUT_FILE", "IMAGE_DIR", "REPORT_FILE", "HISTOGRAM_BINS", "HISTOGRAM_CATEGORY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Amazon-Products-100k.csv", cfg.Paths.InputFile)
	assert.Equal(t, "images", cfg.Paths.ImageDir)
	assert.Equal(t, "Amazon_Sales_Report.pdf", cfg.Paths.ReportFile)
	assert.Equal(t, 20, cfg.Charts.HistogramBins)
	assert.Equal(t, SelectFirst, cfg.Charts.HistogramCategory)
	assert.Equal(t, []string{"₹"}, cfg.Cleaning.CurrencySymbols)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SALES_INPUT_FILE", "data/products.xlsx")
	t.Setenv("HISTOGRAM_BINS", "10")
	t.Setenv("HISTOGRAM_CATEGORY", "Largest")
	t.Setenv("NULL_MARKERS", ",null,NA")
	t.Setenv("CURRENCY_SYMBOLS", "₹,$")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/products.xlsx", cfg.Paths.InputFile)
	assert.Equal(t, 10, cfg.Charts.HistogramBins)
	assert.Equal(t, SelectLargest, cfg.Charts.HistogramCategory)
	assert.Equal(t, []string{"", "null", "NA"}, cfg.Cleaning.NullMarkers)
	assert.Equal(t, []string{"₹", "$"}, cfg.Cleaning.CurrencySymbols)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero bins", func(c *Config) { c.Charts.HistogramBins = 0 }},
		{"unknown selection", func(c *Config) { c.Charts.HistogramCategory = "random" }},
		{"empty report path", func(c *Config) { c.Paths.ReportFile = " " }},
		{"empty image dir", func(c *Config) { c.Paths.ImageDir = "" }},
		{"negative width", func(c *Config) { c.Charts.Width = -1 }},
	}

	require.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoad_InvalidBinsFails(t *testing.T) {
	t.Setenv("HISTOGRAM_BINS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

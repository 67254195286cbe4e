package coercer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonDecimalChars = regexp.MustCompile(`[^0-9.]`)
	nonDigitChars   = regexp.MustCompile(`[^0-9]`)
)

// TypeCoercer turns loosely formatted text cells into typed numbers.
// A false second return means the value is missing.
type TypeCoercer struct {
	config     CoercionConfig
	nullSet    map[string]struct{}
	priceNoise *strings.Replacer
}

// CoercionConfig defines the missing markers and currency decoration to strip
type CoercionConfig struct {
	NullMarkers     []string `json:"null_markers"`     // Exact cell values treated as missing
	CurrencySymbols []string `json:"currency_symbols"` // Removed from price cells before parsing
}

// DefaultCoercionConfig returns the markers and symbols of the sales export
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NullMarkers:     []string{"", "null"},
		CurrencySymbols: []string{"₹"},
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	nullSet := make(map[string]struct{}, len(config.NullMarkers))
	for _, m := range config.NullMarkers {
		nullSet[m] = struct{}{}
	}

	// Thousands separators are always stripped alongside the symbols.
	pairs := make([]string, 0, 2*len(config.CurrencySymbols)+2)
	for _, sym := range config.CurrencySymbols {
		if sym == "" {
			continue
		}
		pairs = append(pairs, sym, "")
	}
	pairs = append(pairs, ",", "")

	return &TypeCoercer{
		config:     config,
		nullSet:    nullSet,
		priceNoise: strings.NewReplacer(pairs...),
	}
}

// IsMissing reports whether a raw cell is one of the missing markers
func (c *TypeCoercer) IsMissing(raw string) bool {
	_, ok := c.nullSet[raw]
	return ok
}

// CoerceRating keeps only digits and decimal points, then parses a float.
// "4.5 stars" -> 4.5, "Get" -> missing.
func (c *TypeCoercer) CoerceRating(raw string) (float64, bool) {
	if c.IsMissing(raw) {
		return 0, false
	}
	return parseFinite(nonDecimalChars.ReplaceAllString(raw, ""))
}

// CoerceCount keeps only digits, then parses an integer.
// "1,200 ratings" -> 1200.
func (c *TypeCoercer) CoerceCount(raw string) (int64, bool) {
	if c.IsMissing(raw) {
		return 0, false
	}
	digits := nonDigitChars.ReplaceAllString(raw, "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CoercePrice removes currency symbols and thousands separators, then parses
// a float. "₹1,234.50" -> 1234.50.
func (c *TypeCoercer) CoercePrice(raw string) (float64, bool) {
	if c.IsMissing(raw) {
		return 0, false
	}
	return parseFinite(strings.TrimSpace(c.priceNoise.Replace(raw)))
}

// parseFinite parses a float and rejects NaN and infinities
func parseFinite(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

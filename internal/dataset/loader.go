// Package dataset loads the raw sales export and turns it into the cleaned,
// immutable record set the rest of the pipeline reads.
//
// Cleaning is lossy by policy: a row with a missing marker in any column, or
// a numeric column that does not coerce, is dropped whole. Drops are counted
// per reason on the Dataset and logged at debug level; they are never
// returned as errors.
package dataset

import (
	"context"

	"salesreport/adapters/datareadiness/coercer"
	"salesreport/adapters/excel"
	"salesreport/domain/core"
	"salesreport/domain/sales"
	"salesreport/internal"
)

// Drop reason prefixes
const (
	ReasonMissing     = "missing:"
	ReasonUnparseable = "unparseable:"
)

// LoaderConfig holds the reader and coercion settings
type LoaderConfig struct {
	Reader   excel.ReaderConfig
	Coercion coercer.CoercionConfig
}

// DefaultLoaderConfig returns CSV defaults with "" and "null" as missing markers
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		Reader:   excel.DefaultReaderConfig(),
		Coercion: coercer.DefaultCoercionConfig(),
	}
}

// Loader reads and cleans a sales file
type Loader struct {
	config  LoaderConfig
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewLoader creates a loader
func NewLoader(config LoaderConfig, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{
		config:  config,
		coercer: coercer.NewTypeCoercer(config.Coercion),
		logger:  logger.With("loader"),
	}
}

// Load reads path and returns the cleaned record set
func (l *Loader) Load(ctx context.Context, path string) (*sales.Dataset, error) {
	data, err := excel.NewDataReader(path, l.config.Reader, l.logger).ReadData(ctx)
	if err != nil {
		return nil, err
	}
	return l.Clean(path, data)
}

// Clean validates the header, coerces every row and drops the ones that
// fail. It fails only when required columns are absent or nothing survives.
func (l *Loader) Clean(source string, data *excel.TableData) (*sales.Dataset, error) {
	if missing := data.MissingColumns(sales.RequiredColumns); len(missing) > 0 {
		return nil, core.NewMissingColumnsError(missing)
	}

	ds := &sales.Dataset{
		Source:      source,
		Headers:     append([]string(nil), data.Headers...),
		Records:     make([]sales.Record, 0, len(data.Rows)),
		RowsRead:    len(data.Rows),
		DropReasons: make(map[string]int),
	}

	for i, row := range data.Rows {
		rec, reason, ok := l.cleanRow(data.Headers, row)
		if !ok {
			ds.RowsDropped++
			ds.DropReasons[reason]++
			// +2: header line and 1-based numbering
			l.logger.Debug("dropping row %d: %s", i+2, reason)
			continue
		}
		ds.Records = append(ds.Records, rec)
	}

	if ds.IsEmpty() {
		return nil, core.NewEmptyDatasetError(source, ds.RowsRead)
	}

	l.logger.Info("cleaned %s: %d rows read, %d kept, %d dropped",
		source, ds.RowsRead, ds.Len(), ds.RowsDropped)
	return ds, nil
}

// cleanRow applies the whole-row policy. The returned reason names the first
// failing column.
func (l *Loader) cleanRow(headers []string, row excel.RawRowData) (sales.Record, string, bool) {
	for _, h := range headers {
		raw, present := row[h]
		if !present || l.coercer.IsMissing(raw) {
			return sales.Record{}, ReasonMissing + h, false
		}
	}

	rec := sales.Record{
		MainCategory: row[sales.ColMainCategory],
		SubCategory:  row[sales.ColSubCategory],
	}

	var ok bool
	if rec.Ratings, ok = l.coercer.CoerceRating(row[sales.ColRatings]); !ok {
		return sales.Record{}, ReasonUnparseable + sales.ColRatings, false
	}
	if rec.NoOfRatings, ok = l.coercer.CoerceCount(row[sales.ColNoOfRatings]); !ok {
		return sales.Record{}, ReasonUnparseable + sales.ColNoOfRatings, false
	}
	if rec.DiscountPrice, ok = l.coercer.CoercePrice(row[sales.ColDiscountPrice]); !ok {
		return sales.Record{}, ReasonUnparseable + sales.ColDiscountPrice, false
	}
	if rec.ActualPrice, ok = l.coercer.CoercePrice(row[sales.ColActualPrice]); !ok {
		return sales.Record{}, ReasonUnparseable + sales.ColActualPrice, false
	}

	for _, h := range headers {
		if isRequired(h) {
			continue
		}
		if rec.Passthrough == nil {
			rec.Passthrough = make(map[string]string)
		}
		rec.Passthrough[h] = row[h]
	}
	return rec, "", true
}

func isRequired(col string) bool {
	for _, c := range sales.RequiredColumns {
		if c == col {
			return true
		}
	}
	return false
}

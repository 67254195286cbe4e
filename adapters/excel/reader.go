package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"salesreport/domain/core"
	"salesreport/internal"
	apperrors "salesreport/internal/errors"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ReaderConfig
	logger   *internal.Logger
}

// NewDataReader creates a reader that picks CSV or XLSX by file extension
func NewDataReader(filePath string, config ReaderConfig, logger *internal.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	switch ext {
	case ".xlsx", ".xlsm":
		fileType = "xlsx"
	case ".tsv":
		if config.Delimiter == 0 {
			config.Delimiter = '\t'
		}
	}
	if config.Delimiter == 0 {
		config.Delimiter = ','
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		config:   config,
		logger:   logger.With("reader"),
	}
}

// ReadData reads the whole file into header-keyed rows
func (r *DataReader) ReadData(ctx context.Context) (*TableData, error) {
	r.logger.Info("Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, core.NewInputNotFoundError(r.filePath)
		}
		return nil, apperrors.Wrapf(err, "stat %s", r.filePath)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch r.fileType {
	case "xlsx":
		return r.readExcelData()
	default:
		return r.readCSVData()
	}
}

// readExcelData reads the configured (or first) sheet
func (r *DataReader) readExcelData() (*TableData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeInvalidInput, err, "failed to open Excel file")
	}
	defer f.Close()

	sheet := r.config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.InvalidInput("Excel file has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeInvalidInput, err, fmt.Sprintf("failed to read sheet %q", sheet))
	}
	r.logger.Debug("Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, apperrors.InvalidInput("Excel file has no header row")
	}
	return r.processRows(rows[0], rows[1:]), nil
}

// readCSVData reads delimited text, stripping a UTF-8 BOM from the header
func (r *DataReader) readCSVData() (*TableData, error) {
	startTime := time.Now()
	raw, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open CSV file")
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = r.config.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.InvalidInput("CSV file has no header row")
	}
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeInvalidInput, err, "failed to read CSV header")
	}

	var rows [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.WithCode(apperrors.CodeInvalidInput, err, "failed to read CSV file")
		}
		rows = append(rows, rec)
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(header, rows), nil
}

// processRows converts raw string rows into TableData format
func (r *DataReader) processRows(headerRow []string, rows [][]string) *TableData {
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]RawRowData, 0, len(rows))
	for _, row := range rows {
		rowData := make(RawRowData, len(headers))
		for j, cell := range row {
			if j >= len(headers) {
				break
			}
			if _, dup := rowData[headers[j]]; dup {
				continue
			}
			rowData[headers[j]] = strings.TrimSpace(cell)
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Info("%s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &TableData{
		Headers: headers,
		Rows:    dataRows,
	}
}

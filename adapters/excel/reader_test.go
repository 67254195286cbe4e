package excel

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"salesreport/domain/core"
	"salesreport/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func quietLogger() *internal.Logger {
	return internal.NewLoggerTo(io.Discard, internal.LogLevelError)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadData_CSV(t *testing.T) {
	path := writeFile(t, "products.csv",
		"\xEF\xBB\xBFname, main_category ,ratings\n"+
			"\"Fan, 3 speed\",appliances, 4.1 \n"+
			"Kettle,appliances\n")

	data, err := NewDataReader(path, DefaultReaderConfig(), quietLogger()).ReadData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "main_category", "ratings"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "Fan, 3 speed", data.Rows[0]["name"])
	assert.Equal(t, "4.1", data.Rows[0]["ratings"])

	_, present := data.Rows[1]["ratings"]
	assert.False(t, present, "short rows leave trailing cells absent")
}

func TestReadData_TSV(t *testing.T) {
	path := writeFile(t, "products.tsv", "main_category\tratings\ncar\t3.9\n")

	data, err := NewDataReader(path, DefaultReaderConfig(), quietLogger()).ReadData(context.Background())
	require.NoError(t, err)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, "3.9", data.Rows[0]["ratings"])
}

func TestReadData_MissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv"), DefaultReaderConfig(), quietLogger()).
		ReadData(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInputNotFound))
}

func TestReadData_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")
	_, err := NewDataReader(path, DefaultReaderConfig(), quietLogger()).ReadData(context.Background())
	require.Error(t, err)
}

func TestReadData_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"main_category", "sub_category", "ratings"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"appliances", "Fans", "4.5 stars"}))
	path := filepath.Join(t.TempDir(), "products.xlsx")
	require.NoError(t, f.SaveAs(path))

	data, err := NewDataReader(path, DefaultReaderConfig(), quietLogger()).ReadData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"main_category", "sub_category", "ratings"}, data.Headers)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, "4.5 stars", data.Rows[0]["ratings"])
}

func TestMissingColumns(t *testing.T) {
	data := &TableData{Headers: []string{"main_category", "ratings"}}
	assert.Equal(t, []string{"sub_category"}, data.MissingColumns([]string{"main_category", "sub_category", "ratings"}))
	assert.Empty(t, data.MissingColumns([]string{"ratings"}))
}

func TestReadData_CanceledContext(t *testing.T) {
	path := writeFile(t, "products.csv", "main_category\ncar\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDataReader(path, DefaultReaderConfig(), quietLogger()).ReadData(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

package pdf

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"salesreport/domain/sales"
	"salesreport/internal"
	"salesreport/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pageObject   = regexp.MustCompile(`/Type /Page\b`)
	statsHeading = regexp.MustCompile(`BT ([0-9.]+) [0-9.]+ Td \(Descriptive Statistics`)
)

func testTables() sales.Tables {
	std := 0.5
	return sales.Tables{
		Stats: []sales.CategoryStats{
			{MainCategory: "appliances", MeanRatings: 4.1, MedianRatings: 4.1, StdRatings: &std, MeanNoOfRatings: 120},
			{MainCategory: "tv, audio & cameras", MeanRatings: 3.9, MedianRatings: 3.9, MeanNoOfRatings: 7},
		},
		MainCounts: []sales.CategoryCount{{Value: "appliances", Count: 2}, {Value: "tv, audio & cameras", Count: 1}},
		SubCounts:  []sales.CategoryCount{{Value: "Kitchen", Count: 2}, {Value: "Televisions", Count: 1}},
	}
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 173, G: 216, B: 230, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func readPDF(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")), "not a PDF")
	return data
}

func newTestAssembler(imageDir string) *Assembler {
	return NewAssembler(AssemblerConfig{ImageDir: imageDir}, internal.NewLogger(internal.LogLevelError))
}

func TestAssemble_TablesOnlyWhenNoImages(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.pdf")

	err := newTestAssembler(filepath.Join(dir, "images")).Assemble(context.Background(), testTables(), out)
	require.NoError(t, err)

	data := readPDF(t, out)
	assert.Len(t, pageObject.FindAll(data, -1), 2)
}

func TestAssemble_SkipsMissingImages(t *testing.T) {
	dir := t.TempDir()
	imageDir := filepath.Join(dir, "images")
	out := filepath.Join(dir, "report.pdf")

	writeTestPNG(t, sales.ChartPath(imageDir, sales.ChartCountBar, ""))
	writeTestPNG(t, sales.ChartPath(imageDir, sales.ChartRatingsHistogram, "tv, audio & cameras"))

	err := newTestAssembler(imageDir).Assemble(context.Background(), testTables(), out)
	require.NoError(t, err)

	data := readPDF(t, out)
	assert.Len(t, pageObject.FindAll(data, -1), 4)
}

func TestAssemble_AllImagesPresent(t *testing.T) {
	dir := t.TempDir()
	imageDir := filepath.Join(dir, "images")
	out := filepath.Join(dir, "nested", "out", "report.pdf")

	writeTestPNG(t, sales.ChartPath(imageDir, sales.ChartCountBar, ""))
	writeTestPNG(t, sales.ChartPath(imageDir, sales.ChartMeanRatingsBar, ""))
	for _, c := range testTables().Categories() {
		writeTestPNG(t, sales.ChartPath(imageDir, sales.ChartRatingsHistogram, c))
	}

	err := newTestAssembler(imageDir).Assemble(context.Background(), testTables(), out)
	require.NoError(t, err)

	data := readPDF(t, out)
	assert.Len(t, pageObject.FindAll(data, -1), 6)
}

func TestAssemble_OverwritesExistingReport(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(out, []byte("old"), 0o644))

	err := newTestAssembler(filepath.Join(dir, "images")).Assemble(context.Background(), testTables(), out)
	require.NoError(t, err)
	readPDF(t, out)
}

func TestAssemble_NonLatinCategory(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "report.pdf")
	tables := testTables()
	tables.MainCounts = append(tables.MainCounts, sales.CategoryCount{Value: "café – ₹ deals", Count: 3})

	err := newTestAssembler(filepath.Join(dir, "images")).Assemble(context.Background(), tables, out)
	require.NoError(t, err)
	readPDF(t, out)
}

func TestAssemble_CorruptImageIsReportError(t *testing.T) {
	dir := t.TempDir()
	imageDir := filepath.Join(dir, "images")
	out := filepath.Join(dir, "report.pdf")

	path := sales.ChartPath(imageDir, sales.ChartCountBar, "")
	require.NoError(t, os.MkdirAll(imageDir, 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

	err := newTestAssembler(imageDir).Assemble(context.Background(), testTables(), out)
	require.Error(t, err)
	assert.Equal(t, errors.CodeReportError, errors.GetCode(err))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no partial report on failure")
}

func TestAssemble_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestAssembler(dir).Assemble(ctx, testTables(), filepath.Join(dir, "report.pdf"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLayout_StatsHeadingIsLeftAligned(t *testing.T) {
	doc := newTestAssembler(t.TempDir()).layout(testTables())
	require.False(t, doc.Err())
	doc.SetCompression(false)

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))

	m := statsHeading.FindSubmatch(buf.Bytes())
	require.NotNil(t, m, "stats heading not found in page content")
	x, err := strconv.ParseFloat(string(m[1]), 64)
	require.NoError(t, err)
	// Left margin plus cell padding is about 31pt; a centred heading starts far right of it.
	assert.Less(t, x, 40.0)
}

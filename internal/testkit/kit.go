package testkit

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"salesreport/domain/sales"
	"salesreport/internal"
	"salesreport/internal/config"
)

// TestKit provides an isolated workspace and fixtures for pipeline tests
type TestKit struct {
	Dir        string
	InputPath  string
	ImageDir   string
	ReportPath string
	Logger     *internal.Logger
}

// NewTestKit creates a test kit rooted in a fresh temp directory
func NewTestKit(t testing.TB) *TestKit {
	t.Helper()
	dir := t.TempDir()
	return &TestKit{
		Dir:        dir,
		InputPath:  filepath.Join(dir, "sales.csv"),
		ImageDir:   filepath.Join(dir, "images"),
		ReportPath: filepath.Join(dir, "out", "report.pdf"),
		Logger:     internal.NewLogger(internal.LogLevelError),
	}
}

// Config returns the default configuration pointed at the kit's paths
func (k *TestKit) Config() *config.Config {
	cfg := config.Default()
	cfg.Paths.InputFile = k.InputPath
	cfg.Paths.ImageDir = k.ImageDir
	cfg.Paths.ReportFile = k.ReportPath
	return cfg
}

// WriteSales generates a raw export and writes it to InputPath
func (k *TestKit) WriteSales(t testing.TB, cfg SalesGeneratorConfig) *GeneratedSales {
	t.Helper()
	gen := NewSalesDataGenerator(cfg).Generate()
	if err := gen.WriteFile(k.InputPath); err != nil {
		t.Fatalf("write sales fixture: %v", err)
	}
	return gen
}

// WriteRows writes an explicit header and rows to InputPath
func (k *TestKit) WriteRows(t testing.TB, header []string, rows [][]string) {
	t.Helper()
	gen := &GeneratedSales{Header: header, Rows: rows}
	if err := gen.WriteFile(k.InputPath); err != nil {
		t.Fatalf("write rows fixture: %v", err)
	}
}

// InMemoryChartRenderer records render calls without touching disk
type InMemoryChartRenderer struct {
	Err error

	mu    sync.Mutex
	calls []sales.Tables
}

// Render records the tables and returns one artifact per chart kind
func (r *InMemoryChartRenderer) Render(ctx context.Context, ds *sales.Dataset, tables sales.Tables) ([]sales.ChartArtifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, tables)
	if r.Err != nil {
		return nil, r.Err
	}
	return []sales.ChartArtifact{
		{Kind: sales.ChartCountBar, Path: sales.ChartFileName(sales.ChartCountBar, "")},
		{Kind: sales.ChartMeanRatingsBar, Path: sales.ChartFileName(sales.ChartMeanRatingsBar, "")},
	}, nil
}

// Calls returns the tables passed to each Render call
func (r *InMemoryChartRenderer) Calls() []sales.Tables {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sales.Tables(nil), r.calls...)
}

// InMemoryReportAssembler records assemble calls without touching disk
type InMemoryReportAssembler struct {
	Err error

	mu      sync.Mutex
	outputs []string
}

// Assemble records the output path
func (a *InMemoryReportAssembler) Assemble(ctx context.Context, tables sales.Tables, outputPath string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.outputs = append(a.outputs, outputPath)
	return a.Err
}

// Outputs returns the output paths passed to each Assemble call
func (a *InMemoryReportAssembler) Outputs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.outputs...)
}

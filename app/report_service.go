package app

import (
	"context"
	"time"

	"salesreport/adapters/charts"
	"salesreport/adapters/datareadiness/coercer"
	"salesreport/adapters/pdf"
	"salesreport/domain/core"
	"salesreport/domain/sales"
	"salesreport/internal"
	"salesreport/internal/analysis"
	"salesreport/internal/config"
	"salesreport/internal/dataset"
	"salesreport/ports"
)

// ReportService runs the load, aggregate, render and assemble pipeline
type ReportService struct {
	inputPath  string
	reportPath string

	loader     ports.DatasetLoader
	aggregator ports.TableAggregator
	renderer   ports.ChartRenderer
	assembler  ports.ReportAssembler
	logger     *internal.Logger
}

// RunSummary describes one completed pipeline run
type RunSummary struct {
	RunID       core.RunID            `json:"run_id"`
	InputPath   string                `json:"input_path"`
	RowsRead    int                   `json:"rows_read"`
	RowsKept    int                   `json:"rows_kept"`
	RowsDropped int                   `json:"rows_dropped"`
	DropReasons map[string]int        `json:"drop_reasons,omitempty"`
	Categories  int                   `json:"categories"`
	Fingerprint core.Hash             `json:"fingerprint"`
	Charts      []sales.ChartArtifact `json:"charts"`
	ReportPath  string                `json:"report_path"`
	Stages      []StageTiming         `json:"stages"`
	Duration    time.Duration         `json:"duration"`
}

// TablesResult is the output of ComputeTables
type TablesResult struct {
	Dataset     *sales.Dataset
	Tables      sales.Tables
	Fingerprint core.Hash
}

// NewReportService wires the default adapters from configuration
func NewReportService(cfg *config.Config, logger *internal.Logger) *ReportService {
	if logger == nil {
		logger = internal.DefaultLogger
	}

	loaderCfg := dataset.DefaultLoaderConfig()
	loaderCfg.Coercion = coercer.CoercionConfig{
		NullMarkers:     cfg.Cleaning.NullMarkers,
		CurrencySymbols: cfg.Cleaning.CurrencySymbols,
	}

	return NewReportServiceWith(
		cfg.Paths.InputFile,
		cfg.Paths.ReportFile,
		dataset.NewLoader(loaderCfg, logger),
		analysis.NewAggregator(),
		charts.NewRenderer(charts.RendererConfig{
			ImageDir:          cfg.Paths.ImageDir,
			Bins:              cfg.Charts.HistogramBins,
			HistogramCategory: cfg.Charts.HistogramCategory,
			Width:             cfg.Charts.Width,
			Height:            cfg.Charts.Height,
		}, logger),
		pdf.NewAssembler(pdf.AssemblerConfig{
			Title:    cfg.Report.Title,
			ImageDir: cfg.Paths.ImageDir,
		}, logger),
		logger,
	)
}

// NewReportServiceWith builds a service from explicit components
func NewReportServiceWith(
	inputPath, reportPath string,
	loader ports.DatasetLoader,
	aggregator ports.TableAggregator,
	renderer ports.ChartRenderer,
	assembler ports.ReportAssembler,
	logger *internal.Logger,
) *ReportService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReportService{
		inputPath:  inputPath,
		reportPath: reportPath,
		loader:     loader,
		aggregator: aggregator,
		renderer:   renderer,
		assembler:  assembler,
		logger:     logger.With("pipeline"),
	}
}

// Run executes the full pipeline. Any stage error aborts the run; files
// already written by earlier stages are left in place.
func (s *ReportService) Run(ctx context.Context) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{
		RunID:      core.NewRunID(),
		InputPath:  s.inputPath,
		ReportPath: s.reportPath,
	}
	s.logger.Info("run %s: %s -> %s", summary.RunID, s.inputPath, s.reportPath)

	runner := NewStageRunner(s.logger)
	result, err := s.computeTables(ctx, runner)
	if err != nil {
		return nil, err
	}
	summary.RowsRead = result.Dataset.RowsRead
	summary.RowsKept = result.Dataset.Len()
	summary.RowsDropped = result.Dataset.RowsDropped
	summary.DropReasons = result.Dataset.DropReasons
	summary.Categories = len(result.Tables.Stats)
	summary.Fingerprint = result.Fingerprint

	err = runner.Run(ctx, StageRender, func(ctx context.Context) error {
		artifacts, err := s.renderer.Render(ctx, result.Dataset, result.Tables)
		summary.Charts = artifacts
		return err
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, StageAssemble, func(ctx context.Context) error {
		return s.assembler.Assemble(ctx, result.Tables, s.reportPath)
	})
	if err != nil {
		return nil, err
	}

	summary.Stages = runner.Timings()
	summary.Duration = time.Since(start)
	s.logger.Info("run %s complete in %s: %d/%d rows kept, %d charts, fingerprint %s",
		summary.RunID, summary.Duration, summary.RowsKept, summary.RowsRead,
		len(summary.Charts), summary.Fingerprint.Short())
	return summary, nil
}

// ComputeTables runs only the load and aggregate stages
func (s *ReportService) ComputeTables(ctx context.Context) (*TablesResult, error) {
	return s.computeTables(ctx, NewStageRunner(s.logger))
}

func (s *ReportService) computeTables(ctx context.Context, runner *StageRunner) (*TablesResult, error) {
	result := &TablesResult{}

	err := runner.Run(ctx, StageLoad, func(ctx context.Context) error {
		ds, err := s.loader.Load(ctx, s.inputPath)
		result.Dataset = ds
		return err
	})
	if err != nil {
		return nil, err
	}

	err = runner.Run(ctx, StageAggregate, func(context.Context) error {
		tables, err := s.aggregator.Aggregate(result.Dataset)
		result.Tables = tables
		return err
	})
	if err != nil {
		return nil, err
	}

	result.Fingerprint = result.Tables.Fingerprint()
	return result, nil
}

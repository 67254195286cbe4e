package ports

import (
	"context"

	"salesreport/domain/sales"
)

// DatasetLoader reads and cleans a sales file
type DatasetLoader interface {
	Load(ctx context.Context, path string) (*sales.Dataset, error)
}

// TableAggregator computes the per-category tables from a cleaned dataset.
// Implementations must be pure.
type TableAggregator interface {
	Aggregate(ds *sales.Dataset) (sales.Tables, error)
}

// ChartRenderer writes chart images and returns what it wrote
type ChartRenderer interface {
	Render(ctx context.Context, ds *sales.Dataset, tables sales.Tables) ([]sales.ChartArtifact, error)
}

// ReportAssembler writes the final report document to outputPath.
// Chart pages are looked up on disk; absent images are skipped.
type ReportAssembler interface {
	Assemble(ctx context.Context, tables sales.Tables, outputPath string) error
}

package excel

// ReaderConfig holds configuration for a tabular data source
type ReaderConfig struct {
	Delimiter rune   `json:"delimiter"`  // CSV only; 0 means ',' (or '\t' for .tsv)
	SheetName string `json:"sheet_name"` // XLSX only; empty means the first sheet
}

// DefaultReaderConfig returns comma-separated CSV / first-sheet XLSX
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{}
}

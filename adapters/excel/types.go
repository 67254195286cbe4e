package excel

// RawRowData represents one data row as header -> trimmed cell text.
// Cells beyond the end of a short row are absent from the map.
type RawRowData map[string]string

// TableData represents the complete raw dataset in file order
type TableData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// HasColumn reports whether a header is present
func (t *TableData) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the required columns that are not in the header
func (t *TableData) MissingColumns(required []string) []string {
	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

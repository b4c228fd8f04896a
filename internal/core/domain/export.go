package domain

// ExportFormat is the serialization format for batch export artifacts.
type ExportFormat string

// Supported export formats. table includes a summary section in
// addition to per-item rows.
const (
	FormatJSON  ExportFormat = "json"
	FormatCSV   ExportFormat = "csv"
	FormatTable ExportFormat = "table"
)

// ParseExportFormat converts a string to an ExportFormat.
// Unknown values are rejected with ErrInvalidInput.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatJSON, FormatCSV, FormatTable:
		return ExportFormat(s), nil
	default:
		return "", ErrInvalidInput
	}
}

// Extension returns the artifact filename extension for the format.
func (f ExportFormat) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return "txt"
	}
}

// ExportArtifact describes a produced export file.
type ExportArtifact struct {
	// BatchID is the exported batch.
	BatchID string

	// Format is the serialization format used.
	Format ExportFormat

	// Path is the artifact location reported by the sink.
	Path string

	// Size is the artifact size in bytes.
	Size int
}

package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of view output.
	OutputMode string

	// ExportFormat represents the file format of an export.
	ExportFormat string

	// MissingPolicy controls how absent or non-numeric criterion values are ingested.
	MissingPolicy string

	// ScoreMode represents how a weighted score is computed.
	ScoreMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
	YAMLOut OutputMode = "yaml"
)

// All export formats supported.
const (
	XLSXExport    ExportFormat = "xlsx" // default
	CSVExport     ExportFormat = "csv"
	PDFExport     ExportFormat = "pdf"
	JSONExport    ExportFormat = "json"
	ParquetExport ExportFormat = "parquet"
)

// All missing value policies supported.
const (
	ZeroMissing   MissingPolicy = "zero" // default
	SkipMissing   MissingPolicy = "skip"
	RejectMissing MissingPolicy = "reject"
)

// All score modes supported.
const (
	RawScore        ScoreMode = "raw" // default
	NormalizedScore ScoreMode = "normalized"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// ManualSource marks entries that were typed in rather than imported.
const ManualSource = "manual"

// NameColumn is the header key that holds the entity name in imported files.
const NameColumn = "name"

// TotalScoreHeader is the final export column.
const TotalScoreHeader = "Total Score"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
	YAMLOut: {},
}

// ValidExportFormats lists all valid export formats.
var ValidExportFormats = map[ExportFormat]struct{}{
	XLSXExport:    {},
	CSVExport:     {},
	PDFExport:     {},
	JSONExport:    {},
	ParquetExport: {},
}

// ValidMissingPolicies lists all valid missing value policies.
var ValidMissingPolicies = map[MissingPolicy]struct{}{
	ZeroMissing:   {},
	SkipMissing:   {},
	RejectMissing: {},
}

// ValidScoreModes lists all valid score modes.
var ValidScoreModes = map[ScoreMode]struct{}{
	RawScore:        {},
	NormalizedScore: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// DefaultExportFiles maps each export format to its default file name.
var DefaultExportFiles = map[ExportFormat]string{
	XLSXExport:    "scorecard_export.xlsx",
	CSVExport:     "scorecard_export.csv",
	PDFExport:     "scorecard_report.pdf",
	JSONExport:    "scorecard_export.json",
	ParquetExport: "scorecard_export.parquet",
}

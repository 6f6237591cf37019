package types

// ExtractionBackend identifies the PDF text extraction tool.
type ExtractionBackend string

const (
	BackendNative    ExtractionBackend = "native"
	BackendPdftotext ExtractionBackend = "pdftotext"
)

// ReportFormat selects how per-document results are rendered.
type ReportFormat string

const (
	FormatText ReportFormat = "text"
	FormatJSON ReportFormat = "json"
	FormatYAML ReportFormat = "yaml"
)

// ScanConfig holds settings for a scan run. Values come from cobra flags,
// the esg-scan.yaml config file, or ESG_SCAN_* environment variables.
type ScanConfig struct {
	// TaxonomyPath is the taxonomy file (JSON or YAML).
	TaxonomyPath string `json:"taxonomy" yaml:"taxonomy"`

	// DocumentsDir is the directory scanned for *.pdf files.
	DocumentsDir string `json:"documents_dir" yaml:"documents_dir"`

	// Backend selects the text extractor: native or pdftotext.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// Workers is the number of documents processed in parallel (default 1).
	Workers int `json:"workers" yaml:"workers"`

	// Report holds rendering settings.
	Report ReportConfig `json:"report" yaml:"report"`

	// Strict makes any per-document failure fail the run after the batch completes.
	Strict bool `json:"strict" yaml:"strict"`
}

// ReportConfig holds settings for the report stage.
type ReportConfig struct {
	// Format selects text, json, or yaml output.
	Format ReportFormat `json:"format" yaml:"format"`

	// MinMatches is the smallest subcategory total printed in text reports (default 1).
	MinMatches int `json:"min_matches" yaml:"min_matches"`

	// OutputPath, when set, receives the report instead of stdout.
	OutputPath string `json:"output" yaml:"output"`
}

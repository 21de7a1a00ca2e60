package domain

import (
	"io"
	"strings"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// ParseOutputFormat validates an output format name
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutputFormatText:
		return OutputFormatText, nil
	case OutputFormatJSON:
		return OutputFormatJSON, nil
	case OutputFormatYAML, "yml":
		return OutputFormatYAML, nil
	case OutputFormatCSV:
		return OutputFormatCSV, nil
	}
	return "", NewUnsupportedFormatError(s)
}

// OutputFormatter renders engine results
type OutputFormatter interface {
	WriteComparison(result *ComparisonResult, format OutputFormat, writer io.Writer) error
	WriteSearch(response *SearchResponse, format OutputFormat, writer io.Writer) error
	WriteBatch(response *BatchCompareResponse, format OutputFormat, writer io.Writer) error
	WriteEntries(entries []CorpusEntry, format OutputFormat, writer io.Writer) error
}

// FileReader collects and reads source files
type FileReader interface {
	// CollectSourceFiles finds source files of any supported language under the given paths
	CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsSourceFile reports whether the extension maps to a supported language
	IsSourceFile(path string) bool
}

// ProgressManager manages progress tracking for long operations
type ProgressManager interface {
	// Initialize sets up progress tracking with the maximum value
	Initialize(maxValue int)

	// Start starts the progress bar
	Start()

	// Complete marks the progress as completed
	Complete(success bool)

	// Update updates the progress
	Update(processed, total int)

	// SetWriter sets the output writer for progress bars
	SetWriter(writer io.Writer)

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool

	// Close cleans up any resources
	Close()
}

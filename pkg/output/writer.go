package output

import (
	"fmt"
	"io"
)

// WriteListResult writes list results in the specified format.
//
// It performs the following operations:
//   - Step 1: Creates a formatter for the requested format
//   - Step 2: Writes the list result using format-specific logic
//
// Parameters:
//   - w: Destination writer for the output
//   - format: Output format (FormatJSON, FormatXML, or FormatCSV)
//   - result: List result data to write
//
// Returns:
//   - error: When format is unsupported, returns an error; when write fails, returns the underlying error; otherwise returns nil
func WriteListResult(w io.Writer, format Format, result *ListResult) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(result)
	case FormatXML:
		return formatter.WriteXML(result)
	case FormatCSV:
		return writeListCSV(formatter, result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writeListCSV writes list results in CSV format using the formatter.
//
// Parameters:
//   - f: The formatter instance to use for CSV writing
//   - result: List result data containing package entries
//
// Returns:
//   - error: When CSV write fails; returns nil on success
func writeListCSV(f *Formatter, result *ListResult) error {
	headers := []string{"NAME", "VERSION"}
	rows := make([][]string, 0, len(result.Packages))
	for _, pkg := range result.Packages {
		rows = append(rows, []string{pkg.Name, pkg.Version})
	}
	return f.WriteCSV(headers, rows)
}

// WriteOutdatedResult writes outdated results in the specified format.
//
// It performs the following operations:
//   - Step 1: Creates a formatter for the requested format
//   - Step 2: Writes the outdated result using format-specific logic
//
// Parameters:
//   - w: Destination writer for the output
//   - format: Output format (FormatJSON, FormatXML, or FormatCSV)
//   - result: Outdated result data to write
//
// Returns:
//   - error: When format is unsupported, returns an error; when write fails, returns the underlying error; otherwise returns nil
func WriteOutdatedResult(w io.Writer, format Format, result *OutdatedResult) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(result)
	case FormatXML:
		return formatter.WriteXML(result)
	case FormatCSV:
		return writeOutdatedCSV(formatter, result)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// writeOutdatedCSV writes outdated results in CSV format using the formatter.
//
// Parameters:
//   - f: The formatter instance to use for CSV writing
//   - result: Outdated result data containing package version information
//
// Returns:
//   - error: When CSV write fails; returns nil on success
func writeOutdatedCSV(f *Formatter, result *OutdatedResult) error {
	headers := []string{"NAME", "CURRENT", "LATEST", "BUMP"}
	rows := make([][]string, 0, len(result.Packages))
	for _, pkg := range result.Packages {
		rows = append(rows, []string{pkg.Name, pkg.CurrentVersion, pkg.LatestVersion, pkg.Bump})
	}
	return f.WriteCSV(headers, rows)
}

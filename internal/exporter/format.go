package exporter

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// Format is an output file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks the output format from the file extension. Unknown
// extensions are written as delimited text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	case ".tsv":
		return FormatTSV
	default:
		return FormatCSV
	}
}

// WriteTable writes df in the format implied by path
func WriteTable(path string, df dataframe.DataFrame, options WriteOptions) error {
	switch DetectFormat(path) {
	case FormatXLSX:
		return WriteXLSX(path, df, options.Sheet)
	case FormatTSV:
		if options.Delimiter == 0 || options.Delimiter == ',' {
			options.Delimiter = '\t'
		}
		return WriteCSV(path, df, options)
	default:
		return WriteCSV(path, df, options)
	}
}

// FormatRatio renders a ratio with four decimals
func FormatRatio(r float64) string {
	return strconv.FormatFloat(r, 'f', 4, 64)
}

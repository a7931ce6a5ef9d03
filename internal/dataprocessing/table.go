package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	apperrors "adniclean/internal/errors"
)

// MissingMarker is the text form of a missing cell. gota turns it into a NaN
// element when a series is built from strings.
const MissingMarker = "NaN"

// LoadOptions configures how an input table is read
type LoadOptions struct {
	// Delimiter separates fields in delimited text input
	Delimiter rune
	// NAValues are cell texts loaded as missing
	NAValues []string
	// Sheet selects the worksheet of an .xlsx input; empty means the first one
	Sheet string
}

// DefaultLoadOptions returns comma-delimited options treating "" and the
// common NA spellings as missing
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Delimiter: ',',
		NAValues:  []string{"", "NA", "NaN", "nan", "N/A", "NULL", "null", "<NA>"},
	}
}

// ReadTable loads a delimited text file or an Excel workbook. Every column is
// loaded as a string series.
func ReadTable(path string, opts LoadOptions) (dataframe.DataFrame, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path, opts)
	}

	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewIOError("open", path, err)
	}
	defer f.Close()

	df, err := ReadCSV(f, opts)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewIOError("read", path, err)
	}
	return df, nil
}

// ReadCSV loads delimited text with a required header row
func ReadCSV(r io.Reader, opts LoadOptions) (dataframe.DataFrame, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err == io.EOF {
		return dataframe.DataFrame{}, fmt.Errorf("missing header row")
	}
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError("read header", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return dataframe.DataFrame{}, apperrors.NewParsingError(fmt.Sprintf("read row %d", len(rows)+2), err)
		}
		rows = append(rows, row)
	}

	return FromRecords(header, rows, opts.NAValues)
}

// readXLSX loads a worksheet. The first row is the header; short rows are
// padded because excelize omits trailing empty cells.
func readXLSX(path string, opts LoadOptions) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewIOError("open", path, err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, apperrors.NewIOError("read", path, fmt.Errorf("workbook has no sheets"))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewIOError("read", path, fmt.Errorf("sheet %q: %w", sheet, err))
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, apperrors.NewIOError("read", path, fmt.Errorf("sheet %q: missing header row", sheet))
	}

	header := rows[0]
	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, len(header))
		copy(padded, row)
		body = append(body, padded)
	}

	df, err := FromRecords(header, body, opts.NAValues)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewIOError("read", path, err)
	}
	return df, nil
}

// FromRecords builds a string-typed table. Cells found in naValues become
// missing.
func FromRecords(header []string, rows [][]string, naValues []string) (dataframe.DataFrame, error) {
	if len(header) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("empty header row")
	}

	names := make([]string, len(header))
	for j, name := range header {
		names[j] = strings.TrimSpace(name)
	}
	if dup, ok := duplicateName(names); ok {
		return dataframe.DataFrame{}, apperrors.NewParsingError(fmt.Sprintf("duplicate column %q in header", dup), nil).
			WithContext("column", dup)
	}

	na := make(map[string]bool, len(naValues))
	for _, v := range naValues {
		na[v] = true
	}

	cols := make([]series.Series, len(header))
	for j, name := range names {
		values := make([]string, len(rows))
		for i, row := range rows {
			if j >= len(row) {
				return dataframe.DataFrame{}, fmt.Errorf("row %d has %d fields, header has %d", i+2, len(row), len(header))
			}
			v := row[j]
			if na[v] {
				v = MissingMarker
			}
			values[i] = v
		}
		cols[j] = series.New(values, series.String, name)
	}

	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}

// duplicateName returns the first name that occurs more than once
func duplicateName(names []string) (string, bool) {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return n, true
		}
		seen[n] = true
	}
	return "", false
}

// requireColumns returns a schema error for the first absent column
func requireColumns(df dataframe.DataFrame, step string, names ...string) error {
	present := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		present[n] = true
	}
	for _, n := range names {
		if !present[n] {
			return apperrors.NewSchemaError(step, n)
		}
	}
	return nil
}

// cells returns a column's text values with missing cells set to
// MissingMarker, plus the missing mask
func cells(s series.Series) ([]string, []bool) {
	values := s.Records()
	missing := s.IsNaN()
	for i, m := range missing {
		if m {
			values[i] = MissingMarker
		}
	}
	return values, missing
}

// rebuild assembles a new table from columns, surfacing gota errors. gota
// renames repeated column names, so they are rejected here.
func rebuild(cols []series.Series) (dataframe.DataFrame, error) {
	if len(cols) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("no columns left in table")
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	if dup, ok := duplicateName(names); ok {
		return dataframe.DataFrame{}, apperrors.NewAppError(apperrors.ErrTypeSchema,
			fmt.Sprintf("duplicate column %q", dup), nil).WithContext("column", dup)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}

// Records returns the header followed by every row. Missing cells are
// rendered as missing (usually "").
func Records(df dataframe.DataFrame, missing string) [][]string {
	names := df.Names()
	out := make([][]string, df.Nrow()+1)
	out[0] = append([]string(nil), names...)
	for i := 1; i <= df.Nrow(); i++ {
		out[i] = make([]string, len(names))
	}
	for j, name := range names {
		values, miss := cells(df.Col(name))
		for i, v := range values {
			if miss[i] {
				v = missing
			}
			out[i+1][j] = v
		}
	}
	return out
}

// CountMissing returns the number of missing cells in the table
func CountMissing(df dataframe.DataFrame) int {
	total := 0
	for _, name := range df.Names() {
		for _, m := range df.Col(name).IsNaN() {
			if m {
				total++
			}
		}
	}
	return total
}

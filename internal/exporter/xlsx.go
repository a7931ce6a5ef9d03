package exporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	"adniclean/internal/dataprocessing"
)

// DefaultSheet is the worksheet name used when none is configured
const DefaultSheet = "Sheet1"

// WriteXLSX writes df to a single-sheet workbook with a header row. Cells
// that parse as numbers are stored as numbers; missing cells are left empty.
func WriteXLSX(path string, df dataframe.DataFrame, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	records := dataprocessing.Records(df, "")

	return writeAtomic(path, func(w io.Writer) error {
		f := excelize.NewFile()
		defer f.Close()

		if sheet != DefaultSheet {
			if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet, err)
			}
		}

		sw, err := f.NewStreamWriter(sheet)
		if err != nil {
			return fmt.Errorf("failed to open sheet %q: %w", sheet, err)
		}

		for i, record := range records {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := sw.SetRow(cell, xlsxRow(record, i == 0)); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
		if err := sw.Flush(); err != nil {
			return fmt.Errorf("failed to flush sheet: %w", err)
		}

		return f.Write(w)
	})
}

func xlsxRow(record []string, header bool) []interface{} {
	row := make([]interface{}, len(record))
	for j, v := range record {
		switch {
		case v == "":
			row[j] = nil
		case header:
			row[j] = v
		default:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				row[j] = f
			} else {
				row[j] = v
			}
		}
	}
	return row
}

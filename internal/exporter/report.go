package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"adniclean/internal/dataprocessing"
	"adniclean/pkg/contracts/domain"
)

// WriteMissingnessReport writes the ranking as CSV with the columns
// column,missing,total,ratio
func WriteMissingnessReport(w io.Writer, ranking []dataprocessing.ColumnMissingness) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"column", "missing", "total", "ratio"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range ranking {
		record := []string{
			r.Column,
			strconv.Itoa(r.Missing),
			strconv.Itoa(r.Total),
			FormatRatio(r.Ratio),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write %s: %w", r.Column, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCleaningReport writes the run summary as indented JSON, atomically
func WriteCleaningReport(path string, report *domain.CleaningReport) error {
	return writeAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	})
}

// WriteMissingnessFile writes the ranking CSV to path, atomically
func WriteMissingnessFile(path string, ranking []dataprocessing.ColumnMissingness) error {
	return writeAtomic(path, func(w io.Writer) error {
		return WriteMissingnessReport(w, ranking)
	})
}

package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"

	"adniclean/internal/dataprocessing"
	apperrors "adniclean/internal/errors"
)

// WriteOptions configures table writing
type WriteOptions struct {
	// Delimiter separates fields in delimited output; zero means comma
	Delimiter rune
	// Sheet names the worksheet of .xlsx output; empty means "Sheet1"
	Sheet string
	// BOMPrefix adds a UTF-8 BOM so Excel detects the encoding
	BOMPrefix bool
}

// WriteCSV writes df with a header row and no index column. Missing cells are
// written as empty fields. The file appears only once fully written.
func WriteCSV(path string, df dataframe.DataFrame, options WriteOptions) error {
	return WriteRecords(path, dataprocessing.Records(df, ""), options)
}

// WriteRecords writes a header plus rows as delimited text, atomically
func WriteRecords(path string, records [][]string, options WriteOptions) error {
	return writeAtomic(path, func(w io.Writer) error {
		if options.BOMPrefix {
			if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
				return fmt.Errorf("failed to write BOM: %w", err)
			}
		}

		writer := csv.NewWriter(w)
		if options.Delimiter != 0 {
			writer.Comma = options.Delimiter
		}
		for i, record := range records {
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write record %d: %w", i, err)
			}
		}
		writer.Flush()
		return writer.Error()
	})
}

// writeAtomic writes to a temporary file beside path and renames it into
// place. On any failure the temporary file is removed and path is untouched.
func writeAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewIOError("create directory", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return apperrors.NewIOError("create", path, err)
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewIOError("write", path, err)
	}

	if err := write(tmp); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewIOError("write", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return apperrors.NewIOError("write", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewIOError("rename", path, err)
	}
	return nil
}

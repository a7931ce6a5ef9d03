package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adniclean/internal/config"
)

// ADNIHeader is a reduced ADNIMERGE header covering every column the
// cleaning steps touch
var ADNIHeader = []string{
	"RID", "COLPROT", "VISCODE", "SITE", "AGE", "PTGENDER", "PTEDUCAT",
	"PTETHCAT", "PTRACCAT", "PTMARRY", "APOE4", "DX_bl", "FDG", "EcogPtMem",
}

// ADNIRows mixes cohorts, visits, sentinels and sparse columns. Five rows are
// ADNI1 baseline; rows 1, 2 and 4 of those survive cleaning.
var ADNIRows = [][]string{
	{"2", "ADNI1", "bl", "11", "74.3", "Male", "16", "Not Hisp/Latino", "White", "Married", "0", "CN", "1.36", ""},
	{"3", "ADNI1", "bl", "11", "81.3", "Male", "18", "Hisp/Latino", "White", "Married", "1", "AD", "1.08", ""},
	{"4", "ADNI1", "bl", "11", "67.5", "Female", "10", "Not Hisp/Latino", "Black", "Widowed", "-4", "LMCI", "", "2.1"},
	{"5", "ADNI1", "bl", "12", "73.7", "Female", "16", "Not Hisp/Latino", "White", "Divorced", "2", "CN", "1.29", ""},
	{"6", "ADNI1", "bl", "12", "80.4", "Unknown", "13", "Not Hisp/Latino", "White", "Married", "0", "LMCI", "", ""},
	{"2", "ADNI1", "m06", "11", "74.3", "Male", "16", "Not Hisp/Latino", "White", "Married", "0", "CN", "1.31", ""},
	{"4001", "ADNIGO", "bl", "21", "70.1", "Male", "20", "Not Hisp/Latino", "Asian", "Married", "1", "EMCI", "1.40", "1.5"},
}

// WriteADNIFixture writes ADNIHeader and ADNIRows as CSV under t.TempDir
func WriteADNIFixture(t *testing.T) string {
	t.Helper()
	return WriteCSVFile(t, t.TempDir(), "ADNIMERGE.csv", ADNIHeader, ADNIRows)
}

// WriteCSVFile writes a small unquoted CSV file and returns its path
func WriteCSVFile(t *testing.T, dir, name string, header []string, rows [][]string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// FixturePipeline returns the default pipeline configuration narrowed to the
// columns of ADNIHeader
func FixturePipeline() config.PipelineConfig {
	p := config.Default().Pipeline
	p.StaticDropColumns = []string{"SITE"}
	p.MissingnessPasses = []config.ThresholdPass{
		{Threshold: 0.5},
		{Threshold: 0.5, Columns: []string{"Ecog*"}},
	}
	return p
}

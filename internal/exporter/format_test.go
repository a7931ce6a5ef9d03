package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adniclean/internal/dataprocessing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.csv", FormatCSV},
		{"OUT.XLSX", FormatXLSX},
		{"dir/out.tsv", FormatTSV},
		{"out", FormatCSV},
		{"out.txt", FormatCSV},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path))
		})
	}
}

func TestWriteTable_TSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.tsv")
	require.NoError(t, WriteTable(path, testTable(t), WriteOptions{Delimiter: ','}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "RID\tDX_bl\tPTGENDER_Male\n2\t1\t1\n3\t0\t\n", string(content))
}

func TestWriteTable_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.xlsx")
	require.NoError(t, WriteTable(path, testTable(t), WriteOptions{Sheet: "cohort"}))

	df, err := dataprocessing.ReadTable(path, dataprocessing.LoadOptions{NAValues: []string{""}, Sheet: "cohort"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"RID", "DX_bl", "PTGENDER_Male"},
		{"2", "1", "1"},
		{"3", "0", ""},
	}, dataprocessing.Records(df, ""))
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "0.5000", FormatRatio(0.5))
	assert.Equal(t, "0.3333", FormatRatio(1.0/3))
}

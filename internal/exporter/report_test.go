package exporter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adniclean/internal/dataprocessing"
	"adniclean/pkg/contracts/domain"
)

func TestWriteMissingnessReport(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMissingnessReport(&buf, []dataprocessing.ColumnMissingness{
		{Column: "PIB", Missing: 9, Total: 10, Ratio: 0.9},
		{Column: "AGE", Missing: 0, Total: 10, Ratio: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, "column,missing,total,ratio\nPIB,9,10,0.9000\nAGE,0,10,0.0000\n", buf.String())
}

func TestWriteCleaningReport(t *testing.T) {
	report := domain.NewCleaningReport("run-1", "in.csv", "out.csv")
	report.Rows.Loaded = 100
	report.Rows.Written = 42
	report.Label = &domain.LabelEncoding{Column: "DX_bl", Codes: map[string]int{"AD": 0, "CN": 1}}
	report.Finish(domain.RunStatusCompleted, nil)

	path := filepath.Join(t.TempDir(), "reports", "run.json")
	require.NoError(t, WriteCleaningReport(path, report))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Equal(t, "completed", decoded["status"])
	rows := decoded["rows"].(map[string]interface{})
	assert.Equal(t, float64(42), rows["written"])
	label := decoded["label"].(map[string]interface{})
	assert.Equal(t, "DX_bl", label["column"])
}

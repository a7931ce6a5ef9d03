package operations_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adniclean/internal/config"
	apperrors "adniclean/internal/errors"
	"adniclean/internal/operations"
	"adniclean/internal/operations/testutil"
	"adniclean/pkg/contracts/domain"
)

func runCleaning(t *testing.T, opts operations.StageOptions) (*operations.OperationResponse, error) {
	t.Helper()
	manager := operations.NewManager(nil, nil, opts.Logger)
	require.NoError(t, operations.RegisterCleaningStages(manager, opts))
	return manager.Execute(context.Background(), operations.OperationRequest{
		ID:     "run-test",
		Input:  opts.Input,
		Output: opts.Output,
	})
}

func readOutput(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCleaningStages_FullRun(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	output := filepath.Join(t.TempDir(), "clean", "ADNI1_bl.csv")
	resp, err := runCleaning(t, operations.StageOptions{
		Pipeline: testutil.FixturePipeline(),
		Input:    testutil.WriteADNIFixture(t),
		Output:   output,
		Logger:   logger,
	})
	require.NoError(t, err)
	assert.Equal(t, operations.OperationStatusCompleted, resp.Status)

	records := readOutput(t, output)
	assert.Equal(t, []string{
		"RID", "COLPROT", "VISCODE", "AGE", "PTEDUCAT", "DX_bl", "FDG",
		"PTRACCAT_Black", "PTRACCAT_White",
		"PTMARRY_Divorced", "PTMARRY_Married", "PTMARRY_Widowed",
		"APOE4_0", "APOE4_1", "APOE4_2",
		"PTGENDER_Female", "PTGENDER_Male",
		"PTETHCAT_Not Hisp/Latino",
	}, records[0])
	assert.Equal(t, [][]string{
		{"2", "ADNI1", "bl", "74.3", "16", "1", "1.36", "0", "1", "0", "1", "0", "1", "0", "0", "0", "1", "1"},
		{"3", "ADNI1", "bl", "81.3", "18", "0", "1.08", "0", "1", "0", "1", "0", "0", "1", "0", "0", "1", "0"},
		{"5", "ADNI1", "bl", "73.7", "16", "1", "1.29", "0", "1", "1", "0", "0", "0", "0", "1", "1", "0", "1"},
	}, records[1:])

	report := resp.Report
	assert.Equal(t, domain.RunStatusCompleted, report.Status)
	assert.Equal(t, domain.RowCounts{Loaded: 7, Cohort: 5, BeforeCompleteCase: 5, Written: 3}, report.Rows)
	assert.Equal(t, 14, report.Columns.Loaded)
	assert.Equal(t, 18, report.Columns.Written)
	assert.Equal(t, 2, report.SentinelsReplaced)
	assert.Equal(t, []string{"SITE"}, report.StaticDropped)

	require.Len(t, report.MissingnessDropped, 2)
	assert.Equal(t, []string{"EcogPtMem"}, report.MissingnessDropped[0].Dropped)
	assert.Empty(t, report.MissingnessDropped[1].Dropped)
	assert.ElementsMatch(t, []string{"SITE", "EcogPtMem"}, report.DroppedColumns())

	require.NotNil(t, report.Label)
	assert.Equal(t, map[string]int{"AD": 0, "CN": 1, "LMCI": 2}, report.Label.Codes)

	require.Len(t, report.Indicators, 5)
	assert.Equal(t, "PTETHCAT", report.Indicators[4].Column)
	assert.Equal(t, "Hisp/Latino", report.Indicators[4].DroppedLevel)
	assert.Equal(t, []string{"PTETHCAT_Not Hisp/Latino"}, report.Indicators[4].Created)

	require.Len(t, report.Steps, 9)
	cc := report.Steps[7]
	assert.Equal(t, operations.StepIDCompleteCase, cc.ID)
	assert.Equal(t, 5, cc.RowsBefore)
	assert.Equal(t, 3, cc.RowsAfter)

	assert.Contains(t, logs.String(), `"rows_before":5`)
	assert.Contains(t, logs.String(), `"rows_after":3`)
}

func TestCleaningStages_SchemaErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *config.PipelineConfig)
		step   string
		column string
	}{
		{
			name:   "static drop column absent",
			mutate: func(p *config.PipelineConfig) { p.StaticDropColumns = append(p.StaticDropColumns, "ORIGPROT") },
			step:   operations.StepIDStaticDrop,
			column: "ORIGPROT",
		},
		{
			name:   "cohort column absent",
			mutate: func(p *config.PipelineConfig) { p.CohortColumn = "PROTOCOL" },
			step:   operations.StepIDFilter,
			column: "PROTOCOL",
		},
		{
			name:   "label column absent",
			mutate: func(p *config.PipelineConfig) { p.LabelColumn = "DX" },
			step:   operations.StepIDLabelEncode,
			column: "DX",
		},
		{
			name:   "categorical column absent",
			mutate: func(p *config.PipelineConfig) { p.CategoricalNominal = append(p.CategoricalNominal, "PTHAND") },
			step:   operations.StepIDOneHot,
			column: "PTHAND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := testutil.FixturePipeline()
			tt.mutate(&pipeline)

			output := filepath.Join(t.TempDir(), "out.csv")
			resp, err := runCleaning(t, operations.StageOptions{
				Pipeline: pipeline,
				Input:    testutil.WriteADNIFixture(t),
				Output:   output,
			})
			require.Error(t, err)
			assert.True(t, apperrors.IsSchemaError(err), "got %v", err)
			assert.Equal(t, tt.column, apperrors.Column(err))
			assert.Equal(t, operations.OperationStatusFailed, resp.Status)
			assert.NoFileExists(t, output)

			var failed string
			for _, s := range resp.Steps {
				if s.GetStatus() == operations.StepStatusFailed {
					failed = s.ID
				}
			}
			assert.Equal(t, tt.step, failed)
		})
	}
}

func TestCleaningStages_MissingInput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.csv")
	resp, err := runCleaning(t, operations.StageOptions{
		Pipeline: testutil.FixturePipeline(),
		Input:    filepath.Join(t.TempDir(), "absent.csv"),
		Output:   output,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsIOError(err), "got %v", err)
	assert.Equal(t, operations.StepStatusFailed, resp.Steps[0].GetStatus())
	assert.Equal(t, operations.StepStatusSkipped, resp.Steps[8].GetStatus())
	assert.NoFileExists(t, output)
}

func TestCleaningStages_XLSXOutput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "clean.xlsx")
	resp, err := runCleaning(t, operations.StageOptions{
		Pipeline: testutil.FixturePipeline(),
		Input:    testutil.WriteADNIFixture(t),
		Output:   output,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Report.Rows.Written)
	assert.FileExists(t, output)
}

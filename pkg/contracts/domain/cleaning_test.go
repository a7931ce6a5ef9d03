package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepSummary_Removed(t *testing.T) {
	s := StepSummary{RowsBefore: 10, RowsAfter: 7, ColumnsBefore: 5, ColumnsAfter: 9}
	assert.Equal(t, 3, s.RowsRemoved())
	assert.Equal(t, 0, s.ColumnsRemoved())
}

func TestCleaningReport_Finish(t *testing.T) {
	r := NewCleaningReport("run-1", "in.csv", "out.csv")
	r.StaticDropped = []string{"SITE"}
	r.MissingnessDropped = append(r.MissingnessDropped, ThresholdDrop{Threshold: 0.5, Dropped: []string{"AV45", "PIB"}})

	r.Finish(RunStatusFailed, errors.New("boom"))
	assert.Equal(t, RunStatusFailed, r.Status)
	assert.Equal(t, "boom", r.Error)
	assert.False(t, r.FinishedAt.Before(r.StartedAt))
	assert.Equal(t, []string{"SITE", "AV45", "PIB"}, r.DroppedColumns())
}

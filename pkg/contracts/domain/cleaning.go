package domain

import (
	"time"

	"adniclean/pkg/contracts"
)

// RunStatus is the outcome of a cleaning run
type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// CleaningReport summarizes one run of the cleaning pipeline
type CleaningReport struct {
	RunID         string    `json:"run_id"`
	FormatVersion string    `json:"format_version"`
	Input         string    `json:"input"`
	Output        string    `json:"output"`
	Status        RunStatus `json:"status"`
	Error         string    `json:"error,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`

	Rows    RowCounts `json:"rows"`
	Columns struct {
		Loaded  int `json:"loaded"`
		Written int `json:"written"`
	} `json:"columns"`

	SentinelsReplaced  int              `json:"sentinels_replaced"`
	StaticDropped      []string         `json:"static_dropped"`
	MissingnessDropped []ThresholdDrop  `json:"missingness_dropped"`
	Label              *LabelEncoding   `json:"label,omitempty"`
	Indicators         []IndicatorGroup `json:"indicators"`
	Steps              []StepSummary    `json:"steps"`
}

// RowCounts tracks the row count at each point where rows can be lost
type RowCounts struct {
	Loaded             int `json:"loaded"`
	Cohort             int `json:"cohort"`
	BeforeCompleteCase int `json:"before_complete_case"`
	Written            int `json:"written"`
}

// ThresholdDrop records one missingness pass
type ThresholdDrop struct {
	Threshold float64  `json:"threshold"`
	Columns   []string `json:"columns,omitempty"`
	Dropped   []string `json:"dropped"`
}

// LabelEncoding records the code assigned to each label value
type LabelEncoding struct {
	Column string         `json:"column"`
	Codes  map[string]int `json:"codes"`
}

// IndicatorGroup records the indicator columns derived from one categorical
// column
type IndicatorGroup struct {
	Column       string   `json:"column"`
	Created      []string `json:"created"`
	DroppedLevel string   `json:"dropped_level,omitempty"`
}

// StepSummary is the shape change and timing of one pipeline step
type StepSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	RowsBefore    int     `json:"rows_before"`
	RowsAfter     int     `json:"rows_after"`
	ColumnsBefore int     `json:"columns_before"`
	ColumnsAfter  int     `json:"columns_after"`
	DurationMS    float64 `json:"duration_ms"`
	Error         string  `json:"error,omitempty"`
}

// RowsRemoved returns the number of rows the step removed
func (s StepSummary) RowsRemoved() int {
	if s.RowsBefore > s.RowsAfter {
		return s.RowsBefore - s.RowsAfter
	}
	return 0
}

// ColumnsRemoved returns the net number of columns the step removed
func (s StepSummary) ColumnsRemoved() int {
	if s.ColumnsBefore > s.ColumnsAfter {
		return s.ColumnsBefore - s.ColumnsAfter
	}
	return 0
}

// NewCleaningReport starts a report for a run
func NewCleaningReport(runID, input, output string) *CleaningReport {
	return &CleaningReport{
		RunID:              runID,
		FormatVersion:      contracts.ReportFormatVersion,
		Input:              input,
		Output:             output,
		StartedAt:          time.Now().UTC(),
		StaticDropped:      []string{},
		MissingnessDropped: []ThresholdDrop{},
		Indicators:         []IndicatorGroup{},
		Steps:              []StepSummary{},
	}
}

// Finish stamps the outcome of the run
func (r *CleaningReport) Finish(status RunStatus, err error) {
	r.Status = status
	r.FinishedAt = time.Now().UTC()
	if err != nil {
		r.Error = err.Error()
	}
}

// DroppedColumns returns every column removed by the static and missingness
// drops
func (r *CleaningReport) DroppedColumns() []string {
	out := append([]string(nil), r.StaticDropped...)
	for _, d := range r.MissingnessDropped {
		out = append(out, d.Dropped...)
	}
	return out
}

package operations

import (
	"context"
	"log/slog"

	"adniclean/internal/dataprocessing"
	"adniclean/internal/exporter"
	"adniclean/pkg/contracts/domain"
)

// NewCleaningStages builds the cleaning steps in execution order. Each step
// depends on the one before it.
func NewCleaningStages(opts StageOptions) []Step {
	return []Step{
		NewLoadStage(opts),
		NewFilterStage(opts),
		NewSentinelStage(opts),
		NewStaticDropStage(opts),
		NewMissingnessStage(opts),
		NewLabelEncodeStage(opts),
		NewOneHotStage(opts),
		NewCompleteCaseStage(opts),
		NewPersistStage(opts),
	}
}

// RegisterCleaningStages registers every cleaning step on m
func RegisterCleaningStages(m *Manager, opts StageOptions) error {
	for _, step := range NewCleaningStages(opts) {
		if err := m.RegisterStage(step); err != nil {
			return err
		}
	}
	return nil
}

// LoadStage reads the input table
type LoadStage struct {
	BaseStage
	opts   StageOptions
	logger *slog.Logger
}

// NewLoadStage creates the load step
func NewLoadStage(opts StageOptions) *LoadStage {
	return &LoadStage{
		BaseStage: NewBaseStage(StepIDLoad, StepNameLoad, nil),
		opts:      opts,
		logger:    opts.logger(StepIDLoad),
	}
}

// Validate always passes; this step creates the table
func (s *LoadStage) Validate(state *OperationState) error {
	return nil
}

// Execute loads the configured input
func (s *LoadStage) Execute(ctx context.Context, state *OperationState) error {
	df, err := dataprocessing.ReadTable(s.opts.Input, dataprocessing.LoadOptions{
		Delimiter: s.opts.Pipeline.DelimiterRune(),
		NAValues:  s.opts.Pipeline.NAValues,
		Sheet:     s.opts.Pipeline.Sheet,
	})
	if err != nil {
		return err
	}

	state.SetTable(df)
	state.Report.Rows.Loaded = df.Nrow()
	state.Report.Columns.Loaded = df.Ncol()

	s.logger.InfoContext(ctx, "Input loaded",
		slog.String("path", s.opts.Input),
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()),
		slog.Int("missing_cells", dataprocessing.CountMissing(df)))
	return nil
}

// FilterStage keeps the configured cohort at the configured visit
type FilterStage struct {
	BaseStage
	opts   StageOptions
	logger *slog.Logger
}

// NewFilterStage creates the cohort/visit filter step
func NewFilterStage(opts StageOptions) *FilterStage {
	return &FilterStage{
		BaseStage: NewBaseStage(StepIDFilter, StepNameFilter, []string{StepIDLoad}),
		opts:      opts,
		logger:    opts.logger(StepIDFilter),
	}
}

// Execute applies the cohort and visit filter
func (s *FilterStage) Execute(ctx context.Context, state *OperationState) error {
	p := s.opts.Pipeline
	df, err := dataprocessing.FilterCohortVisit(state.Table(), p.CohortColumn, p.Cohort, p.VisitColumn, p.Visit)
	if err != nil {
		return err
	}

	state.SetTable(df)
	state.Report.Rows.Cohort = df.Nrow()

	s.logger.InfoContext(ctx, "Cohort selected",
		slog.String("cohort", p.Cohort),
		slog.String("visit", p.Visit),
		slog.Int("rows", df.Nrow()))
	if df.Nrow() == 0 {
		s.logger.WarnContext(ctx, "No rows match the cohort and visit filter")
	}
	return nil
}

// SentinelStage turns coded unknowns into missing cells
type SentinelStage struct {
	BaseStage
	opts   StageOptions
	logger *slog.Logger
}

// NewSentinelStage creates the sentinel normalization step
func NewSentinelStage(opts StageOptions) *SentinelStage {
	return &SentinelStage{
		BaseStage: NewBaseStage(StepIDSentinels, StepNameSentinels, []string{StepIDFilter}),
		opts:      opts,
		logger:    opts.logger(StepIDSentinels),
	}
}

// Execute replaces sentinel cells with missing
func (s *SentinelStage) Execute(ctx context.Context, state *OperationState) error {
	df, replaced, err := dataprocessing.NormalizeSentinels(state.Table(), s.opts.Pipeline.Sentinels)
	if err != nil {
		return err
	}

	state.SetTable(df)
	state.Report.SentinelsReplaced = replaced
	state.GetStage(s.ID()).SetMetadata("replaced", replaced)

	s.logger.InfoContext(ctx, "Sentinels normalized",
		slog.Any("sentinels", s.opts.Pipeline.Sentinels),
		slog.Int("replaced", replaced))
	return nil
}

// StaticDropStage removes the fixed list of unwanted columns
type StaticDropStage struct {
	BaseStage
	opts   StageOptions
	logger *slog.Logger
}

// NewStaticDropStage creates the static column drop step
func NewStaticDropStage(opts StageOptions) *StaticDropStage {
	return &StaticDropStage{
		BaseStage: NewBaseStage(StepIDStaticDrop, StepNameStaticDrop, []string{StepIDSentinels}),
		opts:      opts,
		logger:    opts.logger(StepIDStaticDrop),
	}
}

// Execute drops the configured columns; any absent name fails the step
func (s *StaticDropStage) Execute(ctx context.Context, state *OperationState) error {
	df, dropped, err := dataprocessing.DropColumns(state.Table(), s.opts.Pipeline.StaticDropColumns)
	if err != nil {
		return err
	}

	state.SetTable(df)
	state.Report.StaticDropped = append(state.Report.StaticDropped, dropped...)

	s.logger.InfoContext(ctx, "Static columns dropped",
		slog.Int("dropped", len(dropped)),
		slog.Int("remaining", df.Ncol()))
	return nil
}

// MissingnessStage drops columns with too many missing cells
type MissingnessStage struct {
	BaseStage
	opts   StageOptions
	logger *slog.Logger
}

// NewMissingnessStage creates the missingness drop step
func NewMissingnessStage(opts StageOptions) *MissingnessStage {
	return &MissingnessStage{
		BaseStage: NewBaseStage(StepIDMissingnessDrop, StepNameMissingnessDrop, []string{StepIDStaticDrop}),
		opts:      opts,
		logger:    opts.logger(StepIDMissingnessDrop),
	}
}

// Execute runs each configured pass against the table left by the previous one
func (s *MissingnessStage) Execute(ctx context.Context, state *OperationState) error {
	protected := s.opts.Pipeline.ProtectedColumns()

	df := state.Table()
	for i, p := range s.opts.Pipeline.MissingnessPasses {
		pass := dataprocessing.MissingnessPass{Threshold: p.Threshold, Columns: p.Columns}
		out, dropped, err := dataprocessing.DropByMissingness(df, pass, protected)
		if err != nil {
			return err
		}
		df = out

		if dropped == nil {
			dropped = []string{}
		}
		state.Report.MissingnessDropped = append(state.Report.MissingnessDropped, domain.ThresholdDrop{
			Threshold: p.Threshold,
			Columns:   p.Columns,
			Dropped:   dropped,
		})

		s.logger.InfoContext(ctx, "Missingness pass applied",
			slog.Int("pass", i+1),
			slog.Float64("threshold", p.Threshold),
			slog.Any("patterns", p.Columns),
			slog.Int("dropped", len(dropped)),
			slog.Int("remaining", df.Ncol()))
	}

	state.SetTable(df)
	return nil
}

// LabelEncodeStage replaces the diagnosis label with integer codes
type LabelEncodeStage struct {
	BaseStage
	opts   StageOptions
	logger *slog.Logger
}

// NewLabelEncodeStage creates the label encoding step
func NewLabelEncodeStage(opts StageOptions) *LabelEncodeStage {
	return &LabelEncodeStage{
		BaseStage: NewBaseStage(StepIDLabelEncode, StepNameLabelEncode, []string{StepIDMissingnessDrop}),
		opts:      opts,
		logger:    opts.logger(StepIDLabelEncode),
	}
}

// Execute encodes the label column
func (s *LabelEncodeStage) Execute(ctx context.Context, state *OperationState) error {
	df, mapping, err := dataprocessing.LabelEncode(state.Table(), s.opts.Pipeline.LabelColumn)
	if err != nil {
		return err
	}

	state.SetTable(df)
	state.Report.Label = &domain.LabelEncoding{Column: mapping.Column, Codes: mapping.Map()}

	s.logger.InfoContext(ctx, "Label encoded",
		slog.String("column", mapping.Column),
		slog.Any("levels", mapping.Levels))
	return nil
}

// OneHotStage expands the categorical columns into indicators
type OneHotStage struct {
	BaseStage
	opts   StageOptions
	logger *slog.Logger
}

// NewOneHotStage creates the one-hot encoding step
func NewOneHotStage(opts StageOptions) *OneHotStage {
	return &OneHotStage{
		BaseStage: NewBaseStage(StepIDOneHot, StepNameOneHot, []string{StepIDLabelEncode}),
		opts:      opts,
		logger:    opts.logger(StepIDOneHot),
	}
}

// Execute encodes the nominal columns with every level, then the drop-first
// columns without their first level
func (s *OneHotStage) Execute(ctx context.Context, state *OperationState) error {
	p := s.opts.Pipeline

	df, nominal, err := dataprocessing.OneHotEncode(state.Table(), p.CategoricalNominal, false)
	if err != nil {
		return err
	}
	df, dropFirst, err := dataprocessing.OneHotEncode(df, p.CategoricalDropFirst, true)
	if err != nil {
		return err
	}

	state.SetTable(df)
	for _, ind := range append(nominal, dropFirst...) {
		state.Report.Indicators = append(state.Report.Indicators, domain.IndicatorGroup{
			Column:       ind.Column,
			Created:      ind.Created,
			DroppedLevel: ind.Dropped,
		})
		s.logger.DebugContext(ctx, "Indicators created",
			slog.String("column", ind.Column),
			slog.Any("created", ind.Created))
	}
	return nil
}

// CompleteCaseStage drops every row with a missing cell
type CompleteCaseStage struct {
	BaseStage
	opts   StageOptions
	logger *slog.Logger
}

// NewCompleteCaseStage creates the complete-case filter step
func NewCompleteCaseStage(opts StageOptions) *CompleteCaseStage {
	return &CompleteCaseStage{
		BaseStage: NewBaseStage(StepIDCompleteCase, StepNameCompleteCase, []string{StepIDOneHot}),
		opts:      opts,
		logger:    opts.logger(StepIDCompleteCase),
	}
}

// Execute removes incomplete rows and reports the sample-size loss
func (s *CompleteCaseStage) Execute(ctx context.Context, state *OperationState) error {
	before := state.Table().Nrow()
	df, removed, err := dataprocessing.DropIncompleteRows(state.Table())
	if err != nil {
		return err
	}

	state.SetTable(df)
	state.Report.Rows.BeforeCompleteCase = before
	state.GetStage(s.ID()).SetMetadata("rows_removed", removed)

	s.logger.InfoContext(ctx, "Incomplete rows removed",
		slog.Int("rows_before", before),
		slog.Int("rows_after", df.Nrow()),
		slog.Int("rows_removed", removed))
	if before > 0 && df.Nrow() == 0 {
		s.logger.WarnContext(ctx, "Every row had at least one missing cell")
	}
	return nil
}

// PersistStage writes the cleaned table
type PersistStage struct {
	BaseStage
	opts   StageOptions
	logger *slog.Logger
}

// NewPersistStage creates the output step
func NewPersistStage(opts StageOptions) *PersistStage {
	return &PersistStage{
		BaseStage: NewBaseStage(StepIDPersist, StepNamePersist, []string{StepIDCompleteCase}),
		opts:      opts,
		logger:    opts.logger(StepIDPersist),
	}
}

// Execute writes the table to the configured output
func (s *PersistStage) Execute(ctx context.Context, state *OperationState) error {
	df := state.Table()
	err := exporter.WriteTable(s.opts.Output, df, exporter.WriteOptions{
		Delimiter: s.opts.Pipeline.DelimiterRune(),
		Sheet:     s.opts.Pipeline.Sheet,
	})
	if err != nil {
		return err
	}

	state.Report.Rows.Written = df.Nrow()
	state.Report.Columns.Written = df.Ncol()

	s.logger.InfoContext(ctx, "Output written",
		slog.String("path", s.opts.Output),
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()))
	return nil
}

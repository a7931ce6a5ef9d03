package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"adniclean/internal/infrastructure"
	"adniclean/pkg/contracts/domain"
)

// Manager orchestrates operation execution. Steps run strictly one after
// another; the first failure aborts the run and skips every step after it.
type Manager struct {
	registry *Registry
	tracer   *OperationTracer
	logger   *slog.Logger
}

// NewManager creates a new operation manager
func NewManager(registry *Registry, tracer *OperationTracer, logger *slog.Logger) *Manager {
	if registry == nil {
		registry = NewRegistry()
	}
	if tracer == nil {
		tracer = NewOperationTracer(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		registry: registry,
		tracer:   tracer,
		logger:   infrastructure.WithComponent(logger, "operations"),
	}
}

// RegisterStage registers a Step with the operation
func (m *Manager) RegisterStage(step Step) error {
	return m.registry.Register(step)
}

// GetRegistry returns the registry for accessing registered steps
func (m *Manager) GetRegistry() *Registry {
	return m.registry
}

// Execute runs every registered step in dependency order. The returned
// response is populated even when err is non-nil.
func (m *Manager) Execute(ctx context.Context, req OperationRequest) (*OperationResponse, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	if req.ID == "" {
		req.ID = infrastructure.GetRunID(ctx)
	}

	report := domain.NewCleaningReport(req.ID, req.Input, req.Output)
	state := NewOperationState(req.ID, report)

	ctx, span := m.tracer.TraceOperationExecution(ctx, req.ID, req)
	defer span.End()

	steps, err := m.registry.GetDependencyOrder()
	if err != nil {
		err = NewFatalError("failed to get dependency order", err)
		state.Fail(err)
		report.Finish(domain.RunStatusFailed, err)
		m.tracer.RecordOperationCompletion(ctx, span, report, state.Duration(), err)
		return m.createResponse(state), err
	}

	for _, step := range steps {
		state.SetStage(step.ID(), NewStepState(step.ID(), step.Name()))
	}

	m.logger.InfoContext(ctx, "operation_started",
		slog.String("operation_id", req.ID),
		slog.String("input", req.Input),
		slog.String("output", req.Output),
		slog.Int("step_count", len(steps)))

	state.Start()
	err = m.executeSequential(ctx, state, steps)

	switch {
	case err == nil:
		state.Complete()
		report.Finish(domain.RunStatusCompleted, nil)
		rows, cols := state.Shape()
		m.logger.InfoContext(ctx, "operation_completed",
			slog.String("operation_id", req.ID),
			slog.Int("rows", rows),
			slog.Int("columns", cols),
			slog.Duration("duration", state.Duration()))
	case GetErrorType(err) == ErrorTypeCancellation:
		state.Cancel(err)
		report.Finish(domain.RunStatusCancelled, err)
		m.logger.WarnContext(ctx, "operation_cancelled",
			slog.String("operation_id", req.ID),
			slog.String("error", err.Error()))
	default:
		state.Fail(err)
		report.Finish(domain.RunStatusFailed, err)
		m.logger.ErrorContext(ctx, "operation_failed",
			slog.String("operation_id", req.ID),
			slog.String("error", err.Error()))
	}

	m.tracer.RecordOperationCompletion(ctx, span, report, state.Duration(), err)
	return m.createResponse(state), err
}

// executeSequential executes steps one by one
func (m *Manager) executeSequential(ctx context.Context, state *OperationState, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			m.skipRemaining(state, steps[i:], "operation cancelled")
			return NewCancellationError(step.ID(), err)
		}

		stepState := state.GetStage(step.ID())
		if stepState.GetStatus() == StepStatusSkipped {
			continue
		}

		m.logger.DebugContext(ctx, "executing_step",
			slog.String("operation_id", state.ID),
			slog.String("step", step.ID()),
			slog.Int("step_number", i+1),
			slog.Int("total_steps", len(steps)))

		if err := m.executeStage(ctx, state, step); err != nil {
			m.skipDependentStages(state, steps, step.ID())
			m.skipRemaining(state, steps[i+1:], fmt.Sprintf("step %s failed", step.ID()))
			return err
		}
	}
	return nil
}

// executeStage runs one step and records its shape change
func (m *Manager) executeStage(ctx context.Context, state *OperationState, step Step) error {
	stepState := state.GetStage(step.ID())
	if stepState == nil {
		return NewFatalError(fmt.Sprintf("step state not found for %s", step.ID()), nil)
	}

	rowsBefore, colsBefore := state.Shape()
	stepState.Start()

	stepCtx, span := m.tracer.TraceStageExecution(ctx, state.ID, step.ID())
	defer span.End()

	start := time.Now()
	err := step.Validate(state)
	if err == nil {
		err = step.Execute(stepCtx, state)
	}
	duration := time.Since(start)

	rowsAfter, colsAfter := state.Shape()
	summary := domain.StepSummary{
		ID:            step.ID(),
		Name:          step.Name(),
		RowsBefore:    rowsBefore,
		RowsAfter:     rowsAfter,
		ColumnsBefore: colsBefore,
		ColumnsAfter:  colsAfter,
		DurationMS:    float64(duration.Microseconds()) / 1000,
	}

	if err != nil {
		stepState.Fail(err)
		summary.Status = string(StepStatusFailed)
		summary.Error = err.Error()
		state.Report.Steps = append(state.Report.Steps, summary)
		m.tracer.RecordStageCompletion(stepCtx, span, summary, err)

		m.logger.ErrorContext(ctx, "step_failed",
			slog.String("operation_id", state.ID),
			slog.String("step", step.ID()),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return WrapError(err, step.ID())
	}

	stepState.Complete()
	summary.Status = string(StepStatusCompleted)
	state.Report.Steps = append(state.Report.Steps, summary)
	m.tracer.RecordStageCompletion(stepCtx, span, summary, nil)

	m.logger.InfoContext(ctx, "step_completed",
		slog.String("operation_id", state.ID),
		slog.String("step", step.ID()),
		slog.Int("rows_before", rowsBefore),
		slog.Int("rows_after", rowsAfter),
		slog.Int("columns_before", colsBefore),
		slog.Int("columns_after", colsAfter),
		slog.Duration("duration", duration))
	return nil
}

// skipDependentStages marks all steps that depend on the failed Step as skipped
func (m *Manager) skipDependentStages(state *OperationState, steps []Step, failedStepID string) {
	for _, step := range steps {
		for _, dep := range step.GetDependencies() {
			if dep != failedStepID {
				continue
			}
			stepState := state.GetStage(step.ID())
			if stepState != nil && stepState.GetStatus() == StepStatusPending {
				m.skip(state, stepState, fmt.Sprintf("dependency %s failed", failedStepID))
				m.skipDependentStages(state, steps, step.ID())
			}
			break
		}
	}
}

// skipRemaining marks every pending step in steps as skipped
func (m *Manager) skipRemaining(state *OperationState, steps []Step, reason string) {
	for _, step := range steps {
		stepState := state.GetStage(step.ID())
		if stepState != nil && stepState.GetStatus() == StepStatusPending {
			m.skip(state, stepState, reason)
		}
	}
}

func (m *Manager) skip(state *OperationState, stepState *StepState, reason string) {
	stepState.Skip(reason)
	state.Report.Steps = append(state.Report.Steps, domain.StepSummary{
		ID:     stepState.ID,
		Name:   stepState.Name,
		Status: string(StepStatusSkipped),
	})
}

// createResponse creates an operation response from state
func (m *Manager) createResponse(state *OperationState) *OperationResponse {
	resp := &OperationResponse{
		ID:       state.ID,
		Status:   state.Status,
		Duration: state.Duration(),
		Steps:    state.OrderedSteps(),
		Report:   state.Report,
	}
	if state.Error != nil {
		resp.Error = state.Error.Error()
	}
	return resp
}

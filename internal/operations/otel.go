package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"adniclean/internal/infrastructure"
	"adniclean/pkg/contracts/domain"
)

// OperationTracer provides OpenTelemetry instrumentation for cleaning runs
type OperationTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewOperationTracer creates a tracer backed by providers. A nil providers
// value yields a no-op tracer.
func NewOperationTracer(providers *infrastructure.OTelProviders) *OperationTracer {
	if providers == nil {
		return &OperationTracer{tracer: tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName)}
	}
	return &OperationTracer{
		tracer:  providers.Tracer,
		metrics: providers.Metrics,
	}
}

// TraceOperationExecution creates a span for the entire run
func (pt *OperationTracer) TraceOperationExecution(ctx context.Context, operationID string, req OperationRequest) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("operation.input", req.Input),
			attribute.String("operation.output", req.Output),
		),
	)
}

// TraceStageExecution creates a span for one step
func (pt *OperationTracer) TraceStageExecution(ctx context.Context, operationID, stepID string) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, fmt.Sprintf("pipeline.step.%s", stepID),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("step.id", stepID),
		),
	)
}

// RecordStageCompletion closes out a step span and records its metrics
func (pt *OperationTracer) RecordStageCompletion(ctx context.Context, span trace.Span, summary domain.StepSummary, err error) {
	span.SetAttributes(
		attribute.String("step.status", summary.Status),
		attribute.Int("step.rows_before", summary.RowsBefore),
		attribute.Int("step.rows_after", summary.RowsAfter),
		attribute.Int("step.columns_before", summary.ColumnsBefore),
		attribute.Int("step.columns_after", summary.ColumnsAfter),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "step execution failed")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	pt.metrics.RecordStep(ctx, summary.ID, summary.DurationMS/1000, summary.RowsRemoved(), summary.ColumnsRemoved())
}

// RecordOperationCompletion closes out the run span and records run metrics
func (pt *OperationTracer) RecordOperationCompletion(ctx context.Context, span trace.Span, report *domain.CleaningReport, duration time.Duration, err error) {
	span.SetAttributes(
		attribute.String("operation.status", string(report.Status)),
		attribute.Float64("operation.duration_seconds", duration.Seconds()),
		attribute.Int("operation.rows_loaded", report.Rows.Loaded),
		attribute.Int("operation.rows_written", report.Rows.Written),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	pt.metrics.RecordRun(ctx, string(report.Status), report.Rows.Loaded, report.Rows.Written)
}

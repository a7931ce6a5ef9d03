package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adniclean/internal/config"
)

func TestInitializeOTel_Disabled(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{ServiceName: ServiceName}, nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.Registry)
	require.NotNil(t, providers.Metrics)

	// no-op instruments accept records
	providers.Metrics.RecordStep(context.Background(), "load", 0.1, 0, 0)
	_, span := providers.Tracer.Start(context.Background(), "noop")
	span.End()

	assert.NoError(t, providers.WriteMetrics(filepath.Join(t.TempDir(), "m.prom")))
}

func TestInitializeOTel_MetricsTextfile(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{ServiceName: ServiceName, EnableMetrics: true}, nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	ctx := context.Background()
	providers.Metrics.RecordStep(ctx, "complete_case", 0.25, 7, 0)
	providers.Metrics.RecordStep(ctx, "static_drop", 0.01, 0, 3)
	providers.Metrics.RecordRun(ctx, "completed", 100, 93)

	path := filepath.Join(t.TempDir(), "metrics", "adniclean.prom")
	require.NoError(t, providers.WriteMetrics(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "adniclean_rows_removed")
	assert.Contains(t, text, "adniclean_columns_dropped")
	assert.Contains(t, text, "adniclean_rows_loaded")
	assert.Contains(t, text, `step="complete_case"`)
}

func TestInitializeOTel_TraceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace", "spans.json")
	providers, err := InitializeOTel(&OTelConfig{ServiceName: ServiceName, EnableTracing: true, TraceFile: path}, nil)
	require.NoError(t, err)

	_, span := providers.Tracer.Start(context.Background(), "pipeline.step.load")
	span.End()
	require.NoError(t, providers.Shutdown(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "pipeline.step.load")
}

func TestOTelConfigFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.MetricsFile = "run.prom"
	paths := config.ResolvePaths(cfg, t.TempDir())

	oc := OTelConfigFrom(cfg, paths)
	assert.True(t, oc.EnableMetrics)
	assert.False(t, oc.EnableTracing)
	assert.Equal(t, "", oc.TraceFile)
}

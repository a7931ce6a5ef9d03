package operations

import (
	"log/slog"

	"adniclean/internal/config"
)

// StageOptions carries what the cleaning steps need from configuration
type StageOptions struct {
	Pipeline config.PipelineConfig
	Input    string
	Output   string
	Logger   *slog.Logger
}

func (o StageOptions) logger(stepID string) *slog.Logger {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("step", stepID))
}

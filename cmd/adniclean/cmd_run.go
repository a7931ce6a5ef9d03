package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"adniclean/internal/config"
	"adniclean/internal/exporter"
	"adniclean/internal/infrastructure"
	"adniclean/internal/operations"
	"adniclean/internal/validation"
)

var runFlags struct {
	input       string
	output      string
	report      string
	metricsFile string
	traceFile   string
	logLevel    string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full cleaning pipeline and write the cleaned table",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runFlags.input, "input", "i", "", "Input table (.csv, .tsv, .txt or .xlsx)")
	f.StringVarP(&runFlags.output, "output", "o", "", "Cleaned output table; .xlsx and .tsv select those formats")
	f.StringVar(&runFlags.report, "report", "", "Write a JSON run report to this path")
	f.StringVar(&runFlags.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	f.StringVar(&runFlags.traceFile, "trace-file", "", "Write trace spans as JSON to this path")
	f.StringVar(&runFlags.logLevel, "log-level", "", "Override the log level (debug, info, warn, error)")
}

// applyRunFlags overrides configuration with any flag the user set.
func applyRunFlags(cfg *config.Config) {
	if runFlags.input != "" {
		cfg.Paths.Input = runFlags.input
	}
	if runFlags.output != "" {
		cfg.Paths.Output = runFlags.output
	}
	if runFlags.report != "" {
		cfg.Paths.Report = runFlags.report
	}
	if runFlags.metricsFile != "" {
		cfg.Paths.MetricsFile = runFlags.metricsFile
	}
	if runFlags.traceFile != "" {
		cfg.Paths.TraceFile = runFlags.traceFile
	}
	if runFlags.logLevel != "" {
		cfg.Logging.Level = runFlags.logLevel
	}
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	paths, err := config.GetPaths(cfg)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()
	paths.LogPathResolution(logger)

	fv := validation.NewFileValidator(logger)
	if err := fv.ValidateInputFile(paths.Input); err != nil {
		return err
	}
	for _, dir := range paths.OutputDirectories() {
		if err := fv.ValidateOutputDirectory(dir); err != nil {
			return err
		}
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg, paths), logger)
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = infrastructure.EnsureRunID(ctx)

	manager := operations.NewManager(operations.NewRegistry(), operations.NewOperationTracer(providers), logger)
	err = operations.RegisterCleaningStages(manager, operations.StageOptions{
		Pipeline: cfg.Pipeline,
		Input:    paths.Input,
		Output:   paths.Output,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	resp, runErr := manager.Execute(ctx, operations.OperationRequest{
		ID:     infrastructure.GetRunID(ctx),
		Input:  paths.Input,
		Output: paths.Output,
	})

	if paths.Report != "" && resp != nil {
		if err := exporter.WriteCleaningReport(paths.Report, resp.Report); err != nil {
			logger.Error("Failed to write run report", slog.String("error", err.Error()))
			if runErr == nil {
				runErr = err
			}
		}
	}
	if err := providers.WriteMetrics(paths.MetricsFile); err != nil {
		logger.Warn("Failed to write metrics", slog.String("error", err.Error()))
	}

	if resp != nil {
		printRunSummary(cmd.OutOrStdout(), resp)
	}
	return runErr
}

func printRunSummary(out io.Writer, resp *operations.OperationResponse) {
	r := resp.Report
	fmt.Fprintf(out, "Run:      %s\n", resp.ID)
	fmt.Fprintf(out, "Status:   %s\n", resp.Status)
	fmt.Fprintf(out, "Rows:     loaded=%d cohort=%d before_complete_case=%d written=%d\n",
		r.Rows.Loaded, r.Rows.Cohort, r.Rows.BeforeCompleteCase, r.Rows.Written)
	fmt.Fprintf(out, "Columns:  loaded=%d written=%d dropped=%d\n",
		r.Columns.Loaded, r.Columns.Written, len(r.DroppedColumns()))
	for _, s := range resp.Steps {
		line := fmt.Sprintf("  %-18s %s", s.ID, s.GetStatus())
		switch {
		case s.Error != nil:
			line += ": " + s.Error.Error()
		case s.Message != "":
			line += " (" + s.Message + ")"
		}
		fmt.Fprintln(out, line)
	}
	if resp.Status == operations.OperationStatusCompleted {
		fmt.Fprintf(out, "Output:   %s\n", r.Output)
	}
}

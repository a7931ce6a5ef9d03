package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved file locations for one run.
// This is the single source of truth for every path the pipeline touches.
type Paths struct {
	BaseDir     string
	Input       string
	Output      string
	Report      string
	MetricsFile string
	TraceFile   string
	LogFile     string
}

// GetPaths resolves the configured paths against the current working directory.
func GetPaths(cfg *Config) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return ResolvePaths(cfg, wd), nil
}

// ResolvePaths resolves relative paths against baseDir. Empty optional paths
// stay empty.
func ResolvePaths(cfg *Config, baseDir string) *Paths {
	return &Paths{
		BaseDir:     baseDir,
		Input:       resolve(baseDir, cfg.Paths.Input),
		Output:      resolve(baseDir, cfg.Paths.Output),
		Report:      resolve(baseDir, cfg.Paths.Report),
		MetricsFile: resolve(baseDir, cfg.Paths.MetricsFile),
		TraceFile:   resolve(baseDir, cfg.Paths.TraceFile),
		LogFile:     resolve(baseDir, cfg.Logging.FilePath),
	}
}

func resolve(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// OutputDirectories lists the parent directories of every file the run writes.
func (p *Paths) OutputDirectories() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range []string{p.Output, p.Report, p.MetricsFile, p.TraceFile} {
		if f == "" {
			continue
		}
		dir := filepath.Dir(f)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// EnsureDirectories creates all output directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range p.OutputDirectories() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("input", p.Input),
		slog.String("output", p.Output),
		slog.String("report", p.Report),
		slog.String("metrics_file", p.MetricsFile),
		slog.String("trace_file", p.TraceFile))
}

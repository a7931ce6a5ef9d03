package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "adniclean/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains the files a run reads and writes
type PathsConfig struct {
	Input       string `yaml:"input" envconfig:"INPUT" validate:"required"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"required"`
	Report      string `yaml:"report" envconfig:"REPORT"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
}

// TelemetryConfig toggles span and metric collection
type TelemetryConfig struct {
	EnableMetrics bool `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	EnableTracing bool `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
}

// ThresholdPass is one missingness-drop pass. Columns holds glob patterns
// selecting the candidate columns; empty means every column.
type ThresholdPass struct {
	Threshold float64  `yaml:"threshold" validate:"gte=0,lte=1"`
	Columns   []string `yaml:"columns,omitempty" validate:"dive,required"`
}

// PipelineConfig is the declarative description of the cleaning run.
type PipelineConfig struct {
	CohortColumn string `yaml:"cohort_column" envconfig:"COHORT_COLUMN" validate:"required"`
	Cohort       string `yaml:"cohort" envconfig:"COHORT" validate:"required"`
	VisitColumn  string `yaml:"visit_column" envconfig:"VISIT_COLUMN" validate:"required"`
	Visit        string `yaml:"visit" envconfig:"VISIT" validate:"required"`

	Sentinels []string `yaml:"sentinels" envconfig:"SENTINELS"`
	NAValues  []string `yaml:"na_values" envconfig:"NA_VALUES"`

	StaticDropColumns []string        `yaml:"static_drop_columns" envconfig:"STATIC_DROP_COLUMNS" validate:"dive,required"`
	MissingnessPasses []ThresholdPass `yaml:"missingness_passes" ignored:"true" validate:"dive"`

	LabelColumn          string   `yaml:"label_column" envconfig:"LABEL_COLUMN" validate:"required"`
	CategoricalNominal   []string `yaml:"categorical_nominal" envconfig:"CATEGORICAL_NOMINAL" validate:"dive,required"`
	CategoricalDropFirst []string `yaml:"categorical_drop_first" envconfig:"CATEGORICAL_DROP_FIRST" validate:"dive,required"`

	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
	Sheet     string `yaml:"sheet,omitempty" envconfig:"SHEET"`
}

// ProtectedColumns are never removed by a missingness pass: the later steps
// need them.
func (p PipelineConfig) ProtectedColumns() []string {
	out := []string{p.LabelColumn}
	out = append(out, p.CategoricalNominal...)
	out = append(out, p.CategoricalDropFirst...)
	return out
}

// DelimiterRune returns the configured field delimiter.
func (p PipelineConfig) DelimiterRune() rune {
	for _, r := range p.Delimiter {
		return r
	}
	return ','
}

// Load builds the configuration from defaults, then the YAML file (if any),
// then ADNI_* environment variables. Later sources win.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("failed to load config from file %s", configFile), err)
		}
	}

	// No default tags on the struct: envconfig would otherwise overwrite
	// values that came from the file.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

var validate = validator.New()

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}

	if (c.Logging.Output == "file" || c.Logging.Output == "both") && c.Logging.FilePath == "" {
		return fmt.Errorf("logging file_path is required when output is %q", c.Logging.Output)
	}

	seen := make(map[string]bool)
	for _, col := range append(append([]string{}, c.Pipeline.CategoricalNominal...), c.Pipeline.CategoricalDropFirst...) {
		if col == c.Pipeline.LabelColumn {
			return fmt.Errorf("label column %q cannot also be a categorical predictor", col)
		}
		if seen[col] {
			return fmt.Errorf("categorical column %q listed more than once", col)
		}
		seen[col] = true
	}

	return nil
}

// ToYAML renders the effective configuration.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"adniclean.yaml",
		"configs/adniclean.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			Input:  DefaultInputFile,
			Output: DefaultOutputFile,
		},
		Pipeline: PipelineConfig{
			CohortColumn:      DefaultCohortColumn,
			Cohort:            DefaultCohort,
			VisitColumn:       DefaultVisitColumn,
			Visit:             DefaultVisit,
			Sentinels:         cloneStrings(DefaultSentinels),
			NAValues:          cloneStrings(DefaultNAValues),
			StaticDropColumns: cloneStrings(DefaultStaticDropColumns),
			MissingnessPasses: []ThresholdPass{
				{Threshold: DefaultMissingnessThreshold},
				// Drops nothing after the first pass at the same threshold;
				// raise or lower it to prune the Ecog scales separately.
				{Threshold: DefaultMissingnessThreshold, Columns: []string{"Ecog*"}},
			},
			LabelColumn:          DefaultLabelColumn,
			CategoricalNominal:   cloneStrings(DefaultCategoricalNominal),
			CategoricalDropFirst: cloneStrings(DefaultCategoricalDropFirst),
			Delimiter:            DefaultDelimiter,
		},
	}
}

func cloneStrings(in []string) []string {
	return append([]string(nil), in...)
}

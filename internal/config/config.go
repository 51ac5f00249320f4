// =============================================================================
// Lotto QR Generator - Configuration Module
// =============================================================================
//
// This module loads the application configuration and turns it into the
// options of the pipeline, the round calculator, and the renderer.
//
// CONFIGURATION SOURCES (highest priority first):
//   1. Command line flags bound by the cmd package
//   2. Environment variables with the LOTTOQR_ prefix
//      (extraction.strategy -> LOTTOQR_EXTRACTION_STRATEGY)
//   3. The config file (config.yaml, optional)
//   4. Built-in defaults
//
// VALIDATION:
//   Every value is parsed on load, so a bad strategy name or a negative
//   border fails at startup rather than halfway through a run.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"github.com/ginjaninja78/lotto-qr-generator/internal/batch"
	"github.com/ginjaninja78/lotto-qr-generator/internal/extract"
	"github.com/ginjaninja78/lotto-qr-generator/internal/payload"
	"github.com/ginjaninja78/lotto-qr-generator/internal/pipeline"
	"github.com/ginjaninja78/lotto-qr-generator/internal/render"
	"github.com/ginjaninja78/lotto-qr-generator/internal/round"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "LOTTOQR"

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = "config.yaml"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for documents by 'process'.
	// Default: "./input"
	InputDir string `mapstructure:"input_dir"`

	// OutputDir receives one run directory per 'process' invocation.
	// Default: "./output"
	OutputDir string `mapstructure:"output_dir"`

	// InputArchiveDir receives processed documents when ArchiveInputs is set.
	// Default: "./input_archive"
	InputArchiveDir string `mapstructure:"input_archive_dir"`

	// ArchiveInputs moves documents that produced codes to InputArchiveDir.
	// Default: false
	ArchiveInputs bool `mapstructure:"archive_inputs"`

	// RunDirFormat names run directories. Placeholders: {uuid},
	// {timestamp}, {date}, {round}.
	// Default: "{timestamp}_{round}"
	RunDirFormat string `mapstructure:"run_dir_format"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile, when set, receives a copy of every log record.
	LogFile string `mapstructure:"log_file"`

	// LogLevel is one of "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `mapstructure:"log_level"`

	// =========================================================================
	// PRESENTATION SETTINGS
	// =========================================================================

	// Locale selects the message language: "ko" or "en".
	// Default: "ko"
	Locale string `mapstructure:"locale"`

	// LabelsFile is an optional YAML file overriding built-in messages.
	LabelsFile string `mapstructure:"labels_file"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of documents processed at once.
	// Default: 4
	MaxConcurrency int `mapstructure:"max_concurrency"`

	Extraction ExtractionConfig `mapstructure:"extraction"`
	Payload    PayloadConfig    `mapstructure:"payload"`
	Batch      BatchConfig      `mapstructure:"batch"`
	Round      RoundConfig      `mapstructure:"round"`
	Render     RenderConfig     `mapstructure:"render"`
	History    HistoryConfig    `mapstructure:"history"`
}

// ExtractionConfig controls how games are read from documents.
type ExtractionConfig struct {
	// Strategy is "dedupe" or "keep" for repeated numbers on a text line.
	Strategy string `mapstructure:"strategy"`

	// CSVDelimiter is the field delimiter of .csv inputs: ",", ";", "tab", "|".
	CSVDelimiter string `mapstructure:"csv_delimiter"`

	// CSVStartRow is the first row of .csv inputs to read (1-indexed).
	// Rows above it, such as titles or headers, are not reported as skipped.
	CSVStartRow int `mapstructure:"csv_start_row"`
}

// PayloadConfig selects the payload grammar.
type PayloadConfig struct {
	Grammar string `mapstructure:"grammar"`
	URLBase string `mapstructure:"url_base"`
}

// BatchConfig controls block size.
type BatchConfig struct {
	Size int `mapstructure:"size"`
}

// RoundConfig describes the weekly draw schedule.
type RoundConfig struct {
	Epoch          string `mapstructure:"epoch"`
	CutoffWeekday  string `mapstructure:"cutoff_weekday"`
	CutoffTime     string `mapstructure:"cutoff_time"`
	UTCOffsetHours int    `mapstructure:"utc_offset_hours"`
}

// RenderConfig controls QR images.
type RenderConfig struct {
	Level   string `mapstructure:"level"`
	BoxSize int    `mapstructure:"box_size"`
	Border  int    `mapstructure:"border"`
	Version int    `mapstructure:"version"`
}

// HistoryConfig controls the per-document history CSV.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	applyDefaults(v)
	return v
}

// applyDefaults registers the default of every key.
func applyDefaults(v *viper.Viper) {
	v.SetDefault("input_dir", "./input")
	v.SetDefault("output_dir", "./output")
	v.SetDefault("input_archive_dir", "./input_archive")
	v.SetDefault("archive_inputs", false)
	v.SetDefault("run_dir_format", "{timestamp}_{round}")

	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")

	v.SetDefault("locale", "ko")
	v.SetDefault("labels_file", "")

	v.SetDefault("max_concurrency", 4)

	v.SetDefault("extraction.strategy", "dedupe")
	v.SetDefault("extraction.csv_delimiter", ",")
	v.SetDefault("extraction.csv_start_row", 1)

	v.SetDefault("payload.grammar", string(payload.GrammarURL))
	v.SetDefault("payload.url_base", payload.DefaultURLBase)

	v.SetDefault("batch.size", batch.DefaultSize)

	v.SetDefault("round.epoch", round.DefaultEpoch)
	v.SetDefault("round.cutoff_weekday", round.DefaultCutoffWeekday.String())
	v.SetDefault("round.cutoff_time", "20:00")
	v.SetDefault("round.utc_offset_hours", round.DefaultUTCOffsetHours)

	defaults := render.DefaultOptions()
	v.SetDefault("render.level", string(defaults.Level))
	v.SetDefault("render.box_size", defaults.BoxSize)
	v.SetDefault("render.border", defaults.Border)
	v.SetDefault("render.version", defaults.Version)

	v.SetDefault("history.enabled", true)
}

// Load reads the config file at path into v and returns the validated
// configuration.
//
// PARAMETERS:
//   - v: A viper instance from NewViper, with flags already bound.
//   - path: The config file. Empty means DefaultConfigFile.
//   - required: Whether a missing file is an error. An explicitly passed
//     --config must exist; the default file is optional.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or a value is invalid.
func Load(v *viper.Viper, path string, required bool) (*MainConfig, error) {
	if path == "" {
		path = DefaultConfigFile
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if required || !missing {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg MainConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks every value that has a fixed domain.
func (c *MainConfig) Validate() error {
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", c.MaxConcurrency)
	}
	if strings.TrimSpace(c.InputDir) == "" || strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("input_dir and output_dir must not be empty")
	}
	if c.ArchiveInputs && strings.TrimSpace(c.InputArchiveDir) == "" {
		return fmt.Errorf("input_archive_dir must be set when archive_inputs is on")
	}
	if _, err := ParseLocale(c.Locale); err != nil {
		return err
	}
	if _, err := c.PipelineOptions(); err != nil {
		return err
	}
	if _, err := c.RoundCalculator(); err != nil {
		return fmt.Errorf("round: %w", err)
	}
	if _, err := c.RenderOptions(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// =============================================================================
// DERIVED OPTIONS
// =============================================================================

// PipelineOptions converts the extraction, payload, and batch sections.
func (c *MainConfig) PipelineOptions() (pipeline.Options, error) {
	strategy, err := extract.ParseStrategy(c.Extraction.Strategy)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("extraction.strategy: %w", err)
	}

	grammar, err := payload.ParseGrammar(c.Payload.Grammar)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("payload.grammar: %w", err)
	}

	if c.Extraction.CSVStartRow < 0 {
		return pipeline.Options{}, fmt.Errorf("extraction.csv_start_row must not be negative, got %d", c.Extraction.CSVStartRow)
	}

	if err := validBatchSize(c.Batch.Size); err != nil {
		return pipeline.Options{}, err
	}

	return pipeline.Options{
		Extraction: extract.Settings{
			Strategy:    strategy,
			Comma:       extract.ParseDelimiter(c.Extraction.CSVDelimiter),
			CSVStartRow: c.Extraction.CSVStartRow,
		},
		Grammar:   grammar,
		URLBase:   c.Payload.URLBase,
		BatchSize: c.Batch.Size,
	}, nil
}

// RoundCalculator builds the draw schedule.
func (c *MainConfig) RoundCalculator() (*round.Calculator, error) {
	return round.FromConfig(round.Config{
		Epoch:          c.Round.Epoch,
		CutoffWeekday:  c.Round.CutoffWeekday,
		CutoffTime:     c.Round.CutoffTime,
		UTCOffsetHours: &c.Round.UTCOffsetHours,
	})
}

// RenderOptions converts the render section.
func (c *MainConfig) RenderOptions() (render.Options, error) {
	level, err := render.ParseLevel(c.Render.Level)
	if err != nil {
		return render.Options{}, err
	}
	opts := render.Options{
		Level:   level,
		BoxSize: c.Render.BoxSize,
		Border:  c.Render.Border,
		Version: c.Render.Version,
	}
	if err := opts.Validate(); err != nil {
		return render.Options{}, err
	}
	return opts, nil
}

func validBatchSize(n int) error {
	if _, err := batch.New(n); err != nil {
		return fmt.Errorf("batch.size: %w", err)
	}
	return nil
}

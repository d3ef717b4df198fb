// =============================================================================
// Stormworks Definitions Converter - Configuration Module
// =============================================================================
//
// This module loads the application configuration. Values are resolved in
// this order, later sources winning:
//
//   1. Built-in defaults (applyMainConfigDefaults)
//   2. The YAML config file (config.yaml by default, optional)
//   3. Environment variables, including those loaded from a .env file
//   4. Command line flags (applied by the cmd package)
//
// ENVIRONMENT VARIABLES:
//   SWDEFS_INPUT_DIR        -> input_dir
//   SWDEFS_OUTPUT_DIR       -> output_dir
//   SWDEFS_SCHEMA_VARIANT   -> schema_variant
//   SWDEFS_ON_PARSE_ERROR   -> on_parse_error
//   SWDEFS_LOG_LEVEL        -> log_level
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/stormworks-definitions-converter/internal/definition"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultInputDir is where Steam installs the game's definition files.
	DefaultInputDir = `C:\Program Files (x86)\Steam\steamapps\common\Stormworks\rom\data\definitions`

	// SameAsInput is the output directory answer meaning "write next to the
	// definitions".
	SameAsInput = "Definitions folder"

	// DefaultOutputFile is the name of the aggregated JSON document.
	DefaultOutputFile = "output.json"

	// DefaultXLSXFile is the name of the optional spreadsheet export.
	DefaultXLSXFile = "definitions.xlsx"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"
)

// Parse error policies.
const (
	// PolicyAbort stops the whole run on the first malformed file and
	// writes nothing.
	PolicyAbort = "abort"

	// PolicySkip logs the malformed file and continues with the rest.
	PolicySkip = "skip"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the folder holding the *.xml definition files.
	InputDir string `yaml:"input_dir"`

	// OutputDir is the folder output.json is written to. SameAsInput or an
	// empty value means the input folder.
	OutputDir string `yaml:"output_dir"`

	// OutputFile is the name of the JSON document.
	// Default: "output.json"
	OutputFile string `yaml:"output_file"`

	// =========================================================================
	// CONVERSION SETTINGS
	// =========================================================================

	// SchemaVariant selects the record field set: "minimal" or "extended".
	// Default: "extended"
	SchemaVariant string `yaml:"schema_variant"`

	// OnParseError is the malformed XML policy: "abort" or "skip".
	// Default: "abort"
	OnParseError string `yaml:"on_parse_error"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls console verbosity.
	// Valid values: "debug", "info", "warn", "error"
	LogLevel string `yaml:"log_level"`

	// LogFile, when set, also receives JSON log lines.
	LogFile string `yaml:"log_file"`

	// =========================================================================
	// EXTRA OUTPUTS
	// =========================================================================

	// XLSXExport writes a spreadsheet summary next to output.json.
	XLSXExport bool `yaml:"xlsx_export"`

	// XLSXFile is the spreadsheet name.
	// Default: "definitions.xlsx"
	XLSXFile string `yaml:"xlsx_file"`

	// WriteSummary writes a processing summary text file.
	WriteSummary bool `yaml:"write_summary"`
}

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var cfg MainConfig
	applyMainConfigDefaults(&cfg)
	return &cfg
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. A missing file is not
//     an error; defaults are used instead.
//
// RETURNS:
//   - A pointer to the MainConfig struct, with defaults and environment
//     overrides applied.
//   - An error if the file cannot be read or parsed, or fails validation.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// A missing .env is normal; existing process variables are not
	// overwritten by godotenv.
	_ = godotenv.Load()
	applyEnvOverrides(&config)

	applyMainConfigDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyEnvOverrides copies SWDEFS_* variables over file values.
func applyEnvOverrides(config *MainConfig) {
	overrides := []struct {
		env    string
		target *string
	}{
		{"SWDEFS_INPUT_DIR", &config.InputDir},
		{"SWDEFS_OUTPUT_DIR", &config.OutputDir},
		{"SWDEFS_SCHEMA_VARIANT", &config.SchemaVariant},
		{"SWDEFS_ON_PARSE_ERROR", &config.OnParseError},
		{"SWDEFS_LOG_LEVEL", &config.LogLevel},
	}

	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			*o.target = v
		}
	}
}

// applyMainConfigDefaults sets default values for any unset options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = DefaultInputDir
	}
	if config.OutputDir == "" {
		config.OutputDir = SameAsInput
	}
	if config.OutputFile == "" {
		config.OutputFile = DefaultOutputFile
	}
	if config.SchemaVariant == "" {
		config.SchemaVariant = string(definition.DefaultVariant)
	}
	if config.OnParseError == "" {
		config.OnParseError = PolicyAbort
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
	if config.XLSXFile == "" {
		config.XLSXFile = DefaultXLSXFile
	}
}

// Validate checks enumerated values. Directory existence is checked
// separately, after interactive prompts had a chance to change them.
func (c *MainConfig) Validate() error {
	if _, err := definition.ParseVariant(c.SchemaVariant); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch c.OnParseError {
	case PolicyAbort, PolicySkip:
	default:
		return fmt.Errorf("%w: on_parse_error must be %q or %q, got %q", ErrInvalidConfig, PolicyAbort, PolicySkip, c.OnParseError)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	if c.OutputFile == "" || c.OutputFile != filepath.Base(c.OutputFile) {
		return fmt.Errorf("%w: output_file must be a plain file name, got %q", ErrInvalidConfig, c.OutputFile)
	}

	return nil
}

// Variant returns the validated schema variant.
func (c *MainConfig) Variant() definition.Variant {
	v, err := definition.ParseVariant(c.SchemaVariant)
	if err != nil {
		return definition.DefaultVariant
	}
	return v
}

// ResolvedOutputDir maps the SameAsInput answer onto the input folder.
func (c *MainConfig) ResolvedOutputDir() string {
	return ResolveOutputDir(c.InputDir, c.OutputDir)
}

// ResolveOutputDir returns inputDir when answer is empty or SameAsInput.
func ResolveOutputDir(inputDir, answer string) string {
	if answer == "" || answer == SameAsInput {
		return inputDir
	}
	return answer
}

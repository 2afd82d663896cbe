package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/gerrit-ai-review/gerrit-events/internal/events"
	"github.com/gerrit-ai-review/gerrit-events/internal/logger"
)

// Config holds all configuration for gerrit-events
type Config struct {
	Output  OutputConfig
	Logging LoggingConfig
	Filter  FilterConfig
}

// OutputConfig holds output settings
type OutputConfig struct {
	Format string `validate:"oneof=json text"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level   string `validate:"omitempty,oneof=debug trace info warn warning error"`
	Verbose bool   // Forces debug level
	File    string // Optional log file path
}

// FilterConfig holds event filtering rules
type FilterConfig struct {
	Types    []string // Event types to keep (empty = all)
	Projects []string // Projects to keep (empty = all)
	Exclude  []string // Projects to drop
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the config file, then applies env vars and bound flags.
// With cfgFile empty it searches ./config.yaml and
// $HOME/.config/gerrit-events/config.yaml; a missing file there is not an
// error. An explicit cfgFile must be readable.
func Load(cfgFile string) (*Config, error) {
	initViperDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, _ := os.UserHomeDir(); home != "" {
			viper.AddConfigPath(home + "/.config/gerrit-events")
		}

		var notFound viper.ConfigFileNotFoundError
		if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return LoadConfig()
}

// LoadConfig loads configuration from current Viper state (config file,
// bound flags, env vars)
func LoadConfig() (*Config, error) {
	BindEnvVars()
	return buildConfig()
}

// BindEnvVars binds environment variable names to viper keys
func BindEnvVars() {
	viper.BindEnv("output.format", "OUTPUT_FORMAT")
	viper.BindEnv("logging.level", "LOG_LEVEL")
	viper.BindEnv("logging.verbose", "LOG_VERBOSE")
	viper.BindEnv("logging.file", "LOG_FILE")
	viper.BindEnv("filter.types", "GERRIT_EVENT_TYPES")
	viper.BindEnv("filter.projects", "GERRIT_PROJECTS")
	viper.BindEnv("filter.exclude", "GERRIT_EXCLUDE_PROJECTS")
}

// initViperDefaults sets default values
func initViperDefaults() {
	viper.SetDefault("output.format", "json")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.verbose", false)
	viper.SetDefault("logging.file", "")
}

// buildConfig constructs a Config from current Viper state
func buildConfig() (*Config, error) {
	initViperDefaults()

	cfg := &Config{
		Output: OutputConfig{
			Format: strings.ToLower(strings.TrimSpace(viper.GetString("output.format"))),
		},
		Logging: LoggingConfig{
			Level:   strings.ToLower(strings.TrimSpace(viper.GetString("logging.level"))),
			Verbose: viper.GetBool("logging.verbose"),
			File:    viper.GetString("logging.file"),
		},
		Filter: FilterConfig{
			Types:    splitList(viper.GetStringSlice("filter.types")),
			Projects: splitList(viper.GetStringSlice("filter.projects")),
			Exclude:  splitList(viper.GetStringSlice("filter.exclude")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	key := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
	return fmt.Errorf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
}

// LogLevel returns the effective log level; Verbose forces debug
func (c *Config) LogLevel() logger.Level {
	if c.Logging.Verbose {
		return logger.LevelDebug
	}
	level, err := logger.ParseLevel(c.Logging.Level)
	if err != nil {
		return logger.LevelInfo
	}
	return level
}

// EventFilter returns the filter rules in the form the events package uses
func (c *Config) EventFilter() events.FilterConfig {
	return events.FilterConfig{
		Types:    c.Filter.Types,
		Projects: c.Filter.Projects,
		Exclude:  c.Filter.Exclude,
	}
}

// splitList flattens comma-separated entries, as env vars carry lists that way
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

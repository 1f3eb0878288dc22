package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/netscript-tools/material-optimizer/internal/logging"
)

// Configuration keys shared by flags, environment variables and config files.
const (
	KeyConfigFile  = "config"
	KeyLogLevel    = "log-level"
	KeyDevelopment = "dev"
	KeyOutput      = "output"
	KeyWorkers     = "workers"
	KeyFailFast    = "fail-fast"
	KeyMetricsFile = "metrics-file"

	// EnvPrefix prefixes every environment variable, e.g. MATOPT_LOG_LEVEL.
	EnvPrefix = "MATOPT"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Defaults.
const (
	DefaultLogLevel = "info"
	DefaultOutput   = OutputText
	DefaultWorkers  = 4
)

// Config holds the tool's runtime settings.
type Config struct {
	LogLevel    string
	Development bool
	Output      string
	Workers     int
	FailFast    bool
	MetricsFile string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Output:   DefaultOutput,
		Workers:  DefaultWorkers,
	}
}

// SetDefaults registers the defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyDevelopment, d.Development)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyFailFast, d.FailFast)
	v.SetDefault(KeyMetricsFile, d.MetricsFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from v. Flags must already be bound. When a
// config file is named, it is merged below flags and environment variables.
func Load(v *viper.Viper) (Config, error) {
	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := Config{
		LogLevel:    v.GetString(KeyLogLevel),
		Development: v.GetBool(KeyDevelopment),
		Output:      strings.ToLower(v.GetString(KeyOutput)),
		Workers:     v.GetInt(KeyWorkers),
		FailFast:    v.GetBool(KeyFailFast),
		MetricsFile: v.GetString(KeyMetricsFile),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		errs = append(errs, fmt.Errorf("output must be one of %s, %s, %s, got %q", OutputText, OutputJSON, OutputYAML, c.Output))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be >= 1, got %d", c.Workers))
	}
	return utilerrors.NewAggregate(errs)
}

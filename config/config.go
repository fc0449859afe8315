package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/mocut/costmatrix"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MOCUT"

// ErrInvalidConfig wraps loading and validation failures.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full mocut configuration.
type Config struct {
	Workers   int             `mapstructure:"workers" yaml:"workers" validate:"min=1,max=256"`
	Operation OperationConfig `mapstructure:"operation" yaml:"operation"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Store     StoreConfig     `mapstructure:"store" yaml:"store"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
}

// OperationConfig selects the window scoring operation.
type OperationConfig struct {
	// Kind is "interp" (keyframe reduction) or "dtw" (reference matching).
	Kind string `mapstructure:"kind" yaml:"kind" validate:"oneof=interp dtw"`
	// Metric applies to interp: "euclidean" or "maxabs".
	Metric string    `mapstructure:"metric" yaml:"metric" validate:"oneof=euclidean maxabs"`
	DTW    DTWConfig `mapstructure:"dtw" yaml:"dtw"`
}

// DTWConfig configures the dtw operation.
type DTWConfig struct {
	Window       int     `mapstructure:"window" yaml:"window" validate:"min=-1"`
	SlopePenalty float64 `mapstructure:"slope_penalty" yaml:"slope_penalty" validate:"min=0"`
	// Reference is an animation CSV holding the reference clip; empty means
	// the animation being scored.
	Reference       string `mapstructure:"reference" yaml:"reference"`
	ReferenceStart  int    `mapstructure:"reference_start" yaml:"reference_start" validate:"min=0"`
	ReferenceFrames int    `mapstructure:"reference_frames" yaml:"reference_frames" validate:"min=0"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir" validate:"required"`
}

type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path" validate:"required_if=Enabled true"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=console json"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr      string `mapstructure:"addr" yaml:"addr" validate:"required_if=Enabled true"`
	Namespace string `mapstructure:"namespace" yaml:"namespace" validate:"required"`
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", costmatrix.DefaultWorkers)
	v.SetDefault("operation.kind", "interp")
	v.SetDefault("operation.metric", "euclidean")
	v.SetDefault("operation.dtw.window", -1)
	v.SetDefault("operation.dtw.slope_penalty", 0.0)
	v.SetDefault("operation.dtw.reference", "")
	v.SetDefault("operation.dtw.reference_start", 0)
	v.SetDefault("operation.dtw.reference_frames", 0)
	v.SetDefault("output.dir", ".")
	v.SetDefault("store.enabled", false)
	v.SetDefault("store.path", "mocut.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("metrics.namespace", "mocut")
}

// Load merges defaults, the YAML file at path (skipped when empty) and the
// environment, then validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidConfig, path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration Load yields with no file and no
// environment overrides.
func Default() *Config {
	return &Config{
		Workers:   costmatrix.DefaultWorkers,
		Operation: OperationConfig{Kind: "interp", Metric: "euclidean", DTW: DTWConfig{Window: -1}},
		Output:    OutputConfig{Dir: "."},
		Store:     StoreConfig{Path: "mocut.db"},
		Logging:   LoggingConfig{Level: "info", Format: "console"},
		Metrics:   MetricsConfig{Addr: ":9090", Namespace: "mocut"},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints. Failures wrap ErrInvalidConfig and list
// every offending field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// YAML renders c as YAML using the same keys Load reads.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// OperationLabel names the configured operation, e.g. "interp/euclidean"
// or "dtw/w=-1,p=0".
func (c *Config) OperationLabel() string {
	if c.Operation.Kind == "dtw" {
		return fmt.Sprintf("dtw/w=%d,p=%g", c.Operation.DTW.Window, c.Operation.DTW.SlopePenalty)
	}

	return "interp/" + c.Operation.Metric
}

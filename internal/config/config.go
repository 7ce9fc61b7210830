// Package config loads eda settings from defaults, an optional YAML file,
// EDA_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "EDA"

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "eda.yaml"

// Supported report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Log configures structured logging.
type Log struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Encoding    string `mapstructure:"encoding" yaml:"encoding"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// Config holds every eda setting.
type Config struct {
	Delimiter     string   `mapstructure:"delimiter" yaml:"delimiter"`
	MissingTokens []string `mapstructure:"missing_tokens" yaml:"missing_tokens"`

	Target      string  `mapstructure:"target" yaml:"target"`
	Threshold   float64 `mapstructure:"threshold" yaml:"threshold"`
	LabelColumn string  `mapstructure:"label_column" yaml:"label_column"`
	HeadRows    int     `mapstructure:"head_rows" yaml:"head_rows"`
	Bins        int     `mapstructure:"bins" yaml:"bins"`

	Format    string `mapstructure:"format" yaml:"format"`
	Output    string `mapstructure:"output" yaml:"output"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	Charts    bool   `mapstructure:"charts" yaml:"charts"`

	Log Log `mapstructure:"log" yaml:"log"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Delimiter:     ";",
		MissingTokens: []string{"NA", "N/A", "NaN", "nan", "null", "NULL"},
		Target:        "G3",
		Threshold:     10,
		LabelColumn:   "pass_fail",
		HeadRows:      5,
		Bins:          20,
		Format:        FormatText,
		OutputDir:     ".",
		Charts:        true,
		Log: Log{
			Level:    "warn",
			Encoding: "console",
		},
	}
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"delimiter":    "delimiter",
	"target":       "target",
	"threshold":    "threshold",
	"label-column": "label_column",
	"head":         "head_rows",
	"bins":         "bins",
	"format":       "format",
	"output":       "output",
	"output-dir":   "output_dir",
	"log-level":    "log.level",
	"log-format":   "log.encoding",
}

// Load resolves the configuration. Precedence: flags > env > config file >
// defaults. An explicit cfgFile must exist; otherwise DefaultFile in the
// working directory is read when present. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("missing_tokens", d.MissingTokens)
	v.SetDefault("target", d.Target)
	v.SetDefault("threshold", d.Threshold)
	v.SetDefault("label_column", d.LabelColumn)
	v.SetDefault("head_rows", d.HeadRows)
	v.SetDefault("bins", d.Bins)
	v.SetDefault("format", d.Format)
	v.SetDefault("output", d.Output)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("charts", d.Charts)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.encoding", d.Log.Encoding)
	v.SetDefault("log.development", d.Log.Development)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(DefaultFile, filepath.Ext(DefaultFile)))
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Format != FormatText && c.Format != FormatJSON:
		return fmt.Errorf("config: format must be %q or %q, got %q", FormatText, FormatJSON, c.Format)
	case math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0):
		return fmt.Errorf("config: threshold must be finite")
	case c.Bins <= 0:
		return fmt.Errorf("config: bins must be positive, got %d", c.Bins)
	case c.HeadRows < 0:
		return fmt.Errorf("config: head_rows must not be negative, got %d", c.HeadRows)
	case c.Target == "":
		return fmt.Errorf("config: target must be set")
	case c.LabelColumn == "":
		return fmt.Errorf("config: label_column must be set")
	}
	return nil
}

// Save writes c to path as YAML, creating the parent directory if needed.
func Save(c *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

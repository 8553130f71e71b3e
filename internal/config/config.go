// Package config loads and validates the toolkit's configuration from a
// YAML file, environment variables (GLASSWING_ prefix) and defaults.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the root configuration for the glasswing CLI.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Probe   ProbeConfig   `mapstructure:"probe" yaml:"probe"`
	Migrate MigrateConfig `mapstructure:"migrate" yaml:"migrate"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// BrowserConfig configures the CDP-backed harness environment.
type BrowserConfig struct {
	Headless        bool          `mapstructure:"headless" yaml:"headless"`
	ExecPath        string        `mapstructure:"exec_path" yaml:"exec_path"`
	IgnoreTLSErrors bool          `mapstructure:"ignore_tls_errors" yaml:"ignore_tls_errors"`
	NavTimeout      time.Duration `mapstructure:"nav_timeout" yaml:"nav_timeout"`
	// StabilizeBudget bounds a single ForceStabilize call.
	StabilizeBudget time.Duration `mapstructure:"stabilize_budget" yaml:"stabilize_budget"`
}

// ProbeConfig configures the probe command.
type ProbeConfig struct {
	// Widgets restricts probing to the named widget kinds; empty means all.
	Widgets []string `mapstructure:"widgets" yaml:"widgets"`
	Output  string   `mapstructure:"output" yaml:"output"`
}

// MigrateConfig configures the migrate command.
type MigrateConfig struct {
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`
	// Workers caps the number of files rewritten concurrently.
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// SetDefaults registers every default value on the viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "glasswing")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)

	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.nav_timeout", 30*time.Second)
	v.SetDefault("browser.stabilize_budget", 10*time.Second)

	v.SetDefault("probe.output", "-")

	v.SetDefault("migrate.dry_run", false)
	v.SetDefault("migrate.workers", 4)
}

// Load reads configuration from the given file (or the default lookup
// path when empty), layered under GLASSWING_* environment variables.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		expanded, err := homedir.Expand(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("expanding config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".glasswing"))
		}
		v.SetConfigName("glasswing")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("GLASSWING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file is fine; defaults and env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the toolkit cannot run with.
func (c *Config) Validate() error {
	if c.Browser.NavTimeout <= 0 {
		return fmt.Errorf("browser.nav_timeout must be positive, got %v", c.Browser.NavTimeout)
	}
	if c.Browser.StabilizeBudget <= 0 {
		return fmt.Errorf("browser.stabilize_budget must be positive, got %v", c.Browser.StabilizeBudget)
	}
	if c.Migrate.Workers <= 0 {
		return fmt.Errorf("migrate.workers must be positive, got %d", c.Migrate.Workers)
	}
	switch c.Logger.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mini-infragpt/infragpt/pkg/aws/identity"
	"github.com/mini-infragpt/infragpt/pkg/infra/generator"
	"github.com/mini-infragpt/infragpt/pkg/readiness"
	"github.com/spf13/viper"
)

type LoadOptions struct {
	// ConfigFile is an explicit config file. When empty, infragpt.{yaml,json,toml} is searched
	// for in the working directory and missing files are not an error.
	ConfigFile string
	// EnvFile is loaded into the process environment before reading variables. Existing
	// variables win. Defaults to .env.
	EnvFile string
}

// Load resolves the configuration. Later sources override earlier ones:
// defaults, config file, .env, environment.
func Load(options LoadOptions) (*Config, error) {
	envFile := options.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// the status server also honors the plain ENVIRONMENT variable.
	if err := v.BindEnv("server.environment", EnvPrefix+"_SERVER_ENVIRONMENT", "ENVIRONMENT"); err != nil {
		return nil, err
	}

	if options.ConfigFile != "" {
		v.SetConfigFile(options.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", options.ConfigFile, err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Readiness.Settle = readiness.DefaultSettle
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", generator.DefaultOutputDir)
	v.SetDefault("terraform.path", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.identity_source", identity.SourceCli)
	v.SetDefault("secrets.database_password_secret_id", "")
	v.SetDefault("readiness.probe", readiness.ProbeTcp)
	v.SetDefault("readiness.port", 22)
	v.SetDefault("readiness.interval", readiness.DefaultInterval)
	v.SetDefault("readiness.timeout", readiness.DefaultTimeout)
	v.SetDefault("readiness.settle", readiness.DefaultSettle)
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.environment", "production")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
}

// applyDefaults fills values that were explicitly set to empty.
// Readiness.Settle is left alone: zero turns the settle wait off.
func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = generator.DefaultOutputDir
	}
	if cfg.Aws.IdentitySource == "" {
		cfg.Aws.IdentitySource = identity.SourceCli
	}
	if cfg.Readiness.Probe == "" {
		cfg.Readiness.Probe = readiness.ProbeTcp
	}
	if cfg.Readiness.Port == 0 {
		cfg.Readiness.Port = 22
	}
	if cfg.Readiness.Interval == 0 {
		cfg.Readiness.Interval = readiness.DefaultInterval
	}
	if cfg.Readiness.Timeout == 0 {
		cfg.Readiness.Timeout = readiness.DefaultTimeout
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5000"
	}
	if cfg.Server.Environment == "" {
		cfg.Server.Environment = "production"
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Server.LogFormat == "" {
		cfg.Server.LogFormat = "json"
	}
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Aws.IdentitySource {
	case identity.SourceCli, identity.SourceSdk:
	default:
		errs = append(errs, fmt.Errorf("aws.identity_source must be %q or %q, got %q",
			identity.SourceCli, identity.SourceSdk, c.Aws.IdentitySource))
	}

	switch c.Readiness.Probe {
	case readiness.ProbeTcp, readiness.ProbePing:
	default:
		errs = append(errs, fmt.Errorf("readiness.probe must be %q or %q, got %q",
			readiness.ProbeTcp, readiness.ProbePing, c.Readiness.Probe))
	}

	if c.Readiness.Port < 1 || c.Readiness.Port > 65535 {
		errs = append(errs, fmt.Errorf("readiness.port %d is out of range", c.Readiness.Port))
	}

	for name, d := range map[string]time.Duration{
		"readiness.interval": c.Readiness.Interval,
		"readiness.timeout":  c.Readiness.Timeout,
		"readiness.settle":   c.Readiness.Settle,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
	}

	if c.Terraform.Path != "" {
		if _, err := os.Stat(c.Terraform.Path); err != nil {
			errs = append(errs, fmt.Errorf("terraform.path: %w", err))
		}
	}

	return errors.Join(errs...)
}

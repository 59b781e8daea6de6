// Package config loads the infragpt settings from defaults, an optional config file,
// a .env file and INFRAGPT_* environment variables.
package config

import (
	"time"
)

const (
	EnvPrefix      = "INFRAGPT"
	ConfigName     = "infragpt"
	DefaultEnvFile = ".env"
)

type Config struct {
	// OutputDir is where main.tf is written and where terraform runs.
	OutputDir string          `mapstructure:"output_dir"`
	Terraform TerraformConfig `mapstructure:"terraform"`
	Aws       AwsConfig       `mapstructure:"aws"`
	Secrets   SecretsConfig   `mapstructure:"secrets"`
	Readiness ReadinessConfig `mapstructure:"readiness"`
	Server    ServerConfig    `mapstructure:"server"`
}

type TerraformConfig struct {
	// Path to the terraform binary. Empty means look it up on PATH.
	Path string `mapstructure:"path"`
}

type AwsConfig struct {
	Profile string `mapstructure:"profile"`
	Region  string `mapstructure:"region"`
	// IdentitySource is "cli" (aws sts get-caller-identity) or "sdk".
	IdentitySource string `mapstructure:"identity_source"`
}

type SecretsConfig struct {
	// DatabasePasswordSecretId names an AWS Secrets Manager secret holding the RDS password.
	DatabasePasswordSecretId string `mapstructure:"database_password_secret_id"`
}

type ReadinessConfig struct {
	Probe    string        `mapstructure:"probe"`
	Port     int           `mapstructure:"port"`
	Interval time.Duration `mapstructure:"interval"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Settle   time.Duration `mapstructure:"settle"`
}

type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/benbjohnson/clock"
	"github.com/mattn/go-isatty"
	"github.com/mini-infragpt/infragpt/internal"
	"github.com/mini-infragpt/infragpt/pkg/aws/awsconfig"
	"github.com/mini-infragpt/infragpt/pkg/aws/identity"
	"github.com/mini-infragpt/infragpt/pkg/config"
	"github.com/mini-infragpt/infragpt/pkg/exec"
	"github.com/mini-infragpt/infragpt/pkg/infra/generator"
	"github.com/mini-infragpt/infragpt/pkg/infra/provisioning"
	"github.com/mini-infragpt/infragpt/pkg/infraspec"
	"github.com/mini-infragpt/infragpt/pkg/input"
	"github.com/mini-infragpt/infragpt/pkg/logging"
	"github.com/mini-infragpt/infragpt/pkg/output"
	"github.com/mini-infragpt/infragpt/pkg/readiness"
	"github.com/mini-infragpt/infragpt/pkg/secrets"
	"github.com/mini-infragpt/infragpt/pkg/tools/awscli"
	"github.com/mini-infragpt/infragpt/pkg/tools/terraform"
	"go.uber.org/zap"
)

// RootOptions overrides the process streams and collaborators, mainly for tests.
type RootOptions struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// IsTerminal overrides TTY detection on stdin/stdout.
	IsTerminal *bool
	Console    input.Console
	// CommandRunner replaces the OS command runner used for terraform, aws and ping.
	CommandRunner exec.CommandRunner
}

// container builds the collaborators of a command once global flags and configuration are known.
type container struct {
	options RootOptions
	global  *internal.GlobalCommandOptions

	config  *config.Config
	log     *zap.Logger
	console input.Console
	runner  exec.CommandRunner
}

func newContainer(options *RootOptions, global *internal.GlobalCommandOptions) *container {
	if options == nil {
		options = &RootOptions{}
	}

	resolved := *options
	if resolved.Stdin == nil {
		resolved.Stdin = os.Stdin
	}
	if resolved.Stdout == nil {
		resolved.Stdout = output.NewStdout()
	}
	if resolved.Stderr == nil {
		resolved.Stderr = output.NewStderr()
	}

	return &container{
		options: resolved,
		global:  global,
	}
}

// init runs before every command, after flags are parsed.
func (c *container) init() error {
	c.log = logging.ForCli(c.global.EnableDebugLogging, c.options.Stderr)

	cfg, err := config.Load(config.LoadOptions{ConfigFile: c.global.ConfigFile})
	if err != nil {
		return err
	}
	c.config = cfg
	c.log.Debug("configuration loaded", zap.Any("config", cfg))

	c.console = c.options.Console
	if c.console == nil {
		c.console = input.NewConsole(c.global.NoPrompt, c.isTerminal(), c.options.Stdout, c.options.Stdin)
	}

	c.runner = c.options.CommandRunner
	if c.runner == nil {
		c.runner = exec.NewCommandRunner(&exec.RunnerOptions{
			Stdin:  c.options.Stdin,
			Stdout: c.options.Stdout,
			Stderr: c.options.Stderr,
			Logger: c.log,
		})
	}

	return nil
}

func (c *container) isTerminal() bool {
	if c.options.IsTerminal != nil {
		return *c.options.IsTerminal
	}
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func (c *container) awsConfig(ctx context.Context, region string) (aws.Config, error) {
	if c.config.Aws.Region != "" {
		region = c.config.Aws.Region
	}
	if region == "" {
		region = infraspec.DefaultRegion
	}

	return awsconfig.Load(ctx, region, c.config.Aws.Profile)
}

func (c *container) secretProvider(ctx context.Context, region string) (secrets.Provider, error) {
	chain := secrets.Chain{secrets.NewEnvProvider()}

	if secretId := c.config.Secrets.DatabasePasswordSecretId; secretId != "" {
		awsCfg, err := c.awsConfig(ctx, region)
		if err != nil {
			return nil, err
		}
		chain = append(chain, secrets.NewSecretsManagerProviderFromConfig(
			awsCfg,
			map[string]string{secrets.DatabasePassword: secretId},
			c.log,
		))
	}

	return append(chain, secrets.NewPlaceholderProvider(c.log)), nil
}

func (c *container) generator(ctx context.Context, region string) (*generator.Generator, error) {
	provider, err := c.secretProvider(ctx, region)
	if err != nil {
		return nil, err
	}
	return generator.NewGenerator(provider, c.log), nil
}

// terraform runs against the same named profile as the credential check.
func (c *container) terraform() terraform.TerraformCli {
	cli := terraform.NewTerraformCli(c.runner, c.config.Terraform.Path)
	if profile := c.config.Aws.Profile; profile != "" {
		cli.SetEnv([]string{"AWS_PROFILE=" + profile})
	}
	return cli
}

func (c *container) awsCli() awscli.AwsCli {
	return awscli.NewAwsCli(c.runner, c.config.Aws.Profile)
}

func (c *container) identityChecker(ctx context.Context) (identity.Checker, error) {
	switch c.config.Aws.IdentitySource {
	case identity.SourceSdk:
		awsCfg, err := c.awsConfig(ctx, "")
		if err != nil {
			return nil, err
		}
		return identity.NewSdkCheckerFromConfig(awsCfg), nil
	case identity.SourceCli:
		return identity.NewCliChecker(c.awsCli()), nil
	default:
		return nil, fmt.Errorf("unknown identity source %q", c.config.Aws.IdentitySource)
	}
}

func (c *container) waiter() (provisioning.Waiter, error) {
	prober, err := readiness.NewProber(c.config.Readiness.Probe, c.config.Readiness.Port, c.runner)
	if err != nil {
		return nil, err
	}

	return readiness.NewWaiter(prober, readiness.Options{
		Interval: c.config.Readiness.Interval,
		Timeout:  c.config.Readiness.Timeout,
		Settle:   c.config.Readiness.Settle,
	}, clock.New(), c.log), nil
}

func (c *container) workflow(ctx context.Context, options provisioning.Options) (*provisioning.Workflow, error) {
	checker, err := c.identityChecker(ctx)
	if err != nil {
		return nil, err
	}

	waiter, err := c.waiter()
	if err != nil {
		return nil, err
	}

	return provisioning.NewWorkflow(c.terraform(), checker, c.console, waiter, c.log, options), nil
}

// outputDir prefers the command flag over the configured directory.
func (c *container) outputDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return c.config.OutputDir
}

// Package awscli wraps the AWS command line interface.
package awscli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mini-infragpt/infragpt/pkg/exec"
	"github.com/mini-infragpt/infragpt/pkg/tools"
)

type AwsCli interface {
	tools.ExternalTool
	GetCallerIdentity(ctx context.Context) (CallerIdentity, error)
}

// CallerIdentity is the response of `aws sts get-caller-identity`.
type CallerIdentity struct {
	UserId  string `json:"UserId"`
	Account string `json:"Account"`
	Arn     string `json:"Arn"`
}

type awsCli struct {
	commandRunner exec.CommandRunner
	profile       string
	lookPath      func(name string) (bool, error)
}

// NewAwsCli creates an AwsCli. A non-empty profile is passed to every call as --profile.
func NewAwsCli(commandRunner exec.CommandRunner, profile string) AwsCli {
	return &awsCli{
		commandRunner: commandRunner,
		profile:       profile,
		lookPath:      tools.ToolInPath,
	}
}

func (cli *awsCli) Name() string {
	return "AWS CLI"
}

func (cli *awsCli) InstallUrl() string {
	return "https://docs.aws.amazon.com/cli/latest/userguide/getting-started-install.html"
}

func (cli *awsCli) CheckInstalled(ctx context.Context) (bool, error) {
	return cli.lookPath("aws")
}

func (cli *awsCli) GetCallerIdentity(ctx context.Context) (CallerIdentity, error) {
	res, err := cli.commandRunner.Run(ctx, cli.newRunArgs("sts", "get-caller-identity", "--output", "json"))
	if err != nil {
		return CallerIdentity{}, fmt.Errorf("failed running aws sts get-caller-identity: %s (%w)", res.Stderr, err)
	}

	var identity CallerIdentity
	if err := json.Unmarshal([]byte(res.Stdout), &identity); err != nil {
		return CallerIdentity{}, fmt.Errorf("parsing caller identity: %w", err)
	}

	return identity, nil
}

func (cli *awsCli) newRunArgs(args ...string) exec.RunArgs {
	runArgs := exec.NewRunArgs("aws", args...)
	if cli.profile != "" {
		runArgs = runArgs.AppendParams("--profile", cli.profile)
	}
	return runArgs
}

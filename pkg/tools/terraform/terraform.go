package terraform

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/mini-infragpt/infragpt/pkg/exec"
	"github.com/mini-infragpt/infragpt/pkg/tools"
)

const defaultBinary = "terraform"

type TerraformCli interface {
	tools.ExternalTool
	SetEnv(envVars []string)
	Validate(ctx context.Context, modulePath string) (string, error)
	Init(ctx context.Context, modulePath string, additionalArgs ...string) (string, error)
	Plan(ctx context.Context, modulePath string, planFilePath string, additionalArgs ...string) (string, error)
	Apply(ctx context.Context, modulePath string, additionalArgs ...string) (string, error)
	// Output returns a single output value as raw text.
	Output(ctx context.Context, modulePath string, name string) (string, error)
	// Outputs returns every output of the module state.
	Outputs(ctx context.Context, modulePath string) (map[string]OutputValue, error)
	Destroy(ctx context.Context, modulePath string, additionalArgs ...string) (string, error)
}

// OutputValue is a single entry of `terraform output -json`.
type OutputValue struct {
	Sensitive bool            `json:"sensitive"`
	Type      json.RawMessage `json:"type"`
	Value     any             `json:"value"`
}

// String renders scalar values the way `terraform output -raw` does.
func (o OutputValue) String() string {
	switch v := o.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

type terraformCli struct {
	commandRunner exec.CommandRunner
	binary        string
	env           []string
	lookPath      func(name string) (bool, error)
}

// NewTerraformCli creates a TerraformCli running binary, or "terraform" from PATH when binary is empty.
func NewTerraformCli(commandRunner exec.CommandRunner, binary string) TerraformCli {
	if binary == "" {
		binary = defaultBinary
	}

	return &terraformCli{
		commandRunner: commandRunner,
		binary:        binary,
		lookPath:      tools.ToolInPath,
	}
}

func (cli *terraformCli) Name() string {
	return "Terraform CLI"
}

func (cli *terraformCli) InstallUrl() string {
	return "https://developer.hashicorp.com/terraform/install"
}

func (cli *terraformCli) versionInfo() tools.VersionInfo {
	return tools.VersionInfo{
		MinimumVersion: semver.Version{
			Major: 1,
			Minor: 0,
			Patch: 0},
		UpdateCommand: "Download newer version from https://developer.hashicorp.com/terraform/install",
	}
}

func (cli *terraformCli) SetEnv(env []string) {
	cli.env = env
}

func (cli *terraformCli) CheckInstalled(ctx context.Context) (bool, error) {
	found, err := cli.lookPath(cli.binary)
	if !found {
		return false, err
	}
	tfVer, err := cli.unmarshalCliVersion(ctx, "terraform_version")
	if err != nil {
		return false, fmt.Errorf("checking %s version: %w", cli.Name(), err)
	}
	tfSemver, err := semver.Parse(tfVer)
	if err != nil {
		return false, fmt.Errorf("converting to semver version fails: %w", err)
	}
	updateDetail := cli.versionInfo()
	if tfSemver.LT(updateDetail.MinimumVersion) {
		return false, &tools.ErrSemver{ToolName: cli.Name(), VersionInfo: updateDetail}
	}
	return true, nil
}

func (cli *terraformCli) newRunArgs(args ...string) exec.RunArgs {
	return exec.NewRunArgs(cli.binary, args...).WithEnv(cli.env)
}

func (cli *terraformCli) runCommand(ctx context.Context, args ...string) (exec.RunResult, error) {
	return cli.commandRunner.Run(ctx, cli.newRunArgs(args...))
}

func (cli *terraformCli) runInteractive(ctx context.Context, args ...string) (exec.RunResult, error) {
	return cli.commandRunner.Run(ctx, cli.newRunArgs(args...).WithInteractive(true))
}

func (cli *terraformCli) unmarshalCliVersion(ctx context.Context, component string) (string, error) {
	res, err := cli.runCommand(ctx, "version", "-json")
	if err != nil {
		return "", err
	}
	var tfVerMap map[string]any
	if err := json.Unmarshal([]byte(res.Stdout), &tfVerMap); err != nil {
		return "", err
	}
	version, ok := tfVerMap[component].(string)
	if !ok {
		return "", fmt.Errorf("reading %s component '%s' version failed", cli.Name(), component)
	}
	return version, nil
}

func chdir(modulePath string) string {
	return fmt.Sprintf("-chdir=%s", modulePath)
}

func (cli *terraformCli) Validate(ctx context.Context, modulePath string) (string, error) {
	cmdRes, err := cli.runCommand(ctx, chdir(modulePath), "validate")
	if err != nil {
		return "", fmt.Errorf(
			"failed running terraform validate: %s (%w)",
			cmdRes.Stderr,
			err,
		)
	}
	return cmdRes.Stdout, nil
}

func (cli *terraformCli) Init(ctx context.Context, modulePath string, additionalArgs ...string) (string, error) {
	args := []string{
		chdir(modulePath),
		"init",
		"-input=false",
	}

	args = append(args, additionalArgs...)
	cmdRes, err := cli.runInteractive(ctx, args...)
	if err != nil {
		return "", fmt.Errorf(
			"failed running terraform init: %s (%w)",
			cmdRes.Stderr,
			err,
		)
	}
	return cmdRes.Stdout, nil
}

func (cli *terraformCli) Plan(
	ctx context.Context, modulePath string, planFilePath string, additionalArgs ...string) (string, error) {
	args := []string{
		chdir(modulePath),
		"plan",
		"-input=false",
	}

	if planFilePath != "" {
		args = append(args, fmt.Sprintf("-out=%s", planFilePath))
	}

	args = append(args, additionalArgs...)
	cmdRes, err := cli.runInteractive(ctx, args...)
	if err != nil {
		return "", fmt.Errorf(
			"failed running terraform plan: %s (%w)",
			cmdRes.Stderr,
			err,
		)
	}
	return cmdRes.Stdout, nil
}

func (cli *terraformCli) Apply(ctx context.Context, modulePath string, additionalArgs ...string) (string, error) {
	args := []string{
		chdir(modulePath),
		"apply",
		"-input=false",
		"-auto-approve",
	}

	args = append(args, additionalArgs...)
	cmdRes, err := cli.runInteractive(ctx, args...)
	if err != nil {
		return "", fmt.Errorf(
			"failed running terraform apply: %s (%w)",
			cmdRes.Stderr,
			err,
		)
	}
	return cmdRes.Stdout, nil
}

func (cli *terraformCli) Output(ctx context.Context, modulePath string, name string) (string, error) {
	cmdRes, err := cli.runCommand(ctx, chdir(modulePath), "output", "-raw", name)
	if err != nil {
		return "", fmt.Errorf(
			"failed running terraform output: %s (%w)",
			cmdRes.Stderr,
			err,
		)
	}
	return strings.TrimSpace(cmdRes.Stdout), nil
}

func (cli *terraformCli) Outputs(ctx context.Context, modulePath string) (map[string]OutputValue, error) {
	cmdRes, err := cli.runCommand(ctx, chdir(modulePath), "output", "-json")
	if err != nil {
		return nil, fmt.Errorf(
			"failed running terraform output: %s (%w)",
			cmdRes.Stderr,
			err,
		)
	}

	outputs := map[string]OutputValue{}
	if strings.TrimSpace(cmdRes.Stdout) == "" {
		return outputs, nil
	}

	if err := json.Unmarshal([]byte(cmdRes.Stdout), &outputs); err != nil {
		return nil, fmt.Errorf("parsing terraform output: %w", err)
	}
	return outputs, nil
}

func (cli *terraformCli) Destroy(ctx context.Context, modulePath string, additionalArgs ...string) (string, error) {
	args := []string{
		chdir(modulePath),
		"destroy",
		"-input=false",
		"-auto-approve",
	}

	args = append(args, additionalArgs...)
	cmdRes, err := cli.runInteractive(ctx, args...)
	if err != nil {
		return "", fmt.Errorf(
			"failed running terraform destroy: %s (%w)",
			cmdRes.Stderr,
			err,
		)
	}
	return cmdRes.Stdout, nil
}

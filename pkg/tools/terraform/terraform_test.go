package terraform

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mini-infragpt/infragpt/pkg/exec"
	"github.com/mini-infragpt/infragpt/pkg/tools"
	"github.com/mini-infragpt/infragpt/test/mocks/mockexec"
	"github.com/stretchr/testify/require"
)

func Test_WithEnv(t *testing.T) {
	ran := false
	expectedEnvVars := []string{"TF_IN_AUTOMATION=1"}

	runner := mockexec.NewMockCommandRunner()
	runner.When(func(args exec.RunArgs, command string) bool {
		return args.Cmd == "terraform"
	}).RespondFn(func(args exec.RunArgs) (exec.RunResult, error) {
		ran = true
		require.Equal(t, expectedEnvVars, args.Env)
		require.True(t, args.Interactive)

		return exec.NewRunResult(0, "", ""), nil
	})

	cli := NewTerraformCli(runner, "")
	cli.SetEnv(expectedEnvVars)

	_, err := cli.Init(context.Background(), "generated-terraform")

	require.NoError(t, err)
	require.True(t, ran)
}

func Test_CommandLines(t *testing.T) {
	ctx := context.Background()
	runner := mockexec.NewMockCommandRunner()
	runner.When(func(args exec.RunArgs, command string) bool {
		return true
	}).Respond(exec.NewRunResult(0, "", ""))

	cli := NewTerraformCli(runner, "/opt/bin/terraform")

	_, err := cli.Init(ctx, "out")
	require.NoError(t, err)
	_, err = cli.Plan(ctx, "out", "tfplan")
	require.NoError(t, err)
	_, err = cli.Apply(ctx, "out", "tfplan")
	require.NoError(t, err)
	_, err = cli.Destroy(ctx, "out")
	require.NoError(t, err)
	_, err = cli.Validate(ctx, "out")
	require.NoError(t, err)

	var lines []string
	for _, call := range runner.Calls() {
		require.Equal(t, "/opt/bin/terraform", call.Cmd)
		lines = append(lines, strings.Join(call.Args, " "))
	}

	require.Equal(t, []string{
		"-chdir=out init -input=false",
		"-chdir=out plan -input=false -out=tfplan",
		"-chdir=out apply -input=false -auto-approve tfplan",
		"-chdir=out destroy -input=false -auto-approve",
		"-chdir=out validate",
	}, lines)
}

func Test_Outputs(t *testing.T) {
	runner := mockexec.NewMockCommandRunner()
	runner.When(func(args exec.RunArgs, command string) bool {
		return strings.Contains(command, "output -json")
	}).Respond(exec.NewRunResult(0, `{
		"instance_id": {"sensitive": false, "type": "string", "value": "i-0abc"},
		"instance_public_ip": {"sensitive": false, "type": "string", "value": "54.1.2.3"},
		"ports": {"sensitive": false, "type": ["list", "number"], "value": [80, 22]}
	}`, ""))
	runner.When(func(args exec.RunArgs, command string) bool {
		return strings.Contains(command, "output -raw application_url")
	}).Respond(exec.NewRunResult(0, "http://54.1.2.3\n", ""))

	cli := NewTerraformCli(runner, "")

	outputs, err := cli.Outputs(context.Background(), "out")
	require.NoError(t, err)
	require.Len(t, outputs, 3)
	require.Equal(t, "i-0abc", outputs["instance_id"].String())
	require.Equal(t, "54.1.2.3", outputs["instance_public_ip"].String())
	require.Equal(t, "[80,22]", outputs["ports"].String())

	url, err := cli.Output(context.Background(), "out", "application_url")
	require.NoError(t, err)
	require.Equal(t, "http://54.1.2.3", url)
}

func Test_OutputsEmptyState(t *testing.T) {
	runner := mockexec.NewMockCommandRunner()
	runner.When(func(args exec.RunArgs, command string) bool {
		return true
	}).Respond(exec.NewRunResult(0, "{}\n", ""))

	outputs, err := NewTerraformCli(runner, "").Outputs(context.Background(), "out")
	require.NoError(t, err)
	require.Empty(t, outputs)
}

func Test_CommandFailure(t *testing.T) {
	runner := mockexec.NewMockCommandRunner()
	exitErr := exec.NewExitError("terraform", 1, "", "Error: No configuration files", true)
	runner.When(func(args exec.RunArgs, command string) bool {
		return true
	}).RespondFn(func(args exec.RunArgs) (exec.RunResult, error) {
		return exec.NewRunResult(1, "", "Error: No configuration files"), exitErr
	})

	_, err := NewTerraformCli(runner, "").Validate(context.Background(), "out")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed running terraform validate: Error: No configuration files")

	var target *exec.ExitError
	require.True(t, errors.As(err, &target))
	require.Equal(t, 1, target.ExitCode)
}

func Test_CheckInstalled(t *testing.T) {
	newCli := func(found bool, version string) *terraformCli {
		runner := mockexec.NewMockCommandRunner()
		runner.When(func(args exec.RunArgs, command string) bool {
			return strings.HasSuffix(command, "version -json")
		}).Respond(exec.NewRunResult(0, version, ""))

		cli := NewTerraformCli(runner, "").(*terraformCli)
		cli.lookPath = func(string) (bool, error) { return found, nil }
		return cli
	}

	t.Run("NotOnPath", func(t *testing.T) {
		ok, err := newCli(false, "").CheckInstalled(context.Background())
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("Supported", func(t *testing.T) {
		ok, err := newCli(true, `{"terraform_version":"1.6.2","platform":"linux_amd64"}`).
			CheckInstalled(context.Background())
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("TooOld", func(t *testing.T) {
		ok, err := newCli(true, `{"terraform_version":"0.15.5"}`).CheckInstalled(context.Background())
		require.False(t, ok)

		var semverErr *tools.ErrSemver
		require.True(t, errors.As(err, &semverErr))
		require.Equal(t, "Terraform CLI", semverErr.ToolName)
	})
}

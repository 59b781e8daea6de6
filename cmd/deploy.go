package cmd

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/mini-infragpt/infragpt/cmd/actions"
	"github.com/mini-infragpt/infragpt/pkg/infra/provisioning"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type deployFlags struct {
	outputDir     string
	yes           bool
	skipReadiness bool
}

func (f *deployFlags) Bind(local *pflag.FlagSet) {
	bindOutputDir(local, &f.outputDir)
	local.BoolVarP(&f.yes, "yes", "y", false, "Do not ask for confirmation before applying.")
	local.BoolVar(&f.skipReadiness, "no-wait", false, "Do not wait for the instance to become reachable.")
}

func newDeployCmd(c *container) *cobra.Command {
	flags := &deployFlags{}
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Provision the generated configuration on AWS.",
		Long: heredoc.Doc(`
			Checks AWS credentials, then runs terraform init, plan and apply against the
			generated configuration and waits for the new instance to become reachable.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd.Context(), c, &deployAction{container: c, flags: flags})
		},
	}
	flags.Bind(cmd.Flags())
	return cmd
}

type deployAction struct {
	container *container
	flags     *deployFlags
}

func (a *deployAction) Run(ctx context.Context) (*actions.ActionResult, error) {
	workflow, err := a.container.workflow(ctx, provisioning.Options{
		AutoApprove:   a.flags.yes,
		SkipReadiness: a.flags.skipReadiness,
	})
	if err != nil {
		return nil, err
	}

	result, err := workflow.Deploy(ctx, a.container.outputDir(a.flags.outputDir))
	if err != nil {
		return nil, err
	}

	return deployResult(ctx, a.container.console, result), nil
}

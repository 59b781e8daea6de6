package cmd

import (
	"context"

	"github.com/mini-infragpt/infragpt/cmd/actions"
	"github.com/mini-infragpt/infragpt/pkg/infra/provisioning"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type destroyFlags struct {
	outputDir string
	yes       bool
}

func (f *destroyFlags) Bind(local *pflag.FlagSet) {
	bindOutputDir(local, &f.outputDir)
	local.BoolVarP(&f.yes, "yes", "y", false, "Do not ask for confirmation before destroying.")
}

func newDestroyCmd(c *container) *cobra.Command {
	flags := &destroyFlags{}
	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete every resource created by deploy.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd.Context(), c, &destroyAction{container: c, flags: flags})
		},
	}
	flags.Bind(cmd.Flags())
	return cmd
}

type destroyAction struct {
	container *container
	flags     *destroyFlags
}

func (a *destroyAction) Run(ctx context.Context) (*actions.ActionResult, error) {
	workflow := provisioning.NewWorkflow(
		a.container.terraform(),
		nil,
		a.container.console,
		nil,
		a.container.log,
		provisioning.Options{AutoApprove: a.flags.yes},
	)

	if err := workflow.Destroy(ctx, a.container.outputDir(a.flags.outputDir)); err != nil {
		return nil, err
	}

	return &actions.ActionResult{
		Message: &actions.ResultMessage{Header: "Infrastructure destroyed."},
	}, nil
}

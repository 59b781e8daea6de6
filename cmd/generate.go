package cmd

import (
	"context"
	"fmt"

	"github.com/mini-infragpt/infragpt/cmd/actions"
	"github.com/mini-infragpt/infragpt/pkg/infraspec"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type generateFlags struct {
	outputDir string
	specFile  string
}

func (f *generateFlags) Bind(local *pflag.FlagSet) {
	bindOutputDir(local, &f.outputDir)
	local.StringVar(&f.specFile, "spec-file", "",
		"Generate from a JSON or YAML spec record instead of a request.")
}

func newGenerateCmd(c *container) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate [request...]",
		Short: "Generate the Terraform configuration for a request or a spec file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.specFile != "" && len(args) > 0 {
				return fmt.Errorf("a request cannot be combined with --spec-file")
			}
			return runAction(cmd.Context(), c, &generateAction{
				container: c,
				flags:     flags,
				args:      args,
			})
		},
	}
	flags.Bind(cmd.Flags())
	return cmd
}

type generateAction struct {
	container *container
	flags     *generateFlags
	args      []string
}

func (a *generateAction) Run(ctx context.Context) (*actions.ActionResult, error) {
	var spec infraspec.InfrastructureSpec

	if a.flags.specFile != "" {
		loaded, err := infraspec.LoadFile(a.flags.specFile)
		if err != nil {
			return nil, err
		}
		spec = loaded
	} else {
		request, err := readRequest(ctx, a.container.console, a.args)
		if err != nil {
			return nil, err
		}
		spec = infraspec.Extract(request)
	}

	path, err := generate(ctx, a.container, spec, a.container.outputDir(a.flags.outputDir))
	if err != nil {
		return nil, err
	}

	return &actions.ActionResult{
		Message: &actions.ResultMessage{
			Header:   "Terraform configuration generated.",
			FollowUp: nextSteps(path),
		},
	}, nil
}

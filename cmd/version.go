package cmd

import (
	"context"
	"fmt"

	"github.com/mini-infragpt/infragpt/cmd/actions"
	"github.com/mini-infragpt/infragpt/internal"
	"github.com/mini-infragpt/infragpt/pkg/output"
	"github.com/spf13/cobra"
)

func newVersionCmd(c *container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of infragpt.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.GetCommandFormatter(cmd)
			if err != nil {
				return err
			}
			return runAction(cmd.Context(), c, &versionAction{container: c, formatter: formatter})
		},
	}

	output.AddOutputParam(cmd, []output.Format{output.JsonFormat, output.NoneFormat}, output.NoneFormat)
	return cmd
}

type versionAction struct {
	container *container
	formatter output.Formatter
}

func (v *versionAction) Run(ctx context.Context) (*actions.ActionResult, error) {
	writer := v.container.console.Writer()

	switch v.formatter.Kind() {
	case output.NoneFormat:
		fmt.Fprintf(writer, "infragpt version %s\n", internal.Version)
	case output.JsonFormat:
		if err := v.formatter.Format(internal.VersionInfo(), writer, nil); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

package cmd

import (
	"context"

	"github.com/mini-infragpt/infragpt/cmd/actions"
	"github.com/mini-infragpt/infragpt/pkg/infraspec"
	"github.com/mini-infragpt/infragpt/pkg/output"
	"github.com/spf13/cobra"
)

func newParseCmd(c *container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [request...]",
		Short: "Print the infrastructure spec extracted from a request.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.GetCommandFormatter(cmd)
			if err != nil {
				return err
			}
			return runAction(cmd.Context(), c, &parseAction{
				container: c,
				formatter: formatter,
				args:      args,
			})
		},
	}

	output.AddOutputParam(cmd,
		[]output.Format{output.JsonFormat, output.YamlFormat, output.TableFormat}, output.JsonFormat)
	return cmd
}

type parseAction struct {
	container *container
	formatter output.Formatter
	args      []string
}

var specColumns = []output.Column{
	{Heading: "Instance type", ValueTemplate: "{{.InstanceType}}"},
	{Heading: "Database", ValueTemplate: `{{if .DatabaseNeeded}}{{.DatabaseType}}{{else}}none{{end}}`},
	{Heading: "Region", ValueTemplate: "{{.Region}}"},
	{Heading: "App type", ValueTemplate: "{{.AppType}}"},
}

func (a *parseAction) Run(ctx context.Context) (*actions.ActionResult, error) {
	request, err := readRequest(ctx, a.container.console, a.args)
	if err != nil {
		return nil, err
	}

	spec := infraspec.Extract(request)

	var opts any
	if a.formatter.Kind() == output.TableFormat {
		opts = output.TableFormatterOptions{Columns: specColumns}
	}

	return nil, a.formatter.Format(spec, a.container.console.Writer(), opts)
}

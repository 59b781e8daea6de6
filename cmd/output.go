package cmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/mini-infragpt/infragpt/cmd/actions"
	"github.com/mini-infragpt/infragpt/pkg/infra/provisioning"
	"github.com/mini-infragpt/infragpt/pkg/output"
	"github.com/spf13/cobra"
)

func newOutputCmd(c *container) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "output [name]",
		Short: "Show the outputs of the deployed configuration.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := output.GetCommandFormatter(cmd)
			if err != nil {
				return err
			}

			action := &outputAction{
				container: c,
				formatter: formatter,
				outputDir: outputDir,
			}
			if len(args) == 1 {
				action.name = args[0]
			}
			return runAction(cmd.Context(), c, action)
		},
	}

	bindOutputDir(cmd.Flags(), &outputDir)
	output.AddOutputParam(cmd, []output.Format{output.JsonFormat, output.TableFormat}, output.TableFormat)
	return cmd
}

type outputAction struct {
	container *container
	formatter output.Formatter
	outputDir string
	name      string
}

type outputRow struct {
	Name      string
	Value     string
	Sensitive bool
}

var outputColumns = []output.Column{
	{Heading: "Name", ValueTemplate: "{{.Name}}"},
	{Heading: "Value", ValueTemplate: `{{if .Sensitive}}<sensitive>{{else}}{{.Value}}{{end}}`},
}

func (a *outputAction) Run(ctx context.Context) (*actions.ActionResult, error) {
	workflow := provisioning.NewWorkflow(a.container.terraform(), nil, a.container.console, nil, a.container.log,
		provisioning.Options{})
	dir := a.container.outputDir(a.outputDir)
	writer := a.container.console.Writer()

	if a.name != "" {
		value, err := workflow.Output(ctx, dir, a.name)
		if err != nil {
			return nil, err
		}
		_, err = fmt.Fprintln(writer, value)
		return nil, err
	}

	outputs, err := workflow.Outputs(ctx, dir)
	if err != nil {
		return nil, err
	}

	if a.formatter.Kind() == output.JsonFormat {
		return nil, a.formatter.Format(outputs, writer, nil)
	}

	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	slices.Sort(names)

	rows := make([]outputRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, outputRow{
			Name:      name,
			Value:     outputs[name].String(),
			Sensitive: outputs[name].Sensitive,
		})
	}

	return nil, a.formatter.Format(rows, writer, output.TableFormatterOptions{Columns: outputColumns})
}

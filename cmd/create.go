package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/mini-infragpt/infragpt/cmd/actions"
	"github.com/mini-infragpt/infragpt/internal"
	"github.com/mini-infragpt/infragpt/pkg/infra/generator"
	"github.com/mini-infragpt/infragpt/pkg/infra/provisioning"
	"github.com/mini-infragpt/infragpt/pkg/infraspec"
	"github.com/mini-infragpt/infragpt/pkg/input"
	"github.com/mini-infragpt/infragpt/pkg/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const separator = "============================================================"

var requestExamples = []string{
	"I need a simple web server",
	"Create an API with PostgreSQL",
	"Web app with MySQL",
}

type createFlags struct {
	outputDir string
	deploy    bool
	yes       bool
}

func (f *createFlags) Bind(local *pflag.FlagSet) {
	bindOutputDir(local, &f.outputDir)
	local.BoolVar(&f.deploy, "deploy", false, "Provision the generated configuration right away.")
	local.BoolVarP(&f.yes, "yes", "y", false, "Do not ask for confirmation before applying.")
}

func bindOutputDir(local *pflag.FlagSet, target *string) {
	local.StringVar(target, "output-dir", "",
		fmt.Sprintf("Directory holding the generated configuration (default %q).", generator.DefaultOutputDir))
}

func newCreateCmd(c *container) *cobra.Command {
	flags := &createFlags{}
	cmd := &cobra.Command{
		Use:   "create [request...]",
		Short: "Extract a spec from a request and generate its Terraform configuration.",
		Long: heredoc.Doc(`
			Reads a plain English request from the arguments, or asks for one, extracts the
			infrastructure spec and writes main.tf into the output directory.

			With --deploy the configuration is provisioned right away.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd.Context(), c, newCreateAction(c, flags, args))
		},
	}
	flags.Bind(cmd.Flags())
	return cmd
}

type createAction struct {
	container *container
	flags     *createFlags
	args      []string
}

func newCreateAction(c *container, flags *createFlags, args []string) *createAction {
	return &createAction{
		container: c,
		flags:     flags,
		args:      args,
	}
}

func (a *createAction) Run(ctx context.Context) (*actions.ActionResult, error) {
	console := a.container.console
	printBanner(ctx, console)

	request, err := readRequest(ctx, console, a.args)
	if err != nil {
		return nil, err
	}

	console.Message(ctx, fmt.Sprintf("\nYour request: %s\n", output.WithHighLightFormat(request)))
	console.Message(ctx, separator)

	console.Message(ctx, "\nSTEP 1: Analyzing request...\n")
	spec := infraspec.Extract(request)
	printSpec(ctx, console, spec)

	console.Message(ctx, "\n"+separator)
	console.Message(ctx, "\nSTEP 2: Generating Terraform configuration...\n")

	outputDir := a.container.outputDir(a.flags.outputDir)
	path, err := generate(ctx, a.container, spec, outputDir)
	if err != nil {
		return nil, err
	}

	if !a.flags.deploy {
		return &actions.ActionResult{
			Message: &actions.ResultMessage{
				Header:   "PREPARATION COMPLETE!",
				FollowUp: nextSteps(path),
			},
		}, nil
	}

	console.Message(ctx, "\n"+separator)
	console.Message(ctx, "\nSTEP 3: Deploying to AWS...\n")

	workflow, err := a.container.workflow(ctx, provisioning.Options{AutoApprove: a.flags.yes})
	if err != nil {
		return nil, err
	}

	result, err := workflow.Deploy(ctx, outputDir)
	if err != nil {
		return nil, err
	}

	return deployResult(ctx, console, result), nil
}

func printBanner(ctx context.Context, console input.Console) {
	console.Message(ctx, separator)
	console.Message(ctx, output.WithBold("   Mini InfraGPT - AI-Powered Infrastructure Automation"))
	console.Message(ctx, separator+"\n")
}

// readRequest joins args into a request, or prompts for one when there are none.
func readRequest(ctx context.Context, console input.Console, args []string) (string, error) {
	request := strings.Join(args, " ")

	if len(args) == 0 {
		console.Message(ctx, "What infrastructure do you need?\n")
		console.Message(ctx, "Examples:")
		for _, example := range requestExamples {
			console.Message(ctx, output.WithGrayFormat("   * %s", example))
		}
		console.Message(ctx, "")

		answer, err := console.Prompt(ctx, input.ConsoleOptions{
			Message: "Your request:",
			Help:    "Describe the servers and databases you need in plain English.",
		})
		if err != nil {
			return "", fmt.Errorf("prompting for request: %w", err)
		}
		request = answer
	}

	request = strings.TrimSpace(request)
	if request == "" {
		return "", &internal.ErrorWithSuggestion{
			Err:        internal.ErrEmptyRequest,
			Suggestion: fmt.Sprintf("Example: %s", output.WithBackticks(`infragpt "`+requestExamples[1]+`"`)),
		}
	}

	return request, nil
}

func printSpec(ctx context.Context, console input.Console, spec infraspec.InfrastructureSpec) {
	console.Message(ctx, "Extracted specifications:")
	console.Message(ctx, fmt.Sprintf("   Instance type:   %s", spec.InstanceType))
	if spec.DatabaseNeeded {
		console.Message(ctx, fmt.Sprintf("   Database:        %s", spec.DatabaseType))
	} else {
		console.Message(ctx, "   Database:        none")
	}
	console.Message(ctx, fmt.Sprintf("   Region:          %s", spec.Region))
	console.Message(ctx, fmt.Sprintf("   Application:     %s", spec.AppType))
}

func generate(
	ctx context.Context, c *container, spec infraspec.InfrastructureSpec, outputDir string) (string, error) {
	gen, err := c.generator(ctx, spec.Region)
	if err != nil {
		return "", err
	}

	path, err := gen.Generate(ctx, spec, outputDir)
	if err != nil {
		return "", err
	}

	c.console.Message(ctx, fmt.Sprintf("Terraform configuration written to %s", output.WithHighLightFormat(path)))
	c.console.Message(ctx, "\nResources to be created:")
	for _, line := range generator.Summary(spec) {
		c.console.Message(ctx, "   - "+line)
	}

	return path, nil
}

func nextSteps(path string) string {
	return heredoc.Docf(`
		Next steps:

		1. Review the configuration:
		   cat %s

		2. Deploy to AWS:
		   infragpt deploy

		3. Clean up:
		   infragpt destroy`, path)
}

func deployResult(
	ctx context.Context, console input.Console, result *provisioning.DeployResult) *actions.ActionResult {
	console.Message(ctx, "\nDeployment information:")
	if result.InstanceId != "" {
		console.Message(ctx, fmt.Sprintf("   Instance ID:  %s", result.InstanceId))
	}
	if result.InstancePublicIp != "" {
		console.Message(ctx, fmt.Sprintf("   Public IP:    %s", result.InstancePublicIp))
	}
	if result.ApplicationUrl != "" {
		console.Message(ctx, fmt.Sprintf("   URL:          %s", output.WithLinkFormat(result.ApplicationUrl)))
	}

	followUp := fmt.Sprintf("Remove every resource with %s", output.WithBackticks("infragpt destroy"))
	if result.InstancePublicIp != "" {
		followUp = fmt.Sprintf("Connect with %s\n%s",
			output.WithBackticks("ssh ec2-user@"+result.InstancePublicIp), followUp)
	}

	return &actions.ActionResult{
		Message: &actions.ResultMessage{
			Header:   "DEPLOYMENT COMPLETE!",
			FollowUp: followUp,
		},
	}
}

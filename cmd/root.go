// Package cmd contains the infragpt command tree.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/mini-infragpt/infragpt/cmd/actions"
	"github.com/mini-infragpt/infragpt/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func bindGlobalFlags(flags *pflag.FlagSet, global *internal.GlobalCommandOptions) {
	flags.StringVarP(&global.Cwd, "cwd", "C", "", "Sets the current working directory.")
	flags.BoolVar(&global.EnableDebugLogging, "debug", false, "Enables debugging and diagnostics logging.")
	flags.BoolVar(
		&global.NoPrompt,
		"no-prompt",
		false,
		"Accepts the default value instead of prompting, or it fails if there is no default.")
	flags.StringVar(&global.ConfigFile, "config", "", "Path to an infragpt configuration file.")
}

// NewRootCmd creates the infragpt command tree. options may be nil.
func NewRootCmd(options *RootOptions) *cobra.Command {
	global := &internal.GlobalCommandOptions{}
	c := newContainer(options, global)

	var originalCwd string

	rootFlags := &createFlags{}

	root := &cobra.Command{
		Use:   "infragpt [request...]",
		Short: "Turn a plain English request into AWS infrastructure.",
		Long: heredoc.Doc(`
			infragpt turns a plain English description of the infrastructure you need into a
			Terraform configuration for AWS, and can provision it for you.

			Running infragpt without a command is the same as running 'infragpt create'.`),
		Example: heredoc.Doc(`
			infragpt "I need a simple web server"
			infragpt create --deploy "Create an API with PostgreSQL"
			infragpt parse -o yaml "Web app with MySQL"`),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if global.Cwd != "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("getting current directory: %w", err)
				}
				originalCwd = wd

				if err := os.Chdir(global.Cwd); err != nil {
					return fmt.Errorf("failed to change directory to %s: %w", global.Cwd, err)
				}
			}

			return c.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if originalCwd != "" {
				if err := os.Chdir(originalCwd); err != nil {
					return fmt.Errorf("restoring directory %s: %w", originalCwd, err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd.Context(), c, newCreateAction(c, rootFlags, args))
		},
	}

	root.SetIn(c.options.Stdin)
	root.SetOut(c.options.Stdout)
	root.SetErr(c.options.Stderr)

	bindGlobalFlags(root.PersistentFlags(), global)
	rootFlags.Bind(root.Flags())

	root.AddCommand(
		newCreateCmd(c),
		newParseCmd(c),
		newGenerateCmd(c),
		newDeployCmd(c),
		newDestroyCmd(c),
		newOutputCmd(c),
		newServeCmd(c),
		newVersionCmd(c),
	)

	return root
}

func runAction(ctx context.Context, c *container, action actions.Action) error {
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := action.Run(ctx)
	actions.ShowActionResults(ctx, c.console, result, err)
	return err
}

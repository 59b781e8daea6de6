package provisioning

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mini-infragpt/infragpt/internal"
	"github.com/mini-infragpt/infragpt/pkg/aws/identity"
	"github.com/mini-infragpt/infragpt/pkg/infra/generator"
	"github.com/mini-infragpt/infragpt/pkg/input"
	"github.com/mini-infragpt/infragpt/pkg/output"
	"github.com/mini-infragpt/infragpt/pkg/readiness"
	"github.com/mini-infragpt/infragpt/pkg/tools"
	"github.com/mini-infragpt/infragpt/pkg/tools/terraform"
	"go.uber.org/zap"
)

type Workflow struct {
	terraform terraform.TerraformCli
	identity  identity.Checker
	console   input.Console
	waiter    Waiter
	log       *zap.Logger
	options   Options
}

// NewWorkflow wires the collaborators. waiter may be nil, which disables readiness polling.
func NewWorkflow(
	terraformCli terraform.TerraformCli,
	identityChecker identity.Checker,
	console input.Console,
	waiter Waiter,
	log *zap.Logger,
	options Options,
) *Workflow {
	if log == nil {
		log = zap.NewNop()
	}

	return &Workflow{
		terraform: terraformCli,
		identity:  identityChecker,
		console:   console,
		waiter:    waiter,
		log:       log,
		options:   options,
	}
}

// Deploy provisions the configuration in modulePath.
func (w *Workflow) Deploy(ctx context.Context, modulePath string) (*DeployResult, error) {
	if err := w.ensureTerraform(ctx); err != nil {
		return nil, err
	}
	if err := ensureConfiguration(modulePath); err != nil {
		return nil, err
	}

	w.console.Message(ctx, "Checking AWS credentials...")
	id, err := w.checkCredentials(ctx)
	if err != nil {
		return nil, err
	}
	w.console.Message(ctx, fmt.Sprintf("AWS credentials configured for account: %s", output.WithHighLightFormat(id.Account)))

	w.console.Message(ctx, "Initializing terraform...")
	if _, err := w.terraform.Init(ctx, modulePath); err != nil {
		return nil, err
	}

	w.console.Message(ctx, "Validating configuration...")
	if _, err := w.terraform.Validate(ctx, modulePath); err != nil {
		return nil, err
	}

	w.console.Message(ctx, "Creating execution plan...")
	if _, err := w.terraform.Plan(ctx, modulePath, PlanFile); err != nil {
		return nil, err
	}

	if err := w.confirm(ctx, "Apply this plan? Provisioning takes 3-5 minutes."); err != nil {
		return nil, err
	}

	w.console.Message(ctx, "Applying infrastructure changes...")
	if _, err := w.terraform.Apply(ctx, modulePath, PlanFile); err != nil {
		return nil, err
	}
	w.log.Info("infrastructure deployed", zap.String("module", modulePath), zap.String("account", id.Account))

	w.console.Message(ctx, "Retrieving deployment information...")
	outputs, err := w.terraform.Outputs(ctx, modulePath)
	if err != nil {
		return nil, err
	}

	result := &DeployResult{
		Identity:         id,
		Outputs:          outputs,
		InstanceId:       outputs[OutputInstanceId].String(),
		InstancePublicIp: outputs[OutputInstancePublicIp].String(),
		ApplicationUrl:   outputs[OutputApplicationUrl].String(),
	}

	if result.InstancePublicIp == "" || w.waiter == nil || w.options.SkipReadiness {
		return result, nil
	}

	w.console.Message(ctx, fmt.Sprintf("Waiting for instance %s to be ready...", result.InstancePublicIp))
	readinessResult, err := w.waiter.Wait(ctx, result.InstancePublicIp)
	result.Readiness = &readinessResult
	switch {
	case err == nil:
		result.Ready = true
		w.console.Message(ctx, output.WithSuccessFormat("Instance is ready."))
	case errors.Is(err, readiness.ErrTimeout):
		w.log.Warn("instance readiness timed out", zap.String("host", result.InstancePublicIp), zap.Error(err))
		w.console.Message(ctx,
			output.WithWarningFormat("Timed out waiting for the instance. It might still be starting up."))
	default:
		return result, err
	}

	return result, nil
}

// Destroy removes every resource managed by the configuration in modulePath.
func (w *Workflow) Destroy(ctx context.Context, modulePath string) error {
	if err := w.ensureTerraform(ctx); err != nil {
		return err
	}
	if err := ensureConfiguration(modulePath); err != nil {
		return err
	}

	if err := w.confirm(ctx, "This will DELETE all resources. Are you sure?"); err != nil {
		return err
	}

	w.console.Message(ctx, "Destroying infrastructure...")
	if _, err := w.terraform.Destroy(ctx, modulePath); err != nil {
		return err
	}
	w.log.Info("infrastructure destroyed", zap.String("module", modulePath))

	return nil
}

// Output returns a single output of the applied configuration as raw text.
func (w *Workflow) Output(ctx context.Context, modulePath string, name string) (string, error) {
	if err := w.ensureTerraform(ctx); err != nil {
		return "", err
	}
	return w.terraform.Output(ctx, modulePath, name)
}

// Outputs returns every output of the applied configuration.
func (w *Workflow) Outputs(ctx context.Context, modulePath string) (map[string]terraform.OutputValue, error) {
	if err := w.ensureTerraform(ctx); err != nil {
		return nil, err
	}
	return w.terraform.Outputs(ctx, modulePath)
}

func (w *Workflow) ensureTerraform(ctx context.Context) error {
	err := tools.EnsureInstalled(ctx, w.terraform)
	if err == nil {
		return nil
	}

	var semverErr *tools.ErrSemver
	switch {
	case errors.As(err, &semverErr):
		return &internal.ErrorWithSuggestion{
			Err:        err,
			Suggestion: semverErr.VersionInfo.UpdateCommand,
		}
	case errors.Is(err, tools.ErrToolNotInstalled):
		return &internal.ErrorWithSuggestion{
			Err:        err,
			Suggestion: fmt.Sprintf("Install terraform from %s", output.WithLinkFormat(w.terraform.InstallUrl())),
		}
	default:
		return err
	}
}

func (w *Workflow) checkCredentials(ctx context.Context) (identity.Identity, error) {
	id, err := w.identity.CallerIdentity(ctx)
	if err == nil {
		return id, nil
	}

	if errors.Is(err, tools.ErrToolNotInstalled) {
		return identity.Identity{}, &internal.ErrorWithSuggestion{
			Err:        err,
			Suggestion: fmt.Sprintf("Install the AWS CLI from %s", output.WithLinkFormat("https://aws.amazon.com/cli/")),
		}
	}

	return identity.Identity{}, &internal.ErrorWithSuggestion{
		Err:        fmt.Errorf("%w: %w", ErrCredentials, err),
		Suggestion: fmt.Sprintf("Configure credentials with %s", output.WithBackticks("aws configure")),
	}
}

func (w *Workflow) confirm(ctx context.Context, message string) error {
	if w.options.AutoApprove {
		return nil
	}

	ok, err := w.console.Confirm(ctx, input.ConsoleOptions{
		Message:      message,
		DefaultValue: false,
	})
	if err != nil {
		return fmt.Errorf("prompting for confirmation: %w", err)
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}

func ensureConfiguration(modulePath string) error {
	configPath := filepath.Join(modulePath, generator.FileName)
	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &internal.ErrorWithSuggestion{
				Err:        fmt.Errorf("%w in %s", ErrNoConfiguration, modulePath),
				Suggestion: fmt.Sprintf("Run %s first", output.WithBackticks("infragpt generate")),
			}
		}
		return err
	}
	return nil
}

// Package provisioning drives terraform against a generated configuration directory:
// credential check, init, plan, confirmation, apply, outputs and readiness polling.
package provisioning

import (
	"context"
	"errors"

	"github.com/mini-infragpt/infragpt/pkg/aws/identity"
	"github.com/mini-infragpt/infragpt/pkg/readiness"
	"github.com/mini-infragpt/infragpt/pkg/tools/terraform"
)

const (
	// PlanFile is written by plan and consumed by apply, relative to the module directory.
	PlanFile = "tfplan"

	OutputInstanceId       = "instance_id"
	OutputInstancePublicIp = "instance_public_ip"
	OutputApplicationUrl   = "application_url"
)

var (
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("operation cancelled")
	// ErrNoConfiguration is returned when the module directory has no main.tf.
	ErrNoConfiguration = errors.New("no terraform configuration found")
	// ErrCredentials is returned when the AWS caller identity cannot be resolved.
	ErrCredentials = errors.New("AWS credentials not configured")
)

// Waiter polls a host until it is reachable. Implemented by readiness.Waiter.
type Waiter interface {
	Wait(ctx context.Context, host string) (readiness.Result, error)
}

type Options struct {
	// AutoApprove skips the apply and destroy confirmations.
	AutoApprove bool
	// SkipReadiness disables waiting for the instance after apply.
	SkipReadiness bool
}

type DeployResult struct {
	Identity         identity.Identity
	Outputs          map[string]terraform.OutputValue
	InstanceId       string
	InstancePublicIp string
	ApplicationUrl   string
	// Readiness is nil when no wait happened.
	Readiness *readiness.Result
	// Ready is false when the wait timed out.
	Ready bool
}

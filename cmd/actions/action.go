// Package actions contains the application logic that handles infragpt CLI commands.
package actions

import (
	"context"

	"github.com/mini-infragpt/infragpt/pkg/input"
	"github.com/mini-infragpt/infragpt/pkg/output"
)

// ActionFunc is an Action implementation for regular functions.
type ActionFunc func(context.Context) (*ActionResult, error)

// Run implements the Action interface
func (a ActionFunc) Run(ctx context.Context) (*ActionResult, error) {
	return a(ctx)
}

// Define a message as the completion of an Action.
type ResultMessage struct {
	Header   string
	FollowUp string
}

// Define the Action outputs.
type ActionResult struct {
	Message *ResultMessage
}

// Action is the representation of the application logic of a CLI command.
type Action interface {
	// Run executes the CLI command.
	Run(ctx context.Context) (*ActionResult, error)
}

// ShowActionResults prints the completion message of a successful action. Errors are left to the caller.
func ShowActionResults(ctx context.Context, console input.Console, actionResult *ActionResult, err error) {
	if err != nil || actionResult == nil || actionResult.Message == nil {
		return
	}

	if actionResult.Message.Header != "" {
		console.Message(ctx, "\n"+output.WithSuccessFormat(actionResult.Message.Header))
	}
	if actionResult.Message.FollowUp != "" {
		console.Message(ctx, actionResult.Message.FollowUp)
	}
}

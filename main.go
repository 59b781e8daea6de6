package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-colorable"
	"github.com/mini-infragpt/infragpt/cmd"
	"github.com/mini-infragpt/infragpt/internal"
	"github.com/mini-infragpt/infragpt/pkg/infra/provisioning"
	"github.com/mini-infragpt/infragpt/pkg/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	restoreColorMode := colorable.EnableColorsStdout(nil)
	defer restoreColorMode()

	cmdErr := cmd.NewRootCmd(nil).ExecuteContext(ctx)
	code := reportError(output.NewStderr(), cmdErr)

	restoreColorMode()
	stop()
	os.Exit(code)
}

// reportError prints err for the user and returns the process exit code.
func reportError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	// Ctrl-C at a prompt surfaces as terminal.InterruptErr, and during a command as context.Canceled.
	if errors.Is(err, provisioning.ErrCancelled) ||
		errors.Is(err, terminal.InterruptErr) ||
		errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, output.WithWarningFormat("Cancelled."))
		return 0
	}

	fmt.Fprintln(w, output.WithErrorFormat("ERROR: %s", err.Error()))

	var suggestionErr *internal.ErrorWithSuggestion
	if errors.As(err, &suggestionErr) && suggestionErr.Suggestion != "" {
		fmt.Fprintln(w, suggestionErr.Suggestion)
	}

	return 1
}

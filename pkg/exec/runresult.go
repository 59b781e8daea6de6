package exec

import (
	"fmt"
)

// RunResult is the result of running a command.
type RunResult struct {
	// The exit code of the command.
	ExitCode int
	// The stdout output captured from running the command.
	Stdout string
	// The stderr output captured from running the command.
	Stderr string
}

func NewRunResult(code int, stdout, stderr string) RunResult {
	return RunResult{
		ExitCode: code,
		Stdout:   stdout,
		Stderr:   stderr,
	}
}

// ExitError is the error returned when a command unsuccessfully exits.
type ExitError struct {
	// The path or name of the command being invoked.
	Cmd string
	// The exit code of the command.
	ExitCode int

	stdOut string
	stdErr string

	outputAvailable bool
}

func NewExitError(cmd string, exitCode int, stdOut string, stdErr string, outputAvailable bool) *ExitError {
	return &ExitError{
		Cmd:             cmd,
		ExitCode:        exitCode,
		stdOut:          stdOut,
		stdErr:          stdErr,
		outputAvailable: outputAvailable,
	}
}

// Error includes the stdout and stderr output of the command, if it was captured.
func (e *ExitError) Error() string {
	prefix := fmt.Sprintf("%s exited with code %d", e.Cmd, e.ExitCode)
	if !e.outputAvailable {
		return prefix
	}

	return fmt.Sprintf("%s, stdout: %s, stderr: %s", prefix, e.stdOut, e.stdErr)
}

// StderrOutput returns the stderr output captured from the command.
func (e *ExitError) StderrOutput() string {
	return e.stdErr
}

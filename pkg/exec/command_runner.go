package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// CommandRunner exposes the contract for executing external tools for the specified RunArgs
type CommandRunner interface {
	Run(ctx context.Context, args RunArgs) (RunResult, error)
}

type RunnerOptions struct {
	// Stdin is the input stream. If nil, os.Stdin is used.
	Stdin io.Reader
	// Stdout is the output stream. If nil, os.Stdout is used.
	Stdout io.Writer
	// Stderr is the error stream. If nil, os.Stderr is used.
	Stderr io.Writer
	// Logger receives a debug entry for every command. If nil, nothing is logged.
	Logger *zap.Logger
}

// Creates a new default instance of the CommandRunner.
// Passing nil will use the default values for RunnerOptions.
func NewCommandRunner(opt *RunnerOptions) CommandRunner {
	if opt == nil {
		opt = &RunnerOptions{}
	}

	runner := &commandRunner{
		stdin:  opt.Stdin,
		stdout: opt.Stdout,
		stderr: opt.Stderr,
		log:    opt.Logger,
	}

	if runner.stdin == nil {
		runner.stdin = os.Stdin
	}

	if runner.stdout == nil {
		runner.stdout = os.Stdout
	}

	if runner.stderr == nil {
		runner.stderr = os.Stderr
	}

	if runner.log == nil {
		runner.log = zap.NewNop()
	}

	return runner
}

// commandRunner executes actual commands on the underlying OS
type commandRunner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *zap.Logger
}

// Run runs the command specified in 'args'.
//
// Returns a RunResult that is the result of the command.
//   - If interactive is true, standard output/error is not captured in the returned result.
//     Instead, it is redirected to the runner's output/error streams.
//   - If the underlying command exits unsuccessfully, *ExitError is returned. Other possible errors would likely be I/O
//     errors or context cancellation.
func (r *commandRunner) Run(ctx context.Context, args RunArgs) (RunResult, error) {
	cmd := exec.CommandContext(ctx, args.Cmd, args.Args...)
	cmd.Env = appendEnv(args.Env)

	var stdout, stderr bytes.Buffer

	if args.Interactive {
		cmd.Stdin = r.stdin
		cmd.Stdout = r.stdout
		cmd.Stderr = r.stderr
	} else {
		cmd.Stdin = new(bytes.Buffer)
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	commandLine := strings.Join(args.Args, " ")

	err := cmd.Run()

	result := RunResult{ExitCode: -1}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}
	if !args.Interactive {
		result.Stdout = stdout.String()
		result.Stderr = stderr.String()
	}

	r.log.Debug("run exec",
		zap.String("cmd", args.Cmd),
		zap.String("args", RedactSensitiveData(commandLine)),
		zap.Int("exitCode", result.ExitCode),
		zap.String("stdout", RedactSensitiveData(strings.TrimSuffix(result.Stdout, "\n"))),
		zap.String("stderr", RedactSensitiveData(strings.TrimSuffix(result.Stderr, "\n"))),
	)

	// A child killed because ctx ended reports the cancellation, not its exit status.
	if err != nil && ctx.Err() != nil {
		return result, fmt.Errorf("running %s: %w", args.Cmd, ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, NewExitError(args.Cmd, exitErr.ExitCode(), result.Stdout, result.Stderr, !args.Interactive)
	}

	return result, err
}

func appendEnv(env []string) []string {
	if len(env) > 0 {
		return append(os.Environ(), env...)
	}

	return nil
}

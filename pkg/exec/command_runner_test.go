package exec

import (
	"bytes"
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	skipOnWindows(t)

	runner := NewCommandRunner(nil)
	res, err := runner.Run(context.Background(), NewRunArgs("sh", "-c", "echo out; echo err 1>&2"))
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode)
	require.Equal(t, "out\n", res.Stdout)
	require.Equal(t, "err\n", res.Stderr)
}

func TestRunExitError(t *testing.T) {
	skipOnWindows(t)

	runner := NewCommandRunner(nil)
	res, err := runner.Run(context.Background(), NewRunArgs("sh", "-c", "echo nope 1>&2; exit 3"))
	require.Error(t, err)
	require.Equal(t, 3, res.ExitCode)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 3, exitErr.ExitCode)
	require.Contains(t, exitErr.Error(), "exited with code 3")
	require.Equal(t, "nope\n", exitErr.StderrOutput())
}

func TestRunInteractiveUsesRunnerStreams(t *testing.T) {
	skipOnWindows(t)

	var stdout bytes.Buffer
	runner := NewCommandRunner(&RunnerOptions{
		Stdin:  strings.NewReader("from stdin\n"),
		Stdout: &stdout,
	})

	res, err := runner.Run(context.Background(), NewRunArgs("sh", "-c", "cat").WithInteractive(true))
	require.NoError(t, err)
	require.Empty(t, res.Stdout)
	require.Equal(t, "from stdin\n", stdout.String())
}

func TestRunEnv(t *testing.T) {
	skipOnWindows(t)

	t.Setenv("INHERITED", "kept")
	runner := NewCommandRunner(nil)
	res, err := runner.Run(context.Background(),
		NewRunArgs("sh", "-c", `echo "$GREETING $INHERITED"`).WithEnv([]string{"GREETING=hello"}))
	require.NoError(t, err)
	require.Equal(t, "hello kept", strings.TrimSpace(res.Stdout))
}

func TestRunCancelled(t *testing.T) {
	skipOnWindows(t)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	runner := NewCommandRunner(nil)
	_, err := runner.Run(ctx, NewRunArgs("sh", "-c", "exec sleep 5"))
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))

	var exitErr *ExitError
	require.False(t, errors.As(err, &exitErr))
}

func TestRunLogsRedactedCommand(t *testing.T) {
	skipOnWindows(t)

	core, logs := observer.New(zap.DebugLevel)
	runner := NewCommandRunner(&RunnerOptions{Logger: zap.New(core)})

	_, err := runner.Run(context.Background(),
		NewRunArgs("sh", "-c", "true", "--password", "hunter2"))
	require.NoError(t, err)

	entries := logs.FilterMessage("run exec").All()
	require.Len(t, entries, 1)
	require.Equal(t, "sh", entries[0].ContextMap()["cmd"])
	require.NotContains(t, entries[0].ContextMap()["args"], "hunter2")
}

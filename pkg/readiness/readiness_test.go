package readiness

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mini-infragpt/infragpt/pkg/exec"
	"github.com/mini-infragpt/infragpt/test/mocks/mockexec"
	"github.com/stretchr/testify/require"
)

type countingProber struct {
	failures int32
	calls    atomic.Int32
}

func (p *countingProber) Probe(ctx context.Context, host string) error {
	if p.calls.Add(1) <= p.failures {
		return errors.New("no route to host")
	}
	return nil
}

func fastOptions() Options {
	return Options{Interval: time.Millisecond, Timeout: time.Second}
}

func TestWaitSucceedsAfterRetries(t *testing.T) {
	prober := &countingProber{failures: 3}
	waiter := NewWaiter(prober, fastOptions(), nil, nil)

	result, err := waiter.Wait(context.Background(), "54.1.2.3")
	require.NoError(t, err)
	require.Equal(t, 4, result.Attempts)
	require.Equal(t, "54.1.2.3", result.Host)
}

func TestWaitTimesOut(t *testing.T) {
	prober := &countingProber{failures: 1 << 30}
	waiter := NewWaiter(prober, Options{Interval: 5 * time.Millisecond, Timeout: 30 * time.Millisecond}, nil, nil)

	result, err := waiter.Wait(context.Background(), "10.0.0.1")
	require.ErrorIs(t, err, ErrTimeout)
	require.Greater(t, result.Attempts, 1)
	require.Less(t, result.Elapsed, time.Second)
}

func TestWaitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prober := &countingProber{failures: 1 << 30}
	waiter := NewWaiter(prober, Options{Interval: time.Hour, Timeout: time.Hour}, nil, nil)

	_, err := waiter.Wait(ctx, "10.0.0.1")
	require.ErrorIs(t, err, context.Canceled)
}

func TestWaitSettles(t *testing.T) {
	opts := fastOptions()
	opts.Settle = 20 * time.Millisecond
	waiter := NewWaiter(&countingProber{}, opts, nil, nil)

	result, err := waiter.Wait(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, 1, result.Attempts)
	require.GreaterOrEqual(t, result.Elapsed, 20*time.Millisecond)
}

func TestNewWaiterDefaults(t *testing.T) {
	waiter := NewWaiter(&countingProber{}, Options{}, nil, nil)
	require.Equal(t, DefaultInterval, waiter.opts.Interval)
	require.Equal(t, DefaultTimeout, waiter.opts.Timeout)
	require.Equal(t, Options{Interval: 10 * time.Second, Timeout: 300 * time.Second, Settle: 30 * time.Second},
		DefaultOptions())
}

func TestTCPProber(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	port := listener.Addr().(*net.TCPAddr).Port

	prober := &TCPProber{Port: port, Timeout: time.Second}
	require.NoError(t, prober.Probe(context.Background(), "127.0.0.1"))

	listener.Close()
	require.Error(t, prober.Probe(context.Background(), "127.0.0.1"))
}

func TestPingProber(t *testing.T) {
	runner := mockexec.NewMockCommandRunner()
	runner.When(func(args exec.RunArgs, command string) bool {
		return args.Cmd == "ping" && args.Args[len(args.Args)-1] == "54.1.2.3"
	}).Respond(exec.NewRunResult(0, "1 packets transmitted, 1 received", ""))
	runner.When(func(args exec.RunArgs, command string) bool {
		return args.Cmd == "ping"
	}).RespondFn(func(args exec.RunArgs) (exec.RunResult, error) {
		return exec.NewRunResult(1, "", "100% packet loss"), exec.NewExitError("ping", 1, "", "100% packet loss", true)
	})

	prober := NewPingProber(runner)
	require.NoError(t, prober.Probe(context.Background(), "54.1.2.3"))
	require.ErrorContains(t, prober.Probe(context.Background(), "10.9.9.9"), "100% packet loss")
}

func TestNewProber(t *testing.T) {
	prober, err := NewProber("", 22, nil)
	require.NoError(t, err)
	require.Equal(t, &TCPProber{Port: 22}, prober)

	prober, err = NewProber(ProbePing, 22, mockexec.NewMockCommandRunner())
	require.NoError(t, err)
	require.IsType(t, &PingProber{}, prober)

	_, err = NewProber("http", 22, nil)
	require.Error(t, err)
}

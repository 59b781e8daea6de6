package readiness

import (
	"context"
	"fmt"
	"net"
	"runtime"
	"strconv"
	"time"

	"github.com/mini-infragpt/infragpt/pkg/exec"
)

const (
	ProbeTcp  = "tcp"
	ProbePing = "ping"
)

// TCPProber succeeds when a TCP connection to Port can be opened.
type TCPProber struct {
	Port    int
	Timeout time.Duration
}

func (p *TCPProber) Probe(ctx context.Context, host string) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(p.Port)))
	if err != nil {
		return err
	}

	return conn.Close()
}

// PingProber sends a single ICMP echo using the system ping command.
type PingProber struct {
	commandRunner exec.CommandRunner
}

func NewPingProber(commandRunner exec.CommandRunner) *PingProber {
	return &PingProber{commandRunner: commandRunner}
}

func (p *PingProber) Probe(ctx context.Context, host string) error {
	args := []string{"-c", "1", "-W", "2", host}
	if runtime.GOOS == "windows" {
		args = []string{"-n", "1", "-w", "2000", host}
	}

	res, err := p.commandRunner.Run(ctx, exec.NewRunArgs("ping", args...))
	if err != nil {
		return fmt.Errorf("ping %s: %s (%w)", host, res.Stderr, err)
	}

	return nil
}

// NewProber returns the prober registered under kind.
func NewProber(kind string, port int, commandRunner exec.CommandRunner) (Prober, error) {
	switch kind {
	case "", ProbeTcp:
		return &TCPProber{Port: port}, nil
	case ProbePing:
		return NewPingProber(commandRunner), nil
	default:
		return nil, fmt.Errorf("unknown readiness probe %q, expected %q or %q", kind, ProbeTcp, ProbePing)
	}
}

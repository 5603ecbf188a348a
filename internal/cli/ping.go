package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/elearning/tcpopt/network"
	"github.com/elearning/tcpopt/tcpoptlib"
)

// Ping checks that endpoint accepts TCP connections. Nothing is sent:
// connection is closed right after the handshake.
type Ping struct {
	Endpoint string        `kong:"arg,optional,default='127.0.0.1:9000',help='Host:port to check.'"`
	Timeout  time.Duration `kong:"help='Connect timeout.',short='t',default='5s'"`
}

func (p *Ping) Run(cli *CLI, version string) error {
	return ping(context.Background(), p.Endpoint, p.Timeout, os.Stdout)
}

func ping(ctx context.Context, endpoint string, timeout time.Duration, stdout io.Writer) error {
	stack := network.NewStack()

	if err := stack.Startup(); err != nil {
		return fmt.Errorf("%w: %w", tcpoptlib.ErrStackInit, err)
	}

	defer stack.Cleanup() //nolint: errcheck

	dialer, err := network.NewDefaultDialer(timeout, network.Tuning{NoDelay: true})
	if err != nil {
		return fmt.Errorf("cannot build a dialer: %w", err)
	}

	started := time.Now()

	conn, err := dialer.DialContext(ctx, tcpoptlib.DefaultNetwork, endpoint)
	if err != nil {
		return fmt.Errorf("ping %s failed: %w", endpoint, err)
	}

	elapsed := time.Since(started)

	conn.Close()

	fmt.Fprintf(stdout, "%s is reachable, connect took %v\n", endpoint, elapsed.Round(time.Microsecond)) //nolint: errcheck

	return nil
}

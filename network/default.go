package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/elearning/tcpopt/tcpoptlib"
)

type tunedConn struct {
	*net.TCPConn

	options []tcpoptlib.SocketOption
}

func (t tunedConn) SocketOptions() []tcpoptlib.SocketOption {
	return t.options
}

type defaultDialer struct {
	net.Dialer

	tuning Tuning
}

func (d *defaultDialer) DialContext(ctx context.Context, network, address string) (tcpoptlib.Conn, error) {
	switch network {
	case "tcp", "tcp4", "tcp6": //nolint: goconst
	default:
		return nil, fmt.Errorf("%w: unsupported network %s", tcpoptlib.ErrSocketCreate, network)
	}

	var options []tcpoptlib.SocketOption

	// Buffer sizes go before connect: receive window scale is negotiated
	// in SYN and cannot grow later.
	dialer := d.Dialer
	dialer.Control = func(_, _ string, rawConn syscall.RawConn) error {
		options = setBufferSizes(rawConn, d.tuning)

		return nil
	}

	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, classifyDialError(err)
	}

	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		conn.Close()

		return nil, fmt.Errorf("%w: unexpected connection type %T", tcpoptlib.ErrConnect, conn)
	}

	options = append([]tcpoptlib.SocketOption{setNoDelay(tcpConn, d.tuning.NoDelay)}, options...)

	return tunedConn{
		TCPConn: tcpConn,
		options: options,
	}, nil
}

// classifyDialError separates failures of socket() from failures of
// connect(). net.Dialer reports both as *net.OpError with Op "dial".
func classifyDialError(err error) error {
	var sysErr *os.SyscallError

	if errors.As(err, &sysErr) && sysErr.Syscall == "socket" {
		return fmt.Errorf("%w: %w", tcpoptlib.ErrSocketCreate, err)
	}

	return fmt.Errorf("%w: %w", tcpoptlib.ErrConnect, err)
}

// NewDefaultDialer builds a new dialer which applies tuning to every
// socket it creates.
//
// timeout limits connect. 0 means no limit except the one OS has. TCP
// keepalive probes are disabled: a one-shot client does not need them.
func NewDefaultDialer(timeout time.Duration, tuning Tuning) (tcpoptlib.Dialer, error) {
	switch {
	case timeout < 0:
		return nil, fmt.Errorf("timeout %v should be positive number", timeout)
	case tuning.SendBufferSize < 0:
		return nil, fmt.Errorf("send buffer size %d should be positive number", tuning.SendBufferSize)
	case tuning.ReceiveBufferSize < 0:
		return nil, fmt.Errorf("receive buffer size %d should be positive number", tuning.ReceiveBufferSize)
	}

	return &defaultDialer{
		Dialer: net.Dialer{
			Timeout:   timeout,
			KeepAlive: -1,
		},
		tuning: tuning,
	}, nil
}

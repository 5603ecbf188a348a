package network

import (
	"fmt"
	"net"
	"syscall"

	"github.com/elearning/tcpopt/tcpoptlib"
)

// TuneConn applies tuning to an already established connection. It is
// used for accepted sockets where we have no chance to step in before
// connect.
func TuneConn(conn net.Conn, tuning Tuning) []tcpoptlib.SocketOption {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}

	rv := []tcpoptlib.SocketOption{setNoDelay(tcpConn, tuning.NoDelay)}

	rawConn, err := tcpConn.SyscallConn()
	if err != nil {
		return append(rv, failBufferSizes(tuning, fmt.Errorf("cannot get underlying raw connection: %w", err))...)
	}

	return append(rv, setBufferSizes(rawConn, tuning)...)
}

// setNoDelay has to be called after connect: Go runtime enables
// TCP_NODELAY on every new TCP connection, so a value set before connect
// would be overwritten.
func setNoDelay(conn *net.TCPConn, noDelay bool) tcpoptlib.SocketOption {
	opt := tcpoptlib.SocketOption{
		Name:      OptionNoDelay,
		Requested: boolToInt(noDelay),
	}

	if err := conn.SetNoDelay(noDelay); err != nil {
		opt.Err = fmt.Errorf("cannot set TCP_NODELAY: %w", err)
	} else {
		opt.Effective = opt.Requested
	}

	return opt
}

func setBufferSizes(conn syscall.RawConn, tuning Tuning) []tcpoptlib.SocketOption {
	rv := []tcpoptlib.SocketOption{}

	err := conn.Control(func(fd uintptr) {
		if tuning.SendBufferSize > 0 {
			rv = append(rv, setBufferSize(fd, OptionSendBuffer, optSendBuffer, tuning.SendBufferSize))
		}

		if tuning.ReceiveBufferSize > 0 {
			rv = append(rv, setBufferSize(fd, OptionReceiveBuffer, optReceiveBuffer, tuning.ReceiveBufferSize))
		}
	})
	if err != nil {
		return failBufferSizes(tuning, fmt.Errorf("cannot access socket: %w", err))
	}

	return rv
}

func setBufferSize(fd uintptr, name string, option, size int) tcpoptlib.SocketOption {
	opt := tcpoptlib.SocketOption{
		Name:      name,
		Requested: size,
	}

	if err := setsockoptInt(fd, option, size); err != nil {
		opt.Err = fmt.Errorf("cannot set %s: %w", name, err)

		return opt
	}

	// Kernels are free to round or double the value, so we ask back.
	if effective, err := getsockoptInt(fd, option); err == nil {
		opt.Effective = effective
	}

	return opt
}

func failBufferSizes(tuning Tuning, err error) []tcpoptlib.SocketOption {
	rv := []tcpoptlib.SocketOption{}

	if tuning.SendBufferSize > 0 {
		rv = append(rv, tcpoptlib.SocketOption{
			Name:      OptionSendBuffer,
			Requested: tuning.SendBufferSize,
			Err:       err,
		})
	}

	if tuning.ReceiveBufferSize > 0 {
		rv = append(rv, tcpoptlib.SocketOption{
			Name:      OptionReceiveBuffer,
			Requested: tuning.ReceiveBufferSize,
			Err:       err,
		})
	}

	return rv
}

func boolToInt(value bool) int {
	if value {
		return 1
	}

	return 0
}

package utils

import (
	"fmt"
	"net"

	"github.com/elearning/tcpopt/network"
	"github.com/elearning/tcpopt/tcpoptlib"
)

// Listener applies the same advisory tuning to accepted connections as
// the client does to its own socket.
type Listener struct {
	net.Listener

	tuning network.Tuning
	logger tcpoptlib.Logger
}

func (l Listener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	logger := l.logger.BindStr("remote-addr", conn.RemoteAddr().String())

	for _, opt := range network.TuneConn(conn, l.tuning) {
		if opt.Err != nil {
			logger.BindStr("option", opt.Name).WarningError("socket option was rejected", opt.Err)
		} else {
			logger.BindStr("option", opt.Name).BindInt("effective", opt.Effective).Debug("socket option was applied")
		}
	}

	return conn, nil
}

// NewListener creates an IPv4 TCP listener.
func NewListener(bindTo string, tuning network.Tuning, logger tcpoptlib.Logger) (net.Listener, error) {
	base, err := net.Listen(tcpoptlib.DefaultNetwork, bindTo)
	if err != nil {
		return nil, fmt.Errorf("cannot build a base listener: %w", err)
	}

	return Listener{
		Listener: base,
		tuning:   tuning,
		logger:   logger.Named("listener"),
	}, nil
}

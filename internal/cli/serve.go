package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/OneOfOne/xxhash"
	"github.com/elearning/tcpopt/internal/config"
	"github.com/elearning/tcpopt/internal/utils"
	"github.com/elearning/tcpopt/tcpoptlib"
)

// Serve is a peer for the client. It handles connections strictly one
// after another: read a message, optionally respond, read the echo back
// and check it.
type Serve struct {
	BindTo      string        `kong:"arg,optional,default='127.0.0.1:9000',help='Host:port to listen on.'"`
	Response    string        `kong:"help='Response to send. Empty means close right after the message.',short='r',default='Hello from server'"` //nolint: lll
	Count       uint          `kong:"help='Stop after this number of connections. 0 means never.',short='c',default='0'"`
	EchoTimeout time.Duration `kong:"help='How long to wait for the echo.',default='5s'"`
	Nagle       bool          `kong:"help='Keep Nagle algorithm enabled on accepted sockets.'"`
	Debug       bool          `kong:"help='Run in debug mode.',short='d'"`
}

// serveReport describes a single handled connection.
type serveReport struct {
	Message    []byte
	Echo       []byte
	EchoStatus string
}

func (s *Serve) Run(cli *CLI, version string) error {
	conf := &config.Config{}

	if err := conf.Debug.Set(strconv.FormatBool(s.Debug)); err != nil {
		return fmt.Errorf("incorrect debug: %w", err)
	}

	if err := conf.NoDelay.Set(strconv.FormatBool(!s.Nagle)); err != nil {
		return fmt.Errorf("incorrect nagle: %w", err)
	}

	logger := makeLogger(conf, version, os.Stderr).Named("serve")

	listener, err := utils.NewListener(s.BindTo, makeTuning(conf), logger)
	if err != nil {
		return fmt.Errorf("cannot start listener: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Fprintf(os.Stdout, "Listening on %s\n", listener.Addr()) //nolint: errcheck

	return serveConns(ctx, listener, s.opts(), logger, os.Stdout)
}

func (s *Serve) opts() serveOpts {
	return serveOpts{
		response:    []byte(s.Response),
		count:       s.Count,
		echoTimeout: s.EchoTimeout,
	}
}

// Outcomes of the echo check.
const (
	echoMatches  = "true"
	echoPartial  = "partial"
	echoMismatch = "false"
)

type serveOpts struct {
	response    []byte
	count       uint
	echoTimeout time.Duration
}

// serveConns owns listener and closes it on exit.
func serveConns(ctx context.Context,
	listener net.Listener,
	opts serveOpts,
	logger tcpoptlib.Logger,
	stdout io.Writer,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	defer listener.Close()

	for handled := uint(0); opts.count == 0 || handled < opts.count; handled++ {
		conn, err := listener.Accept()

		switch {
		case ctx.Err() != nil:
			if conn != nil {
				conn.Close()
			}

			return nil
		case errors.Is(err, net.ErrClosed):
			return nil
		case err != nil:
			return fmt.Errorf("cannot accept a connection: %w", err)
		}

		report := serveConn(conn, opts, logger.BindStr("remote-addr", conn.RemoteAddr().String()))
		if report.Message == nil {
			continue
		}

		fmt.Fprintf(stdout, "Client message: %s\n", report.Message) //nolint: errcheck

		if len(opts.response) > 0 {
			fmt.Fprintf(stdout, "Echo received: %d bytes, matches: %s\n", //nolint: errcheck
				len(report.Echo), report.EchoStatus)
		}
	}

	return nil
}

func serveConn(conn net.Conn, opts serveOpts, logger tcpoptlib.Logger) serveReport {
	defer conn.Close()

	rv := serveReport{EchoStatus: echoMismatch}
	buf := make([]byte, tcpoptlib.DefaultResponseBufferSize)

	if opts.echoTimeout > 0 {
		conn.SetDeadline(time.Now().Add(opts.echoTimeout)) //nolint: errcheck
	}

	n, err := conn.Read(buf)
	if err != nil && n == 0 {
		logger.DebugError("cannot read a message", err)

		return rv
	}

	rv.Message = append([]byte{}, buf[:n]...)

	if len(opts.response) == 0 {
		return rv
	}

	if _, err := conn.Write(opts.response); err != nil {
		logger.WarningError("cannot send a response", err)

		return rv
	}

	// Client reads at most one buffer less a byte and echoes exactly
	// that.
	expected := opts.response
	if len(expected) > tcpoptlib.DefaultResponseBufferSize-1 {
		expected = expected[:tcpoptlib.DefaultResponseBufferSize-1]
	}

	echo := make([]byte, len(expected))

	n, err = io.ReadFull(conn, echo)
	if err != nil {
		logger.DebugError("echo is incomplete", err)
	}

	rv.Echo = echo[:n]
	rv.EchoStatus = getEchoStatus(rv.Echo, expected)

	logger.
		BindInt("echo-size", n).
		BindStr("echo-checksum", strconv.FormatUint(xxhash.Checksum64(rv.Echo), 16)). //nolint: gomnd
		Debug("echo has been received")

	return rv
}

// getEchoStatus tells partial echo from a full one. A client may get the
// response in several segments and echo only the first of them, so a
// correct prefix is reported separately.
func getEchoStatus(echo, expected []byte) string {
	switch {
	case len(echo) == 0 || len(echo) > len(expected):
		return echoMismatch
	case xxhash.Checksum64(echo) != xxhash.Checksum64(expected[:len(echo)]):
		return echoMismatch
	case len(echo) < len(expected):
		return echoPartial
	}

	return echoMatches
}

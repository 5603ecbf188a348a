package tcpoptlib

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/OneOfOne/xxhash"
)

// Reasons of EventFailure.
const (
	FailureStack   = "stack"
	FailureSocket  = "socket"
	FailureConnect = "connect"
)

const sessionIDLength = 12

// Result describes what happened during a single run.
type Result struct {
	// SessionID is an identifier attached to all events and log lines of
	// the run.
	SessionID string

	// Sent is a number of message bytes accepted by the OS.
	Sent int

	// SendErr is an error of the message write, if any. It does not abort
	// the run.
	SendErr error

	// Response is a payload peer has sent back. nil if there was no
	// response.
	Response []byte

	// Echoed is a number of response bytes written back to the peer.
	Echoed int
}

// HasResponse tells if peer has responded with at least one byte.
func (r Result) HasResponse() bool {
	return len(r.Response) > 0
}

// Client is a one-shot TCP client.
//
// Client has no state between runs: each Run starts from scratch, so
// repeated runs against the same peer behave identically.
type Client struct {
	stack       NetworkStack
	dialer      Dialer
	eventStream EventStream
	logger      Logger

	endpoint           string
	message            []byte
	responseBufferSize int
	readTimeout        time.Duration
	writeTimeout       time.Duration
	stdout             io.Writer
	stderr             io.Writer
}

// Endpoint returns a host:port pair client connects to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Run executes a single connect-send-receive-echo cycle.
//
// Returned error wraps one of [ErrStackInit], [ErrSocketCreate] or
// [ErrConnect]. Everything after a successful connect is not fatal: a
// missing response or a failed write are reported in logs and [Result]
// only.
//
// Socket and network stack are released exactly once on every path.
func (c *Client) Run(ctx context.Context) (Result, error) {
	rv := Result{
		SessionID: newSessionID(),
	}
	logger := c.logger.BindStr("session-id", rv.SessionID)

	c.eventStream.Send(ctx, NewEventStart(rv.SessionID, c.endpoint))
	logger.Debug("Session has been started")

	defer func() {
		c.eventStream.Send(ctx, NewEventFinish(rv.SessionID))
		logger.Debug("Session has been finished")
	}()

	if err := c.stack.Startup(); err != nil {
		c.eventStream.Send(ctx, NewEventFailure(rv.SessionID, FailureStack))

		return rv, fmt.Errorf("%w: %w", ErrStackInit, err)
	}

	defer func() {
		if err := c.stack.Cleanup(); err != nil {
			logger.WarningError("cannot cleanup network stack", err)
		}
	}()

	dialStarted := time.Now()

	baseConn, err := c.dialer.DialContext(ctx, DefaultNetwork, c.endpoint)
	if err != nil {
		reason := FailureConnect

		switch {
		case errors.Is(err, ErrSocketCreate):
			reason = FailureSocket
		case !errors.Is(err, ErrConnect):
			err = fmt.Errorf("%w: %w", ErrConnect, err)
		}

		c.eventStream.Send(ctx, NewEventFailure(rv.SessionID, reason))

		return rv, err
	}

	conn := newConnTraffic(ctx, baseConn, rv.SessionID, c.eventStream)

	defer func() {
		if err := conn.Close(); err != nil {
			logger.DebugError("cannot close connection", err)
		}
	}()

	c.eventStream.Send(ctx, NewEventConnected(rv.SessionID, remoteIP(conn), time.Since(dialStarted)))
	logger.BindStr("remote-addr", conn.RemoteAddr().String()).Debug("Connection has been established")

	c.reportSocketOptions(ctx, logger, rv.SessionID, conn.SocketOptions())

	rv.Sent, rv.SendErr = c.send(conn, c.message)
	if rv.SendErr != nil {
		logger.WarningError("cannot send a message", rv.SendErr)
		fmt.Fprintf(c.stderr, "Send failed: %v\n", rv.SendErr) //nolint: errcheck
	} else {
		fmt.Fprintln(c.stdout, "Data sent successfully") //nolint: errcheck
	}

	response, err := c.receive(conn)
	if len(response) == 0 {
		if err != nil {
			logger.DebugError("cannot read a response", err)
		}

		c.eventStream.Send(ctx, NewEventNoResponse(rv.SessionID))
		fmt.Fprintln(c.stderr, "No response or connection closed") //nolint: errcheck

		return rv, nil
	}

	rv.Response = response

	logger.
		BindInt("size", len(response)).
		BindStr("checksum", checksum(response)).
		Debug("Response has been received")
	fmt.Fprintf(c.stdout, "Server response: %s\n", displayString(response)) //nolint: errcheck

	rv.Echoed, err = c.send(conn, response)
	if err != nil {
		logger.WarningError("cannot echo a response", err)
	}

	return rv, nil
}

func (c *Client) send(conn net.Conn, data []byte) (int, error) {
	if c.writeTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)) //nolint: errcheck
	}

	return conn.Write(data) //nolint: wrapcheck
}

// receive does exactly one read. Last byte of the buffer is never used.
func (c *Client) receive(conn net.Conn) ([]byte, error) {
	if c.readTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(c.readTimeout)) //nolint: errcheck
	}

	buf := make([]byte, c.responseBufferSize)

	n, err := conn.Read(buf[:len(buf)-1])
	if n <= 0 {
		return nil, err //nolint: wrapcheck
	}

	return buf[:n], nil
}

func (c *Client) reportSocketOptions(ctx context.Context, logger Logger, sessionID string, opts []SocketOption) {
	for _, opt := range opts {
		c.eventStream.Send(ctx, NewEventSocketOption(sessionID, opt))

		optLogger := logger.
			BindStr("option", opt.Name).
			BindInt("requested", opt.Requested)

		if opt.Err != nil {
			optLogger.WarningError("socket option was rejected", opt.Err)

			continue
		}

		if opt.Effective != 0 {
			optLogger = optLogger.BindInt("effective", opt.Effective)
		}

		optLogger.Debug("socket option was applied")
	}
}

// NewClient makes a new client instance.
func NewClient(opts ClientOpts) (*Client, error) {
	if err := opts.valid(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &Client{
		stack:              opts.Stack,
		dialer:             opts.Dialer,
		eventStream:        opts.EventStream,
		logger:             opts.Logger.Named("client"),
		endpoint:           opts.getEndpoint(),
		message:            opts.getMessage(),
		responseBufferSize: opts.getResponseBufferSize(),
		readTimeout:        opts.ReadTimeout,
		writeTimeout:       opts.WriteTimeout,
		stdout:             opts.getStdout(),
		stderr:             opts.getStderr(),
	}, nil
}

func newSessionID() string {
	buf := make([]byte, sessionIDLength)
	rand.Read(buf) //nolint: errcheck

	return base64.RawURLEncoding.EncodeToString(buf)
}

func remoteIP(conn net.Conn) net.IP {
	if addr, ok := conn.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP
	}

	return nil
}

// displayString cuts payload at the first NUL byte, the same way C
// string would be printed.
func displayString(data []byte) string {
	if idx := bytes.IndexByte(data, 0); idx >= 0 {
		data = data[:idx]
	}

	return string(data)
}

func checksum(data []byte) string {
	return strconv.FormatUint(xxhash.Checksum64(data), 16) //nolint: gomnd
}

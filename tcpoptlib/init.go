// Package tcpoptlib contains a one-shot TCP client which demonstrates
// socket tuning.
//
// The client initializes a network stack, dials an endpoint with Nagle
// algorithm disabled and with explicit kernel buffer hints, sends a single
// message, waits for a single response and echoes it back. That's it: no
// framing, no retries, no pools.
//
// Socket options are advisory. If a platform rejects one, the client logs
// it, reports an [EventSocketOption] and goes on.
package tcpoptlib

import (
	"context"
	"errors"
	"net"
	"time"
)

const (
	// DefaultEndpoint is an address client connects to if nothing else was
	// given.
	DefaultEndpoint = "127.0.0.1:9000"

	// DefaultMessage is a payload client sends right after connect.
	DefaultMessage = "Hello from C++ TCP (Winsock)"

	// DefaultSocketBufferSize is a size hint for both SO_SNDBUF and
	// SO_RCVBUF.
	DefaultSocketBufferSize = 8192

	// DefaultResponseBufferSize is a capacity of the receive buffer. The
	// last byte is reserved for a terminator so at most
	// DefaultResponseBufferSize-1 bytes are read.
	DefaultResponseBufferSize = 1024

	// DefaultNetwork is a network we dial. Only IPv4 is used.
	DefaultNetwork = "tcp4"

	// MinResponseBufferSize is the smallest buffer which still leaves one
	// byte for a payload.
	MinResponseBufferSize = 2
)

var (
	// ErrStackInit is returned if network stack cannot be initialized.
	ErrStackInit = errors.New("network stack initialization failed")

	// ErrSocketCreate is returned if OS refuses to give us a socket.
	ErrSocketCreate = errors.New("socket creation failed")

	// ErrConnect is returned if connection cannot be established.
	ErrConnect = errors.New("connect failed")

	// ErrDialerIsNotDefined is returned if client options have no dialer.
	ErrDialerIsNotDefined = errors.New("dialer is not defined")

	// ErrStackIsNotDefined is returned if client options have no network
	// stack.
	ErrStackIsNotDefined = errors.New("network stack is not defined")

	// ErrEventStreamIsNotDefined is returned if client options have no
	// event stream.
	ErrEventStreamIsNotDefined = errors.New("event stream is not defined")

	// ErrLoggerIsNotDefined is returned if client options have no logger.
	ErrLoggerIsNotDefined = errors.New("logger is not defined")

	// ErrEndpointInvalid is returned if endpoint is not a host:port pair.
	ErrEndpointInvalid = errors.New("endpoint is invalid")

	// ErrMessageEmpty is returned if there is nothing to send.
	ErrMessageEmpty = errors.New("message is empty")

	// ErrResponseBufferTooSmall is returned if response buffer cannot hold
	// even a single byte of payload.
	ErrResponseBufferTooSmall = errors.New("response buffer is too small")
)

// NetworkStack is a process-wide networking subsystem. It has to be
// started before any socket is created and cleaned up after the last one
// is closed.
//
// On Windows this is WSAStartup/WSACleanup. Other platforms have nothing to
// initialize, but the contract is the same.
type NetworkStack interface {
	Startup() error
	Cleanup() error
}

// SocketOption is a result of an advisory socket option.
type SocketOption struct {
	// Name is a name of the option like TCP_NODELAY or SO_SNDBUF.
	Name string

	// Requested is a value we asked for.
	Requested int

	// Effective is a value kernel reports after setting. 0 means unknown.
	Effective int

	// Err is an error returned by a platform. nil if option was accepted.
	Err error
}

// Conn is a connection returned by [Dialer].
type Conn interface {
	net.Conn

	// SocketOptions returns results of advisory options applied to this
	// connection.
	SocketOptions() []SocketOption
}

// Dialer establishes tuned TCP connections.
//
// Errors have to wrap either [ErrSocketCreate] or [ErrConnect] so caller
// can distinguish them.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (Conn, error)
}

// Event is a data structure which is used to pass some information about a
// client session.
type Event interface {
	// SessionID returns an identifier of the client run.
	SessionID() string

	// Timestamp returns a time when event was generated.
	Timestamp() time.Time
}

// EventStream is an abstraction which accepts events produced by a client.
//
// Send is called synchronously from the client routine. Implementations
// should not block for long.
type EventStream interface {
	Send(ctx context.Context, evt Event)
}

// Logger defines an interface of the logger used by the client.
type Logger interface {
	Named(name string) Logger

	BindInt(name string, value int) Logger
	BindStr(name, value string) Logger
	BindJSON(name, value string) Logger

	Printf(format string, args ...interface{})
	Info(msg string)
	Warning(msg string)
	Debug(msg string)
	InfoError(msg string, err error)
	WarningError(msg string, err error)
	DebugError(msg string, err error)
}

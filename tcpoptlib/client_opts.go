package tcpoptlib

import (
	"io"
	"net"
	"os"
	"time"
)

// ClientOpts is a structure with settings to the client.
//
// This is not required per se, but this is to shorten function signature and
// give an ability to conveniently provide default values.
type ClientOpts struct {
	// Stack defines a network stack which is started before dial and
	// cleaned up after connection is closed.
	//
	// This is a mandatory setting.
	Stack NetworkStack

	// Dialer defines a dialer which creates and tunes sockets.
	//
	// This is a mandatory setting.
	Dialer Dialer

	// EventStream defines an instance of event stream.
	//
	// This is a mandatory setting.
	EventStream EventStream

	// Logger defines an instance of the logger.
	//
	// This is a mandatory setting.
	Logger Logger

	// Endpoint is a host:port pair to connect to.
	//
	// This is an optional setting. Default is DefaultEndpoint.
	Endpoint string

	// Message is a payload to send after connect.
	//
	// This is an optional setting. Default is DefaultMessage.
	Message []byte

	// ResponseBufferSize is a capacity of the receive buffer. One byte is
	// reserved, so a single read gets at most ResponseBufferSize-1 bytes.
	//
	// This is an optional setting. Default is DefaultResponseBufferSize.
	ResponseBufferSize uint

	// ReadTimeout limits a time we wait for a response. 0 means we rely on
	// OS defaults and wait forever.
	//
	// This is an optional setting.
	ReadTimeout time.Duration

	// WriteTimeout limits a time of each write. 0 means OS defaults.
	//
	// This is an optional setting.
	WriteTimeout time.Duration

	// Stdout receives human-readable progress lines.
	//
	// This is an optional setting. Default is os.Stdout.
	Stdout io.Writer

	// Stderr receives human-readable failure lines.
	//
	// This is an optional setting. Default is os.Stderr.
	Stderr io.Writer
}

func (c ClientOpts) valid() error {
	switch {
	case c.Stack == nil:
		return ErrStackIsNotDefined
	case c.Dialer == nil:
		return ErrDialerIsNotDefined
	case c.EventStream == nil:
		return ErrEventStreamIsNotDefined
	case c.Logger == nil:
		return ErrLoggerIsNotDefined
	case c.ResponseBufferSize != 0 && c.ResponseBufferSize < MinResponseBufferSize:
		return ErrResponseBufferTooSmall
	}

	if c.Message != nil && len(c.Message) == 0 {
		return ErrMessageEmpty
	}

	if _, _, err := net.SplitHostPort(c.getEndpoint()); err != nil {
		return ErrEndpointInvalid
	}

	return nil
}

func (c ClientOpts) getEndpoint() string {
	if c.Endpoint == "" {
		return DefaultEndpoint
	}

	return c.Endpoint
}

func (c ClientOpts) getMessage() []byte {
	if c.Message == nil {
		return []byte(DefaultMessage)
	}

	return c.Message
}

func (c ClientOpts) getResponseBufferSize() int {
	if c.ResponseBufferSize == 0 {
		return DefaultResponseBufferSize
	}

	return int(c.ResponseBufferSize)
}

func (c ClientOpts) getStdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}

	return c.Stdout
}

func (c ClientOpts) getStderr() io.Writer {
	if c.Stderr == nil {
		return os.Stderr
	}

	return c.Stderr
}

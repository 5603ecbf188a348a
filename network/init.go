// Package network contains a dialer which creates tuned TCP sockets and an
// owner of a platform network stack.
//
// Tuning is advisory. Every option is applied independently and its
// result is returned as [tcpoptlib.SocketOption]; a rejected option never
// breaks a dial.
package network

import (
	"errors"

	"github.com/elearning/tcpopt/tcpoptlib"
)

// Names of the socket options we touch.
const (
	OptionNoDelay       = "TCP_NODELAY"
	OptionSendBuffer    = "SO_SNDBUF"
	OptionReceiveBuffer = "SO_RCVBUF"
)

// ErrStackNotStarted is returned on cleanup of a stack which was never
// started (or was already cleaned up).
var ErrStackNotStarted = errors.New("network stack is not started")

// Tuning is a set of advisory socket options.
type Tuning struct {
	// NoDelay disables Nagle algorithm if true.
	NoDelay bool

	// SendBufferSize is a hint for SO_SNDBUF. 0 leaves OS default.
	SendBufferSize int

	// ReceiveBufferSize is a hint for SO_RCVBUF. 0 leaves OS default.
	ReceiveBufferSize int
}

// DefaultTuning returns tuning with Nagle disabled and 8KB buffers.
func DefaultTuning() Tuning {
	return Tuning{
		NoDelay:           true,
		SendBufferSize:    tcpoptlib.DefaultSocketBufferSize,
		ReceiveBufferSize: tcpoptlib.DefaultSocketBufferSize,
	}
}

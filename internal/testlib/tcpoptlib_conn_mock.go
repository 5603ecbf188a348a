package testlib

import (
	"net"
	"time"

	"github.com/elearning/tcpopt/tcpoptlib"
	"github.com/stretchr/testify/mock"
)

type TcpoptlibConnMock struct {
	mock.Mock
}

func (m *TcpoptlibConnMock) Read(b []byte) (int, error) {
	args := m.Called(b)

	if fill, ok := args.Get(2).([]byte); ok {
		copy(b, fill)
	}

	return args.Int(0), args.Error(1) //nolint: wrapcheck
}

func (m *TcpoptlibConnMock) Write(b []byte) (int, error) {
	args := m.Called(b)

	return args.Int(0), args.Error(1) //nolint: wrapcheck
}

func (m *TcpoptlibConnMock) Close() error {
	return m.Called().Error(0) //nolint: wrapcheck
}

func (m *TcpoptlibConnMock) LocalAddr() net.Addr {
	return m.Called().Get(0).(net.Addr) //nolint: forcetypeassert
}

func (m *TcpoptlibConnMock) RemoteAddr() net.Addr {
	return m.Called().Get(0).(net.Addr) //nolint: forcetypeassert
}

func (m *TcpoptlibConnMock) SetDeadline(t time.Time) error {
	return m.Called(t).Error(0) //nolint: wrapcheck
}

func (m *TcpoptlibConnMock) SetReadDeadline(t time.Time) error {
	return m.Called(t).Error(0) //nolint: wrapcheck
}

func (m *TcpoptlibConnMock) SetWriteDeadline(t time.Time) error {
	return m.Called(t).Error(0) //nolint: wrapcheck
}

func (m *TcpoptlibConnMock) SocketOptions() []tcpoptlib.SocketOption {
	options, _ := m.Called().Get(0).([]tcpoptlib.SocketOption)

	return options
}

package testlib

import (
	"context"

	"github.com/elearning/tcpopt/tcpoptlib"
	"github.com/stretchr/testify/mock"
)

type TcpoptlibDialerMock struct {
	mock.Mock
}

func (m *TcpoptlibDialerMock) DialContext(ctx context.Context, network, address string) (tcpoptlib.Conn, error) {
	args := m.Called(ctx, network, address)

	conn, _ := args.Get(0).(tcpoptlib.Conn)

	return conn, args.Error(1) //nolint: wrapcheck
}

type TcpoptlibNetworkStackMock struct {
	mock.Mock
}

func (m *TcpoptlibNetworkStackMock) Startup() error {
	return m.Called().Error(0) //nolint: wrapcheck
}

func (m *TcpoptlibNetworkStackMock) Cleanup() error {
	return m.Called().Error(0) //nolint: wrapcheck
}

type TcpoptlibEventStreamMock struct {
	mock.Mock
}

func (m *TcpoptlibEventStreamMock) Send(ctx context.Context, evt tcpoptlib.Event) {
	m.Called(ctx, evt)
}

package utils_test

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/elearning/tcpopt/internal/utils"
	"github.com/elearning/tcpopt/logger"
	"github.com/elearning/tcpopt/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	require.NoError(t, os.WriteFile(path, []byte(`endpoint = "127.0.0.1:9100"`), 0o600))

	conf, err := utils.ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9100", conf.Endpoint.Get(""))

	_, err = utils.ReadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestListenerTunesAcceptedConns(t *testing.T) {
	t.Parallel()

	listener, err := utils.NewListener("127.0.0.1:0", network.DefaultTuning(), logger.NewNoopLogger())
	require.NoError(t, err)

	defer listener.Close()

	go func() {
		conn, err := net.Dial("tcp4", listener.Addr().String())
		if err == nil {
			conn.Close()
		}
	}()

	conn, err := listener.Accept()
	require.NoError(t, err)

	defer conn.Close()

	tcpConn, ok := conn.(*net.TCPConn)
	require.True(t, ok)

	rawConn, err := tcpConn.SyscallConn()
	require.NoError(t, err)
	assert.NotNil(t, rawConn)
}

func TestListenerBadAddress(t *testing.T) {
	t.Parallel()

	_, err := utils.NewListener("127.0.0.1:-1", network.DefaultTuning(), logger.NewNoopLogger())
	assert.Error(t, err)
}

package stats_test

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/elearning/tcpopt/events"
	"github.com/elearning/tcpopt/logger"
	"github.com/elearning/tcpopt/stats"
	"github.com/elearning/tcpopt/tcpoptlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsdIncorrectAddress(t *testing.T) {
	t.Parallel()

	_, err := stats.NewStatsd("localhost", "tcpopt", "influxdb", logger.NewNoopLogger())
	assert.Error(t, err)
}

func TestStatsdUnknownTagFormat(t *testing.T) {
	t.Parallel()

	_, err := stats.NewStatsd("127.0.0.1:8125", "tcpopt", "unknown", logger.NewNoopLogger())
	assert.Error(t, err)
}

func TestStatsdSendsMetrics(t *testing.T) {
	t.Parallel()

	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)

	defer conn.Close()

	factory, err := stats.NewStatsd(conn.LocalAddr().String(), "tcpopt", "influxdb", logger.NewNoopLogger())
	require.NoError(t, err)

	ctx := context.Background()
	stream := events.NewEventStream([]events.ObserverFactory{factory.Make})

	stream.Send(ctx, tcpoptlib.NewEventStart("sid", "127.0.0.1:9000"))
	stream.Send(ctx, tcpoptlib.NewEventTraffic("sid", 28, false))
	stream.Send(ctx, tcpoptlib.NewEventNoResponse("sid"))
	stream.Send(ctx, tcpoptlib.NewEventFinish("sid"))
	stream.Shutdown()

	received := &strings.Builder{}
	buf := make([]byte, 65536)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint: errcheck

	for !strings.Contains(received.String(), "tcpopt.sessions") {
		n, _, err := conn.ReadFrom(buf)
		require.NoError(t, err)

		received.Write(buf[:n])
	}

	assert.Contains(t, received.String(), "tcpopt.traffic,direction=sent:28|c")
	assert.Contains(t, received.String(), "tcpopt.sessions,result=no_response:1|c")
}

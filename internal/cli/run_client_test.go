package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elearning/tcpopt/internal/config"
	"github.com/elearning/tcpopt/tcpoptlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RunClientTestSuite struct {
	suite.Suite

	listener net.Listener
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	done     chan []byte
}

func (suite *RunClientTestSuite) SetupTest() {
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	suite.Require().NoError(err)

	suite.listener = listener
	suite.stdout = &bytes.Buffer{}
	suite.stderr = &bytes.Buffer{}
	suite.done = make(chan []byte, 1)
}

func (suite *RunClientTestSuite) TearDownTest() {
	suite.listener.Close()
}

func (suite *RunClientTestSuite) respond(response string) {
	go func() {
		var echo []byte

		defer func() {
			suite.done <- echo
		}()

		conn, err := suite.listener.Accept()
		if err != nil {
			return
		}

		defer conn.Close()

		conn.SetDeadline(time.Now().Add(5 * time.Second)) //nolint: errcheck

		buf := make([]byte, 1024)
		if _, err := conn.Read(buf); err != nil {
			return
		}

		if _, err := conn.Write([]byte(response)); err != nil {
			return
		}

		echo = make([]byte, len(response))
		n, _ := io.ReadFull(conn, echo)
		echo = echo[:n]
	}()
}

func (suite *RunClientTestSuite) parse(data string) *config.Config {
	conf, err := config.Parse([]byte(data))
	suite.Require().NoError(err)

	return conf
}

func (suite *RunClientTestSuite) TestRun() {
	suite.respond("pong")

	conf := suite.parse(`endpoint = "` + suite.listener.Addr().String() + `"`)

	suite.NoError(runClient(context.Background(), conf, "test", suite.stdout, suite.stderr))
	suite.Equal("pong", string(<-suite.done))
	suite.Equal("Data sent successfully\nServer response: pong\n", suite.stdout.String())
}

func (suite *RunClientTestSuite) TestConnectFailure() {
	addr := suite.listener.Addr().String()
	suite.listener.Close()

	conf := suite.parse(`endpoint = "` + addr + `"`)

	err := runClient(context.Background(), conf, "test", suite.stdout, suite.stderr)
	suite.ErrorIs(err, tcpoptlib.ErrConnect)
	suite.Empty(suite.stdout.String())
}

func (suite *RunClientTestSuite) TestPrometheusIsPushed() {
	mutex := &sync.Mutex{}
	pushed := []string{}

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mutex.Lock()
		pushed = append(pushed, r.Method+" "+r.URL.Path+" "+string(body))
		mutex.Unlock()

		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	suite.respond("pong")

	conf := suite.parse(`
endpoint = "` + suite.listener.Addr().String() + `"

[stats.prometheus]
enabled = true
push-url = "` + gateway.URL + `"
job = "cli-test"
`)

	suite.NoError(runClient(context.Background(), conf, "test", suite.stdout, suite.stderr))
	<-suite.done

	mutex.Lock()
	defer mutex.Unlock()

	suite.Require().Len(pushed, 1)
	suite.True(strings.HasPrefix(pushed[0], "PUT /metrics/job/cli-test"))
	suite.Contains(pushed[0], "tcpopt_sessions_total")
}

func (suite *RunClientTestSuite) TestDebugLogsGoToStderr() {
	suite.respond("pong")

	conf := suite.parse(`
debug = true
endpoint = "` + suite.listener.Addr().String() + `"
`)

	suite.NoError(runClient(context.Background(), conf, "test", suite.stdout, suite.stderr))
	<-suite.done

	suite.Contains(suite.stderr.String(), `"version":"test"`)
	suite.Contains(suite.stderr.String(), "Connection has been established")
	suite.NotContains(suite.stdout.String(), "{")
}

func TestRunClient(t *testing.T) {
	suite.Run(t, &RunClientTestSuite{})
}

func TestMakeEventStreamStatsdAddress(t *testing.T) {
	conf, err := config.Parse([]byte(`
[stats.statsd]
enabled = true
address = "127.0.0.1:8125"
`))
	require.NoError(t, err)

	stream, err := makeEventStream(conf, makeLogger(conf, "test", io.Discard))
	require.NoError(t, err)

	stream.Shutdown()
}

package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/elearning/tcpopt/internal/utils"
	"github.com/elearning/tcpopt/logger"
	"github.com/elearning/tcpopt/network"
	"github.com/elearning/tcpopt/tcpoptlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ServeTestSuite struct {
	suite.Suite

	listener net.Listener
	stdout   *bytes.Buffer
}

func (suite *ServeTestSuite) SetupTest() {
	listener, err := utils.NewListener("127.0.0.1:0", network.DefaultTuning(), logger.NewNoopLogger())
	suite.Require().NoError(err)

	suite.listener = listener
	suite.stdout = &bytes.Buffer{}
}

func (suite *ServeTestSuite) serve(opts serveOpts) chan error {
	rv := make(chan error, 1)

	go func() {
		rv <- serveConns(context.Background(), suite.listener, opts, logger.NewNoopLogger(), suite.stdout)
	}()

	return rv
}

func (suite *ServeTestSuite) client() *tcpoptlib.Client {
	dialer, err := network.NewDefaultDialer(time.Second, network.DefaultTuning())
	suite.Require().NoError(err)

	client, err := tcpoptlib.NewClient(tcpoptlib.ClientOpts{
		Stack:       network.NewStack(),
		Dialer:      dialer,
		EventStream: &discardStream{},
		Logger:      logger.NewNoopLogger(),
		Endpoint:    suite.listener.Addr().String(),
		ReadTimeout: 5 * time.Second,
		Stdout:      io.Discard,
		Stderr:      io.Discard,
	})
	suite.Require().NoError(err)

	return client
}

func (suite *ServeTestSuite) TestEchoIsVerified() {
	done := suite.serve(serveOpts{
		response:    []byte("Hello from server"),
		count:       2,
		echoTimeout: 5 * time.Second,
	})

	for i := 0; i < 2; i++ {
		result, err := suite.client().Run(context.Background())
		suite.Require().NoError(err)
		suite.Equal("Hello from server", string(result.Response))
	}

	suite.NoError(<-done)
	suite.Equal(
		"Client message: Hello from C++ TCP (Winsock)\nEcho received: 17 bytes, matches: true\n"+
			"Client message: Hello from C++ TCP (Winsock)\nEcho received: 17 bytes, matches: true\n",
		suite.stdout.String())
}

func (suite *ServeTestSuite) TestEmptyResponseClosesImmediately() {
	done := suite.serve(serveOpts{count: 1, echoTimeout: 5 * time.Second})

	result, err := suite.client().Run(context.Background())
	suite.NoError(err)
	suite.False(result.HasResponse())

	suite.NoError(<-done)
	suite.Equal("Client message: Hello from C++ TCP (Winsock)\n", suite.stdout.String())
}

func (suite *ServeTestSuite) TestCancelStopsServing() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- serveConns(ctx, suite.listener, serveOpts{}, logger.NewNoopLogger(), suite.stdout)
	}()

	cancel()

	select {
	case err := <-done:
		suite.NoError(err)
	case <-time.After(5 * time.Second):
		suite.Fail("serve has not stopped")
	}
}

// exchange connects without the client routine: it sends message, reads
// the whole response and writes echo back instead of it.
func (suite *ServeTestSuite) exchange(message, echo string, responseSize int) {
	conn, err := net.Dial("tcp4", suite.listener.Addr().String())
	suite.Require().NoError(err)

	defer conn.Close()

	conn.SetDeadline(time.Now().Add(5 * time.Second)) //nolint: errcheck

	if message == "" {
		return
	}

	_, err = conn.Write([]byte(message))
	suite.Require().NoError(err)

	_, err = io.ReadFull(conn, make([]byte, responseSize))
	suite.Require().NoError(err)

	_, err = conn.Write([]byte(echo))
	suite.Require().NoError(err)
}

func (suite *ServeTestSuite) TestWrongEchoIsReported() {
	done := suite.serve(serveOpts{
		response:    []byte("Hello from server"),
		count:       1,
		echoTimeout: 5 * time.Second,
	})

	suite.exchange("hi", "Hello from serveR", 17)

	suite.NoError(<-done)
	suite.Equal("Client message: hi\nEcho received: 17 bytes, matches: false\n", suite.stdout.String())
}

func (suite *ServeTestSuite) TestTruncatedEchoIsNotMatch() {
	done := suite.serve(serveOpts{
		response:    []byte("Hello from server"),
		count:       2,
		echoTimeout: 5 * time.Second,
	})

	suite.exchange("hi", "H", 17)
	suite.exchange("hi", "X", 17)

	suite.NoError(<-done)
	suite.Equal(
		"Client message: hi\nEcho received: 1 bytes, matches: partial\n"+
			"Client message: hi\nEcho received: 1 bytes, matches: false\n",
		suite.stdout.String())
}

func (suite *ServeTestSuite) TestSilentPeerIsNotReported() {
	done := suite.serve(serveOpts{
		response:    []byte("Hello from server"),
		count:       1,
		echoTimeout: 5 * time.Second,
	})

	suite.exchange("", "", 0)

	suite.NoError(<-done)
	suite.Empty(suite.stdout.String())
}

func (suite *ServeTestSuite) TestCountClosesListener() {
	done := suite.serve(serveOpts{count: 1, echoTimeout: 5 * time.Second})

	suite.exchange("hi", "", 0)
	suite.NoError(<-done)

	_, err := suite.listener.Accept()
	suite.ErrorIs(err, net.ErrClosed)
}

func TestServe(t *testing.T) {
	t.Parallel()
	suite.Run(t, &ServeTestSuite{})
}

type discardStream struct{}

func (d *discardStream) Send(_ context.Context, _ tcpoptlib.Event) {}

func TestGetEchoStatus(t *testing.T) {
	t.Parallel()

	expected := []byte("Hello from server")

	testData := map[string]struct {
		echo   string
		status string
	}{
		"full":         {echo: "Hello from server", status: echoMatches},
		"prefix":       {echo: "Hello", status: echoPartial},
		"one byte":     {echo: "H", status: echoPartial},
		"wrong byte":   {echo: "X", status: echoMismatch},
		"same length":  {echo: "Hello from serveR", status: echoMismatch},
		"wrong prefix": {echo: "Help", status: echoMismatch},
		"empty":        {echo: "", status: echoMismatch},
		"longer":       {echo: "Hello from server!", status: echoMismatch},
	}

	for name, value := range testData {
		params := value

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, params.status, getEchoStatus([]byte(params.echo), expected))
		})
	}
}

package cli

import (
	"testing"
	"time"

	"github.com/elearning/tcpopt/tcpoptlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSimpleRun() SimpleRun {
	return SimpleRun{
		Endpoint:       tcpoptlib.DefaultEndpoint,
		Message:        tcpoptlib.DefaultMessage,
		SendBuffer:     "8KiB",
		ReceiveBuffer:  "8KiB",
		ResponseBuffer: "1KiB",
	}
}

func TestSimpleRunDefaults(t *testing.T) {
	t.Parallel()

	cmd := defaultSimpleRun()

	conf, err := cmd.config()
	require.NoError(t, err)

	assert.Equal(t, tcpoptlib.DefaultEndpoint, conf.Endpoint.Get(""))
	assert.Equal(t, []byte(tcpoptlib.DefaultMessage), conf.Message.Get(""))
	assert.True(t, conf.NoDelay.Get(false))
	assert.EqualValues(t, tcpoptlib.DefaultSocketBufferSize, conf.SendBuffer.Get(0))
	assert.EqualValues(t, tcpoptlib.DefaultSocketBufferSize, conf.ReceiveBuffer.Get(0))
	assert.EqualValues(t, tcpoptlib.DefaultResponseBufferSize, conf.ResponseBuffer.Get(0))
	assert.Zero(t, conf.Timeout.Read.Get(0))
	assert.False(t, conf.Debug.Get(true))

	tuning := makeTuning(conf)
	assert.True(t, tuning.NoDelay)
	assert.Equal(t, tcpoptlib.DefaultSocketBufferSize, tuning.SendBufferSize)
}

func TestSimpleRunFlags(t *testing.T) {
	t.Parallel()

	cmd := defaultSimpleRun()
	cmd.Nagle = true
	cmd.ReadTimeout = 3 * time.Second
	cmd.SendBuffer = "64KiB"

	conf, err := cmd.config()
	require.NoError(t, err)

	assert.False(t, conf.NoDelay.Get(true))
	assert.Equal(t, 3*time.Second, conf.Timeout.Read.Get(0))
	assert.EqualValues(t, 65536, conf.SendBuffer.Get(0))
}

func TestSimpleRunIncorrect(t *testing.T) {
	t.Parallel()

	testData := map[string]func(*SimpleRun){
		"endpoint":        func(s *SimpleRun) { s.Endpoint = "nowhere" },
		"message":         func(s *SimpleRun) { s.Message = "" },
		"send buffer":     func(s *SimpleRun) { s.SendBuffer = "big" },
		"receive buffer":  func(s *SimpleRun) { s.ReceiveBuffer = "-1" },
		"response buffer": func(s *SimpleRun) { s.ResponseBuffer = "1" },
		"read timeout":    func(s *SimpleRun) { s.ReadTimeout = -time.Second },
	}

	for name, value := range testData {
		modify := value

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd := defaultSimpleRun()
			modify(&cmd)

			_, err := cmd.config()
			assert.Error(t, err)
		})
	}
}

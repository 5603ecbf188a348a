package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elearning/tcpopt/tcpoptlib"
)

type Optional struct {
	Enabled TypeBool `json:"enabled"`
}

type Config struct {
	Debug          TypeBool     `json:"debug"`
	Endpoint       TypeHostPort `json:"endpoint"`
	Message        TypeMessage  `json:"message"`
	NoDelay        TypeBool     `json:"noDelay"`
	SendBuffer     TypeBytes    `json:"sendBuffer"`
	ReceiveBuffer  TypeBytes    `json:"receiveBuffer"`
	ResponseBuffer TypeBytes    `json:"responseBuffer"`
	Timeout        struct {
		Dial  TypeDuration `json:"dial"`
		Read  TypeDuration `json:"read"`
		Write TypeDuration `json:"write"`
	} `json:"timeout"`
	Stats struct {
		StatsD struct {
			Optional

			Address      TypeHostPort        `json:"address"`
			MetricPrefix TypeMetricPrefix    `json:"metricPrefix"`
			TagFormat    TypeStatsdTagFormat `json:"tagFormat"`
		} `json:"statsd"`
		Prometheus struct {
			Optional

			PushURL      TypeURL          `json:"pushUrl"`
			Job          string           `json:"job"`
			MetricPrefix TypeMetricPrefix `json:"metricPrefix"`
		} `json:"prometheus"`
	} `json:"stats"`
}

func (c *Config) Validate() error {
	if size := c.ResponseBuffer.Get(tcpoptlib.DefaultResponseBufferSize); size < tcpoptlib.MinResponseBufferSize {
		return fmt.Errorf("response-buffer has to be at least %d bytes", tcpoptlib.MinResponseBufferSize)
	}

	if c.Stats.StatsD.Enabled.Get(false) && c.Stats.StatsD.Address.Get("") == "" {
		return fmt.Errorf("statsd.address is required when statsd is enabled")
	}

	if c.Stats.Prometheus.Enabled.Get(false) && c.Stats.Prometheus.PushURL.Get("") == "" {
		return fmt.Errorf("prometheus.push-url is required when prometheus is enabled")
	}

	return nil
}

func (c *Config) String() string {
	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)

	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(c); err != nil {
		return "{}"
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

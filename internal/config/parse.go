package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml"
)

// tomlConfig mirrors Config with plain types. TOML is decoded here first
// and then pushed through JSON, so every Type* wrapper validates its own
// value.
type tomlConfig struct {
	Debug          *bool  `toml:"debug" json:"debug,omitempty"`
	Endpoint       string `toml:"endpoint" json:"endpoint,omitempty"`
	Message        string `toml:"message" json:"message,omitempty"`
	NoDelay        *bool  `toml:"no-delay" json:"noDelay,omitempty"`
	SendBuffer     string `toml:"send-buffer" json:"sendBuffer,omitempty"`
	ReceiveBuffer  string `toml:"receive-buffer" json:"receiveBuffer,omitempty"`
	ResponseBuffer string `toml:"response-buffer" json:"responseBuffer,omitempty"`
	Timeout        struct {
		Dial  string `toml:"dial" json:"dial,omitempty"`
		Read  string `toml:"read" json:"read,omitempty"`
		Write string `toml:"write" json:"write,omitempty"`
	} `toml:"timeout" json:"timeout,omitempty"`
	Stats struct {
		StatsD struct {
			Enabled      *bool  `toml:"enabled" json:"enabled,omitempty"`
			Address      string `toml:"address" json:"address,omitempty"`
			MetricPrefix string `toml:"metric-prefix" json:"metricPrefix,omitempty"`
			TagFormat    string `toml:"tag-format" json:"tagFormat,omitempty"`
		} `toml:"statsd" json:"statsd,omitempty"`
		Prometheus struct {
			Enabled      *bool  `toml:"enabled" json:"enabled,omitempty"`
			PushURL      string `toml:"push-url" json:"pushUrl,omitempty"`
			Job          string `toml:"job" json:"job,omitempty"`
			MetricPrefix string `toml:"metric-prefix" json:"metricPrefix,omitempty"`
		} `toml:"prometheus" json:"prometheus,omitempty"`
	} `toml:"stats" json:"stats,omitempty"`
}

func Parse(rawData []byte) (*Config, error) {
	tomlConf := &tomlConfig{}
	jsonBuf := &bytes.Buffer{}
	conf := &Config{}

	if err := toml.Unmarshal(rawData, tomlConf); err != nil {
		return nil, fmt.Errorf("cannot parse toml config: %w", err)
	}

	if err := json.NewEncoder(jsonBuf).Encode(tomlConf); err != nil {
		panic(err)
	}

	if err := json.NewDecoder(jsonBuf).Decode(conf); err != nil {
		return nil, fmt.Errorf("cannot parse a config: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("cannot validate config: %w", err)
	}

	return conf, nil
}

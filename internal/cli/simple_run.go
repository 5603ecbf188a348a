package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/elearning/tcpopt/internal/config"
)

type SimpleRun struct {
	Endpoint       string        `kong:"arg,optional,default='127.0.0.1:9000',help='Host:port to connect to.'"`
	Message        string        `kong:"help='Message to send.',short='m',default='Hello from C++ TCP (Winsock)'"`
	Nagle          bool          `kong:"help='Keep Nagle algorithm enabled.'"`
	SendBuffer     string        `kong:"help='SO_SNDBUF hint.',default='8KiB'"`
	ReceiveBuffer  string        `kong:"help='SO_RCVBUF hint.',default='8KiB'"`
	ResponseBuffer string        `kong:"help='Receive buffer capacity, last byte is reserved.',default='1KiB'"`
	DialTimeout    time.Duration `kong:"help='Connect timeout. 0 means OS default.',default='0s'"`
	ReadTimeout    time.Duration `kong:"help='Response timeout. 0 means wait forever.',default='0s'"`
	WriteTimeout   time.Duration `kong:"help='Write timeout. 0 means OS default.',default='0s'"`
	Debug          bool          `kong:"help='Run in debug mode.',short='d'"`
}

func (s *SimpleRun) Run(cli *CLI, version string) error {
	conf, err := s.config()
	if err != nil {
		return err
	}

	return runClient(context.Background(), conf, version, os.Stdout, os.Stderr)
}

func (s *SimpleRun) config() (*config.Config, error) { //nolint: cyclop
	conf := &config.Config{}

	if err := conf.Endpoint.Set(s.Endpoint); err != nil {
		return nil, fmt.Errorf("incorrect endpoint: %w", err)
	}

	if err := conf.Message.Set(s.Message); err != nil {
		return nil, fmt.Errorf("incorrect message: %w", err)
	}

	if err := conf.NoDelay.Set(strconv.FormatBool(!s.Nagle)); err != nil {
		return nil, fmt.Errorf("incorrect nagle: %w", err)
	}

	if err := conf.SendBuffer.Set(s.SendBuffer); err != nil {
		return nil, fmt.Errorf("incorrect send-buffer: %w", err)
	}

	if err := conf.ReceiveBuffer.Set(s.ReceiveBuffer); err != nil {
		return nil, fmt.Errorf("incorrect receive-buffer: %w", err)
	}

	if err := conf.ResponseBuffer.Set(s.ResponseBuffer); err != nil {
		return nil, fmt.Errorf("incorrect response-buffer: %w", err)
	}

	if err := conf.Timeout.Dial.Set(s.DialTimeout.String()); err != nil {
		return nil, fmt.Errorf("incorrect dial-timeout: %w", err)
	}

	if err := conf.Timeout.Read.Set(s.ReadTimeout.String()); err != nil {
		return nil, fmt.Errorf("incorrect read-timeout: %w", err)
	}

	if err := conf.Timeout.Write.Set(s.WriteTimeout.String()); err != nil {
		return nil, fmt.Errorf("incorrect write-timeout: %w", err)
	}

	if err := conf.Debug.Set(strconv.FormatBool(s.Debug)); err != nil {
		return nil, fmt.Errorf("incorrect debug: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return conf, nil
}

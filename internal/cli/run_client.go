package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/elearning/tcpopt/events"
	"github.com/elearning/tcpopt/internal/config"
	"github.com/elearning/tcpopt/logger"
	"github.com/elearning/tcpopt/network"
	"github.com/elearning/tcpopt/stats"
	"github.com/elearning/tcpopt/tcpoptlib"
	"github.com/rs/zerolog"
)

func makeLogger(conf *config.Config, version string, output io.Writer) tcpoptlib.Logger {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if conf.Debug.Get(false) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	baseLogger := zerolog.New(output).
		With().
		Timestamp().
		Str("version", version).
		Logger()

	return logger.NewZeroLogger(baseLogger)
}

func makeEventStream(conf *config.Config, logger tcpoptlib.Logger) (*events.EventStream, error) {
	factories := []events.ObserverFactory{}

	if conf.Stats.StatsD.Enabled.Get(false) {
		statsdFactory, err := stats.NewStatsd(
			conf.Stats.StatsD.Address.Get(""),
			conf.Stats.StatsD.MetricPrefix.Get(stats.DefaultMetricPrefix),
			conf.Stats.StatsD.TagFormat.Get(stats.DefaultStatsdTagFormat),
			logger)
		if err != nil {
			return nil, fmt.Errorf("cannot build statsd observer: %w", err)
		}

		factories = append(factories, statsdFactory.Make)
	}

	if conf.Stats.Prometheus.Enabled.Get(false) {
		job := conf.Stats.Prometheus.Job
		if job == "" {
			job = stats.DefaultPushJob
		}

		prometheus := stats.NewPrometheus(
			conf.Stats.Prometheus.MetricPrefix.Get(stats.DefaultMetricPrefix),
			conf.Stats.Prometheus.PushURL.Get(""),
			job,
			logger)

		factories = append(factories, prometheus.Make)
	}

	return events.NewEventStream(factories), nil
}

func makeTuning(conf *config.Config) network.Tuning {
	return network.Tuning{
		NoDelay:           conf.NoDelay.Get(true),
		SendBufferSize:    int(conf.SendBuffer.Get(tcpoptlib.DefaultSocketBufferSize)),
		ReceiveBufferSize: int(conf.ReceiveBuffer.Get(tcpoptlib.DefaultSocketBufferSize)),
	}
}

func runClient(ctx context.Context, conf *config.Config, version string, stdout, stderr io.Writer) error {
	logger := makeLogger(conf, version, stderr)

	logger.BindJSON("configuration", conf.String()).Debug("configuration")

	eventStream, err := makeEventStream(conf, logger)
	if err != nil {
		return err
	}

	defer eventStream.Shutdown()

	dialer, err := network.NewDefaultDialer(conf.Timeout.Dial.Get(0), makeTuning(conf))
	if err != nil {
		return fmt.Errorf("cannot build a dialer: %w", err)
	}

	client, err := tcpoptlib.NewClient(tcpoptlib.ClientOpts{
		Stack:              network.NewStack(),
		Dialer:             dialer,
		EventStream:        eventStream,
		Logger:             logger,
		Endpoint:           conf.Endpoint.Get(tcpoptlib.DefaultEndpoint),
		Message:            conf.Message.Get(tcpoptlib.DefaultMessage),
		ResponseBufferSize: conf.ResponseBuffer.Get(tcpoptlib.DefaultResponseBufferSize),
		ReadTimeout:        conf.Timeout.Read.Get(0),
		WriteTimeout:       conf.Timeout.Write.Get(0),
		Stdout:             stdout,
		Stderr:             stderr,
	})
	if err != nil {
		return fmt.Errorf("cannot build a client: %w", err)
	}

	if _, err := client.Run(ctx); err != nil {
		return err //nolint: wrapcheck
	}

	return nil
}

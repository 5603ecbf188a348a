package stats

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/elearning/tcpopt/events"
	"github.com/elearning/tcpopt/tcpoptlib"
	statsd "github.com/smira/go-statsd"
)

type statsdProcessor struct {
	sessions map[string]*sessionInfo
	client   *statsd.Client
}

func (s statsdProcessor) EventStart(evt tcpoptlib.EventStart) {
	s.sessions[evt.SessionID()] = newSessionInfo()
}

func (s statsdProcessor) EventConnected(evt tcpoptlib.EventConnected) {
	s.client.PrecisionTiming(MetricConnectDuration, evt.Duration)
}

func (s statsdProcessor) EventSocketOption(evt tcpoptlib.EventSocketOption) {
	s.client.Incr(MetricSocketOptions, 1,
		statsd.StringTag(TagOption, evt.Option.Name),
		statsd.StringTag(TagStatus, getOptionStatus(evt.Option.Err)))

	if evt.Option.Err == nil && evt.Option.Effective > 0 {
		s.client.Gauge(MetricSocketBuffer, int64(evt.Option.Effective),
			statsd.StringTag(TagOption, evt.Option.Name))
	}
}

func (s statsdProcessor) EventTraffic(evt tcpoptlib.EventTraffic) {
	s.client.Incr(MetricTraffic, int64(evt.Traffic),
		statsd.StringTag(TagDirection, getDirection(evt.IsRead)))
}

func (s statsdProcessor) EventNoResponse(evt tcpoptlib.EventNoResponse) {
	if info, ok := s.sessions[evt.SessionID()]; ok {
		info.result = TagResultNoResponse
	}
}

func (s statsdProcessor) EventFailure(evt tcpoptlib.EventFailure) {
	if info, ok := s.sessions[evt.SessionID()]; ok {
		info.result = evt.Reason
	}
}

func (s statsdProcessor) EventFinish(evt tcpoptlib.EventFinish) {
	info, ok := s.sessions[evt.SessionID()]
	if !ok {
		return
	}

	delete(s.sessions, evt.SessionID())

	s.client.Incr(MetricSessions, 1, statsd.StringTag(TagResult, info.result))
	s.client.PrecisionTiming(MetricSessionDuration, time.Since(info.startTime))
}

func (s statsdProcessor) Shutdown() {
	s.client.Close() //nolint: errcheck
}

// StatsdFactory is a factory of [events.Observer] which dumps information
// to StatsD.
type StatsdFactory struct {
	client *statsd.Client
}

// Make builds a new observer.
func (s StatsdFactory) Make() events.Observer {
	return statsdProcessor{
		sessions: map[string]*sessionInfo{},
		client:   s.client,
	}
}

// NewStatsd builds an events.ObserverFactory that sends events to StatsD.
//
// Valid tag formats are 'datadog', 'influxdb' and 'graphite'.
func NewStatsd(address, metricPrefix, tagFormat string, logger tcpoptlib.Logger) (StatsdFactory, error) {
	if _, _, err := net.SplitHostPort(address); err != nil {
		return StatsdFactory{}, fmt.Errorf("incorrect address %s: %w", address, err)
	}

	if metricPrefix != "" && !strings.HasSuffix(metricPrefix, ".") {
		metricPrefix += "."
	}

	options := []statsd.Option{
		statsd.MetricPrefix(metricPrefix),
		statsd.Logger(logger.Named("statsd")),
		statsd.FlushInterval(100 * time.Millisecond), //nolint: gomnd
	}

	switch strings.ToLower(tagFormat) {
	case "datadog":
		options = append(options, statsd.TagStyle(statsd.TagFormatDatadog))
	case "influxdb", "":
		options = append(options, statsd.TagStyle(statsd.TagFormatInfluxDB))
	case "graphite":
		options = append(options, statsd.TagStyle(statsd.TagFormatGraphite))
	default:
		return StatsdFactory{}, fmt.Errorf("unknown tag format %s", tagFormat)
	}

	return StatsdFactory{
		client: statsd.NewClient(address, options...),
	}, nil
}

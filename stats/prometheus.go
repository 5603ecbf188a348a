package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/elearning/tcpopt/events"
	"github.com/elearning/tcpopt/tcpoptlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const prometheusPushTimeout = 5 * time.Second

type prometheusProcessor struct {
	sessions map[string]*sessionInfo
	factory  *PrometheusFactory
}

func (p prometheusProcessor) EventStart(evt tcpoptlib.EventStart) {
	p.sessions[evt.SessionID()] = newSessionInfo()
}

func (p prometheusProcessor) EventConnected(evt tcpoptlib.EventConnected) {
	p.factory.metricConnectDuration.Observe(evt.Duration.Seconds())
}

func (p prometheusProcessor) EventSocketOption(evt tcpoptlib.EventSocketOption) {
	p.factory.metricSocketOptions.
		WithLabelValues(evt.Option.Name, getOptionStatus(evt.Option.Err)).
		Inc()

	if evt.Option.Err == nil && evt.Option.Effective > 0 {
		p.factory.metricSocketBuffer.
			WithLabelValues(evt.Option.Name).
			Set(float64(evt.Option.Effective))
	}
}

func (p prometheusProcessor) EventTraffic(evt tcpoptlib.EventTraffic) {
	p.factory.metricTraffic.
		WithLabelValues(getDirection(evt.IsRead)).
		Add(float64(evt.Traffic))
}

func (p prometheusProcessor) EventNoResponse(evt tcpoptlib.EventNoResponse) {
	if info, ok := p.sessions[evt.SessionID()]; ok {
		info.result = TagResultNoResponse
	}
}

func (p prometheusProcessor) EventFailure(evt tcpoptlib.EventFailure) {
	if info, ok := p.sessions[evt.SessionID()]; ok {
		info.result = evt.Reason
	}
}

func (p prometheusProcessor) EventFinish(evt tcpoptlib.EventFinish) {
	info, ok := p.sessions[evt.SessionID()]
	if !ok {
		return
	}

	delete(p.sessions, evt.SessionID())

	p.factory.metricSessions.WithLabelValues(info.result).Inc()
	p.factory.metricSessionDuration.Observe(time.Since(info.startTime).Seconds())
}

func (p prometheusProcessor) Shutdown() {
	if p.factory.pusher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), prometheusPushTimeout)
	defer cancel()

	if err := p.factory.Push(ctx); err != nil {
		p.factory.logger.WarningError("cannot push metrics", err)
	}
}

// PrometheusFactory is a factory of [events.Observer] which collect
// information in a format suitable for Prometheus.
type PrometheusFactory struct {
	registry *prometheus.Registry
	pusher   *push.Pusher
	logger   tcpoptlib.Logger

	metricSessions        *prometheus.CounterVec
	metricSessionDuration prometheus.Histogram
	metricConnectDuration prometheus.Histogram
	metricTraffic         *prometheus.CounterVec
	metricSocketOptions   *prometheus.CounterVec
	metricSocketBuffer    *prometheus.GaugeVec
}

// Make builds a new observer.
func (p *PrometheusFactory) Make() events.Observer {
	return prometheusProcessor{
		sessions: map[string]*sessionInfo{},
		factory:  p,
	}
}

// Gatherer returns a registry with all metrics.
func (p *PrometheusFactory) Gatherer() prometheus.Gatherer {
	return p.registry
}

// Push sends collected metrics to the Pushgateway. It does nothing if
// push URL was not set.
func (p *PrometheusFactory) Push(ctx context.Context) error {
	if p.pusher == nil {
		return nil
	}

	if err := p.pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("cannot push to gateway: %w", err)
	}

	return nil
}

// NewPrometheus builds an events.ObserverFactory which can be used
// to push Prometheus metrics to a Pushgateway.
//
// pushURL can be empty; then metrics are collected but never sent.
func NewPrometheus(metricPrefix, pushURL, job string, logger tcpoptlib.Logger) *PrometheusFactory {
	registry := prometheus.NewPedanticRegistry()
	factory := &PrometheusFactory{
		registry: registry,
		logger:   logger.Named("prometheus"),

		metricSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricPrefix,
			Name:      MetricSessions + "_total",
			Help:      "A number of finished client runs.",
		}, []string{TagResult}),
		metricSessionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricPrefix,
			Name:      MetricSessionDuration + "_seconds",
			Help:      "A time of the whole client run.",
			Buckets:   prometheus.DefBuckets,
		}),
		metricConnectDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricPrefix,
			Name:      MetricConnectDuration + "_seconds",
			Help:      "A time spent to create, tune and connect a socket.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), //nolint: gomnd
		}),
		metricTraffic: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricPrefix,
			Name:      MetricTraffic + "_bytes_total",
			Help:      "Traffic sent and received by client.",
		}, []string{TagDirection}),
		metricSocketOptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricPrefix,
			Name:      MetricSocketOptions + "_total",
			Help:      "A number of applied and rejected advisory socket options.",
		}, []string{TagOption, TagStatus}),
		metricSocketBuffer: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricPrefix,
			Name:      MetricSocketBuffer + "_bytes",
			Help:      "Effective socket buffer size reported by kernel.",
		}, []string{TagOption}),
	}

	registry.MustRegister(factory.metricSessions)
	registry.MustRegister(factory.metricSessionDuration)
	registry.MustRegister(factory.metricConnectDuration)
	registry.MustRegister(factory.metricTraffic)
	registry.MustRegister(factory.metricSocketOptions)
	registry.MustRegister(factory.metricSocketBuffer)

	if pushURL != "" {
		factory.pusher = push.New(pushURL, job).Gatherer(registry)
	}

	return factory
}

// Package stats contains implementations of [events.Observer] which
// report client runs as metrics.
//
// A run is too short to be scraped, so Prometheus metrics are pushed to a
// Pushgateway when event stream shuts down. StatsD metrics are sent as
// they come.
package stats

const (
	// DefaultMetricPrefix defines a default prefix for metric names.
	DefaultMetricPrefix = "tcpopt"

	// DefaultPushJob is a job label used for Pushgateway.
	DefaultPushJob = "tcpopt"

	// DefaultStatsdTagFormat is a tag format used by default.
	DefaultStatsdTagFormat = "influxdb"
)

const (
	MetricSessions        = "sessions"
	MetricSessionDuration = "session_duration"
	MetricConnectDuration = "connect_duration"
	MetricTraffic         = "traffic"
	MetricSocketOptions   = "socket_options"
	MetricSocketBuffer    = "socket_buffer"

	TagResult    = "result"
	TagDirection = "direction"
	TagOption    = "option"
	TagStatus    = "status"

	TagResultOK         = "ok"
	TagResultNoResponse = "no_response"

	TagDirectionSent     = "sent"
	TagDirectionReceived = "received"

	TagStatusApplied  = "applied"
	TagStatusRejected = "rejected"
)

func getDirection(isRead bool) string {
	if isRead {
		return TagDirectionReceived
	}

	return TagDirectionSent
}

func getOptionStatus(err error) string {
	if err != nil {
		return TagStatusRejected
	}

	return TagStatusApplied
}

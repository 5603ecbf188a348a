package tcpoptlib

import (
	"net"
	"time"
)

type eventBase struct {
	sessionID string
	timestamp time.Time
}

// SessionID returns an ID of the client run this event belongs to.
func (e eventBase) SessionID() string {
	return e.sessionID
}

// Timestamp return a time when this event was generated.
func (e eventBase) Timestamp() time.Time {
	return e.timestamp
}

// EventStart is emitted when client starts a new run.
type EventStart struct {
	eventBase

	// Endpoint is an address client is going to connect to.
	Endpoint string
}

// EventConnected is emitted when TCP connection is established.
type EventConnected struct {
	eventBase

	// RemoteIP is an IP address of the peer.
	RemoteIP net.IP

	// Duration is a time spent in dial, including socket creation and
	// tuning.
	Duration time.Duration
}

// EventSocketOption is emitted for each advisory socket option applied to
// a connection, accepted or not.
type EventSocketOption struct {
	eventBase

	Option SocketOption
}

// EventTraffic is emitted when we read/write some bytes on a connection.
type EventTraffic struct {
	eventBase

	// Traffic is a count of bytes which were transmitted.
	Traffic uint

	// IsRead defines if we _read_ or _write_ to connection.
	IsRead bool
}

// EventNoResponse is emitted when peer closed a connection or read has
// failed before any byte arrived.
type EventNoResponse struct {
	eventBase
}

// EventFailure is emitted when a run is aborted by a fatal error.
type EventFailure struct {
	eventBase

	// Reason is a short machine-friendly name of the failed step:
	// stack, socket or connect.
	Reason string
}

// EventFinish is emitted when client is done with a run.
type EventFinish struct {
	eventBase
}

// NewEventStart creates a new EventStart event.
func NewEventStart(sessionID, endpoint string) EventStart {
	return EventStart{
		eventBase: eventBase{
			timestamp: time.Now(),
			sessionID: sessionID,
		},
		Endpoint: endpoint,
	}
}

// NewEventConnected creates a new EventConnected event.
func NewEventConnected(sessionID string, remoteIP net.IP, duration time.Duration) EventConnected {
	return EventConnected{
		eventBase: eventBase{
			timestamp: time.Now(),
			sessionID: sessionID,
		},
		RemoteIP: remoteIP,
		Duration: duration,
	}
}

// NewEventSocketOption creates a new EventSocketOption event.
func NewEventSocketOption(sessionID string, option SocketOption) EventSocketOption {
	return EventSocketOption{
		eventBase: eventBase{
			timestamp: time.Now(),
			sessionID: sessionID,
		},
		Option: option,
	}
}

// NewEventTraffic creates a new EventTraffic event.
func NewEventTraffic(sessionID string, traffic uint, isRead bool) EventTraffic {
	return EventTraffic{
		eventBase: eventBase{
			timestamp: time.Now(),
			sessionID: sessionID,
		},
		Traffic: traffic,
		IsRead:  isRead,
	}
}

// NewEventNoResponse creates a new EventNoResponse event.
func NewEventNoResponse(sessionID string) EventNoResponse {
	return EventNoResponse{
		eventBase: eventBase{
			timestamp: time.Now(),
			sessionID: sessionID,
		},
	}
}

// NewEventFailure creates a new EventFailure event.
func NewEventFailure(sessionID, reason string) EventFailure {
	return EventFailure{
		eventBase: eventBase{
			timestamp: time.Now(),
			sessionID: sessionID,
		},
		Reason: reason,
	}
}

// NewEventFinish creates a new EventFinish event.
func NewEventFinish(sessionID string) EventFinish {
	return EventFinish{
		eventBase: eventBase{
			timestamp: time.Now(),
			sessionID: sessionID,
		},
	}
}

package events

import "github.com/elearning/tcpopt/tcpoptlib"

// Observer is an instance which listens to the events of a client run.
type Observer interface {
	EventStart(tcpoptlib.EventStart)
	EventConnected(tcpoptlib.EventConnected)
	EventSocketOption(tcpoptlib.EventSocketOption)
	EventTraffic(tcpoptlib.EventTraffic)
	EventNoResponse(tcpoptlib.EventNoResponse)
	EventFailure(tcpoptlib.EventFailure)
	EventFinish(tcpoptlib.EventFinish)

	Shutdown()
}

// ObserverFactory creates a new observer.
type ObserverFactory func() Observer

type noopObserver struct{}

func (n noopObserver) EventStart(_ tcpoptlib.EventStart)               {}
func (n noopObserver) EventConnected(_ tcpoptlib.EventConnected)       {}
func (n noopObserver) EventSocketOption(_ tcpoptlib.EventSocketOption) {}
func (n noopObserver) EventTraffic(_ tcpoptlib.EventTraffic)           {}
func (n noopObserver) EventNoResponse(_ tcpoptlib.EventNoResponse)     {}
func (n noopObserver) EventFailure(_ tcpoptlib.EventFailure)           {}
func (n noopObserver) EventFinish(_ tcpoptlib.EventFinish)             {}
func (n noopObserver) Shutdown()                                       {}

// NewNoopObserver returns an observer which does nothing.
func NewNoopObserver() Observer {
	return noopObserver{}
}

// Package events contains a default implementation of
// [tcpoptlib.EventStream] and interfaces of observers.
package events

import (
	"context"
	"sync"

	"github.com/elearning/tcpopt/tcpoptlib"
)

// EventStream is a default implementation of the [tcpoptlib.EventStream]
// interface.
//
// Client routine is single-threaded, so the stream has no goroutines of
// its own: every event is delivered to each observer before Send returns.
// Observers get events in the order they were sent.
type EventStream struct {
	mutex     sync.Mutex
	observers []Observer
	closed    bool
}

// Send delivers event to all observers.
func (e *EventStream) Send(ctx context.Context, evt tcpoptlib.Event) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.closed {
		return
	}

	for _, observer := range e.observers {
		dispatch(observer, evt)
	}
}

// Shutdown stops an event stream and shuts every observer down. It is
// safe to call it many times.
func (e *EventStream) Shutdown() {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.closed {
		return
	}

	e.closed = true

	for _, observer := range e.observers {
		observer.Shutdown()
	}
}

// NewEventStream builds a new default event stream.
//
// If you give an empty array of observers, then NoopObserver is going
// to be used.
func NewEventStream(observerFactories []ObserverFactory) *EventStream {
	if len(observerFactories) == 0 {
		observerFactories = append(observerFactories, NewNoopObserver)
	}

	rv := &EventStream{
		observers: make([]Observer, 0, len(observerFactories)),
	}

	for _, factory := range observerFactories {
		rv.observers = append(rv.observers, factory())
	}

	return rv
}

func dispatch(observer Observer, evt tcpoptlib.Event) { //nolint: cyclop
	switch typedEvt := evt.(type) {
	case tcpoptlib.EventStart:
		observer.EventStart(typedEvt)
	case tcpoptlib.EventConnected:
		observer.EventConnected(typedEvt)
	case tcpoptlib.EventSocketOption:
		observer.EventSocketOption(typedEvt)
	case tcpoptlib.EventTraffic:
		observer.EventTraffic(typedEvt)
	case tcpoptlib.EventNoResponse:
		observer.EventNoResponse(typedEvt)
	case tcpoptlib.EventFailure:
		observer.EventFailure(typedEvt)
	case tcpoptlib.EventFinish:
		observer.EventFinish(typedEvt)
	}
}

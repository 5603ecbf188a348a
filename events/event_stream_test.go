package events_test

import (
	"context"
	"net"
	"testing"

	"github.com/elearning/tcpopt/events"
	"github.com/elearning/tcpopt/tcpoptlib"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ObserverMock struct {
	mock.Mock
}

func (o *ObserverMock) EventStart(evt tcpoptlib.EventStart)               { o.Called(evt) }
func (o *ObserverMock) EventConnected(evt tcpoptlib.EventConnected)       { o.Called(evt) }
func (o *ObserverMock) EventSocketOption(evt tcpoptlib.EventSocketOption) { o.Called(evt) }
func (o *ObserverMock) EventTraffic(evt tcpoptlib.EventTraffic)           { o.Called(evt) }
func (o *ObserverMock) EventNoResponse(evt tcpoptlib.EventNoResponse)     { o.Called(evt) }
func (o *ObserverMock) EventFailure(evt tcpoptlib.EventFailure)           { o.Called(evt) }
func (o *ObserverMock) EventFinish(evt tcpoptlib.EventFinish)             { o.Called(evt) }
func (o *ObserverMock) Shutdown()                                         { o.Called() }

type EventStreamTestSuite struct {
	suite.Suite

	ctx       context.Context
	observer1 *ObserverMock
	observer2 *ObserverMock
	stream    *events.EventStream
}

func (suite *EventStreamTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.observer1 = &ObserverMock{}
	suite.observer2 = &ObserverMock{}
	suite.stream = events.NewEventStream([]events.ObserverFactory{
		func() events.Observer { return suite.observer1 },
		func() events.Observer { return suite.observer2 },
	})
}

func (suite *EventStreamTestSuite) TearDownTest() {
	suite.observer1.AssertExpectations(suite.T())
	suite.observer2.AssertExpectations(suite.T())
}

func (suite *EventStreamTestSuite) TestEveryObserverGetsEveryEvent() {
	evts := []tcpoptlib.Event{
		tcpoptlib.NewEventStart("sid", "127.0.0.1:9000"),
		tcpoptlib.NewEventConnected("sid", net.ParseIP("127.0.0.1"), 0),
		tcpoptlib.NewEventSocketOption("sid", tcpoptlib.SocketOption{Name: "TCP_NODELAY"}),
		tcpoptlib.NewEventTraffic("sid", 10, false),
		tcpoptlib.NewEventNoResponse("sid"),
		tcpoptlib.NewEventFailure("sid", tcpoptlib.FailureConnect),
		tcpoptlib.NewEventFinish("sid"),
	}
	methods := []string{
		"EventStart",
		"EventConnected",
		"EventSocketOption",
		"EventTraffic",
		"EventNoResponse",
		"EventFailure",
		"EventFinish",
	}

	for i, evt := range evts {
		suite.observer1.On(methods[i], evt).Once()
		suite.observer2.On(methods[i], evt).Once()
	}

	for _, evt := range evts {
		suite.stream.Send(suite.ctx, evt)
	}
}

func (suite *EventStreamTestSuite) TestShutdownOnce() {
	suite.observer1.On("Shutdown").Once()
	suite.observer2.On("Shutdown").Once()

	suite.stream.Shutdown()
	suite.stream.Shutdown()
}

func (suite *EventStreamTestSuite) TestNoEventsAfterShutdown() {
	suite.observer1.On("Shutdown").Once()
	suite.observer2.On("Shutdown").Once()

	suite.stream.Shutdown()
	suite.stream.Send(suite.ctx, tcpoptlib.NewEventFinish("sid"))

	suite.observer1.AssertNotCalled(suite.T(), "EventFinish", mock.Anything)
}

func TestEventStream(t *testing.T) {
	t.Parallel()
	suite.Run(t, &EventStreamTestSuite{})
}

func TestEventStreamNoObservers(t *testing.T) {
	t.Parallel()

	stream := events.NewEventStream(nil)
	stream.Send(context.Background(), tcpoptlib.NewEventFinish("sid"))
	stream.Shutdown()
}

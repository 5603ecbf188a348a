package tcpoptlib

import "context"

// connTraffic reports every successful read and write to the event stream.
type connTraffic struct {
	Conn

	ctx       context.Context
	sessionID string
	stream    EventStream
}

func (c connTraffic) Read(b []byte) (int, error) {
	n, err := c.Conn.Read(b)

	if n > 0 {
		c.stream.Send(c.ctx, NewEventTraffic(c.sessionID, uint(n), true))
	}

	return n, err //nolint: wrapcheck
}

func (c connTraffic) Write(b []byte) (int, error) {
	n, err := c.Conn.Write(b)

	if n > 0 {
		c.stream.Send(c.ctx, NewEventTraffic(c.sessionID, uint(n), false))
	}

	return n, err //nolint: wrapcheck
}

func newConnTraffic(ctx context.Context, conn Conn, sessionID string, stream EventStream) connTraffic {
	return connTraffic{
		Conn:      conn,
		ctx:       ctx,
		sessionID: sessionID,
		stream:    stream,
	}
}

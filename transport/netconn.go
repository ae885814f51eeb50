// File: transport/netconn.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Socket adapts a net.Conn to api.Socket: RecvInto/Send each hand their
// operation to its own goroutine and return immediately, posting the
// completion into the supplied EventSink once the blocking net.Conn call
// returns. This is the real-transport twin of fake.Socket, giving a
// Handshake the same non-blocking shape spec.md §6 requires whether it
// is driving a real connection or a test double.

package transport

import (
	"net"

	"github.com/momentics/spws/api"
)

// Socket wraps a net.Conn as an api.Socket.
type Socket struct {
	conn net.Conn
	sink api.EventSink
}

// NewSocket adapts conn, posting completions into sink.
func NewSocket(conn net.Conn, sink api.EventSink) *Socket {
	return &Socket{conn: conn, sink: sink}
}

// RecvInto implements api.Socket. The read runs on its own goroutine so
// the caller's event loop is never blocked by it; a short read is
// retried internally until exactly n bytes have landed or the
// connection errors.
func (s *Socket) RecvInto(buf []byte, offset, n int) error {
	go func() {
		got := 0
		for got < n {
			m, err := s.conn.Read(buf[offset+got : offset+n])
			got += m
			if err != nil {
				s.sink.Push(api.HandshakeEvent{Source: api.SourceSocket, Type: api.EvSocketError, Err: err})
				return
			}
		}
		s.sink.Push(api.HandshakeEvent{Source: api.SourceSocket, Type: api.EvReceived, N: got})
	}()
	return nil
}

// Send implements api.Socket.
func (s *Socket) Send(p []byte) error {
	go func() {
		n, err := s.conn.Write(p)
		if err != nil {
			s.sink.Push(api.HandshakeEvent{Source: api.SourceSocket, Type: api.EvSocketError, Err: err})
			return
		}
		s.sink.Push(api.HandshakeEvent{Source: api.SourceSocket, Type: api.EvSent, N: n})
	}()
	return nil
}

// Close implements api.Socket.
func (s *Socket) Close() error {
	return s.conn.Close()
}

// Conn exposes the underlying net.Conn, e.g. for tuneConn or for the
// parent to promote the connection to the framed data path after OK.
func (s *Socket) Conn() net.Conn {
	return s.conn
}

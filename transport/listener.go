// File: transport/listener.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Listener runs a plain TCP accept loop and hands each accepted
// connection to a concurrency.Dispatcher as a "start this handshake" job,
// rather than spawning an unbounded goroutine per connection.

package transport

import (
	"log"
	"net"

	"github.com/momentics/spws/concurrency"
)

// Listener accepts TCP connections and dispatches a caller-supplied job
// for each one through a bounded worker pool.
type Listener struct {
	ln         net.Listener
	dispatcher *concurrency.Dispatcher
}

// NewListener binds addr and wires accepted connections through
// dispatcher. The caller owns dispatcher's lifetime.
func NewListener(addr string, dispatcher *concurrency.Dispatcher) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Listener{ln: ln, dispatcher: dispatcher}, nil
}

// Addr returns the listener's bound address.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Close stops accepting new connections.
func (l *Listener) Close() error { return l.ln.Close() }

// Serve accepts connections until Close is called, calling onAccept for
// each tuned connection on a dispatcher worker goroutine (not the accept
// goroutine itself, so a slow handshake start never stalls new accepts).
func (l *Listener) Serve(onAccept func(conn net.Conn)) error {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			return err
		}
		if err := tuneConn(conn); err != nil {
			log.Printf("transport: tuneConn: %v", err)
		}
		c := conn
		if !l.dispatcher.Submit(func() { onAccept(c) }) {
			log.Printf("transport: dispatcher closed, dropping connection from %v", c.RemoteAddr())
			c.Close()
		}
	}
}

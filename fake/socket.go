// File: fake/socket.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Socket is an in-memory api.Socket test double. It honors the same
// non-blocking contract a real transport.Socket does: RecvInto and Send
// return immediately, completions are posted asynchronously through the
// EventSink supplied at construction. Feed lets a test deliver bytes in
// arbitrary fragments, which is what exercises the handshake's RECV_MORE
// growth logic without a real network round trip.

package fake

import (
	"sync"

	"github.com/momentics/spws/api"
)

type pendingRecv struct {
	buf    []byte
	offset int
	n      int
}

// Socket is a controllable, mutex-protected api.Socket fake.
type Socket struct {
	mu      sync.Mutex
	sink    api.EventSink
	inbound []byte
	pending *pendingRecv

	sent        [][]byte
	closed      bool
	forceRecvErr bool
	forceSendErr bool
}

// NewSocket creates a fake socket posting completions into sink.
func NewSocket(sink api.EventSink) *Socket {
	return &Socket{sink: sink}
}

// Feed appends data to the socket's inbound stream and satisfies any
// outstanding RecvInto request once enough bytes have accumulated.
func (s *Socket) Feed(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inbound = append(s.inbound, data...)
	s.tryDeliver()
}

func (s *Socket) tryDeliver() {
	if s.pending == nil || len(s.inbound) < s.pending.n {
		return
	}
	p := s.pending
	copy(p.buf[p.offset:p.offset+p.n], s.inbound[:p.n])
	s.inbound = s.inbound[p.n:]
	s.pending = nil
	s.sink.Push(api.HandshakeEvent{Source: api.SourceSocket, Type: api.EvReceived, N: p.n})
}

// RecvInto implements api.Socket.
func (s *Socket) RecvInto(buf []byte, offset, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forceRecvErr {
		s.sink.Push(api.HandshakeEvent{Source: api.SourceSocket, Type: api.EvSocketError})
		return nil
	}
	s.pending = &pendingRecv{buf: buf, offset: offset, n: n}
	s.tryDeliver()
	return nil
}

// Send implements api.Socket.
func (s *Socket) Send(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forceSendErr {
		s.sink.Push(api.HandshakeEvent{Source: api.SourceSocket, Type: api.EvSocketError})
		return nil
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	s.sent = append(s.sent, cp)
	s.sink.Push(api.HandshakeEvent{Source: api.SourceSocket, Type: api.EvSent, N: len(p)})
	return nil
}

// Close implements api.Socket.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// SentMessages returns every buffer previously accepted by Send, in order.
func (s *Socket) SentMessages() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.sent))
	copy(out, s.sent)
	return out
}

// Closed reports whether Close has been called.
func (s *Socket) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// SetRecvError arranges for the next RecvInto to post EvSocketError
// instead of completing normally.
func (s *Socket) SetRecvError(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forceRecvErr = on
}

// SetSendError arranges for the next Send to post EvSocketError instead
// of completing normally.
func (s *Socket) SetSendError(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forceSendErr = on
}

// InjectError posts an unsolicited EvSocketError, simulating an
// out-of-band transport failure.
func (s *Socket) InjectError() {
	s.sink.Push(api.HandshakeEvent{Source: api.SourceSocket, Type: api.EvSocketError})
}

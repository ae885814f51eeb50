// File: concurrency/eventloop.go
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// EventLoop is the single-threaded cooperative driver spec.md §5 assumes:
// a Handshake instance is run on exactly one logical execution context
// that also owns its socket and timer, and no operation inside the
// handshake blocks that context. Exactly one handshake ever registers
// itself as the loop's handler (spec.md §5: "one handshake per loop"),
// so unlike a reactor fanning events out to many concurrently-registered
// handlers, there is nothing here to batch or fan out — a single
// blocking channel receive already gives the handler total event
// ordering without polling or backoff.

package concurrency

import (
	"sync/atomic"

	"github.com/momentics/spws/api"
)

type Event = api.Event

// EventHandler processes a single Event synchronously, on the loop's own
// goroutine.
type EventHandler interface {
	HandleEvent(ev Event)
}

// handlerBox lets the loop's single handler slot live in an atomic.Value:
// atomic.Value panics if Store ever sees a bare nil interface, so the
// "no handler registered" state is a boxed zero value instead.
type handlerBox struct{ h EventHandler }

// EventLoop drains its inbox and dispatches each event to the one
// registered handler, in arrival order.
type EventLoop struct {
	handler atomic.Value // handlerBox
	inbox   chan Event
	quitCh  chan struct{}
	doneCh  chan struct{}
	running atomic.Bool
}

// NewEventLoop creates a loop with the given inbox capacity.
func NewEventLoop(inboxCapacity int) *EventLoop {
	el := &EventLoop{
		inbox:  make(chan Event, inboxCapacity),
		quitCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	el.handler.Store(handlerBox{})
	return el
}

// RegisterHandler sets the loop's sole handler, replacing any previous one.
func (el *EventLoop) RegisterHandler(h EventHandler) {
	el.handler.Store(handlerBox{h: h})
}

// UnregisterHandler clears the handler if h is the one currently
// registered; a mismatched h is ignored.
func (el *EventLoop) UnregisterHandler(h EventHandler) {
	if box := el.handler.Load().(handlerBox); box.h == h {
		el.handler.Store(handlerBox{})
	}
}

// Run drains and dispatches events until Stop is called. Intended to be
// run on its own goroutine; returns once stopped.
func (el *EventLoop) Run() {
	if !el.running.CompareAndSwap(false, true) {
		return
	}
	defer func() {
		close(el.doneCh)
		el.running.Store(false)
	}()

	for {
		select {
		case <-el.quitCh:
			return
		case ev := <-el.inbox:
			if box := el.handler.Load().(handlerBox); box.h != nil {
				box.h.HandleEvent(ev)
			}
		}
	}
}

// Pending reports the approximate number of events buffered in the inbox.
func (el *EventLoop) Pending() int { return len(el.inbox) }

// Push enqueues ev without blocking; returns false if the inbox is full.
func (el *EventLoop) Push(ev Event) bool {
	select {
	case el.inbox <- ev:
		return true
	default:
		return false
	}
}

// Stop requests the loop to exit and waits for it to actually return.
// Safe to call from any goroutine other than the loop's own.
func (el *EventLoop) Stop() {
	select {
	case <-el.quitCh:
	default:
		close(el.quitCh)
	}
	if el.running.Load() {
		<-el.doneCh
	}
}

// File: concurrency/timer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// OneShotTimer implements api.Timer on top of time.AfterFunc. It is the
// default timeout collaborator a Handshake arms on entering its first
// working state (spec.md §3 invariant 5): Start schedules exactly one
// EvTimeout, Stop cancels it and always posts exactly one EvStopped,
// satisfying the "Stopped delivered exactly once" guarantee the FSM's
// stopping sub-states rely on before publishing a terminal result.

package concurrency

import (
	"sync/atomic"
	"time"

	"github.com/momentics/spws/api"
)

type OneShotTimer struct {
	sink    api.EventSink
	timer   *time.Timer
	fired   atomic.Bool
	stopped atomic.Bool
}

// NewOneShotTimer creates a timer that posts HandshakeEvent values to sink.
func NewOneShotTimer(sink api.EventSink) *OneShotTimer {
	return &OneShotTimer{sink: sink}
}

func (t *OneShotTimer) Start(ms int) {
	t.timer = time.AfterFunc(time.Duration(ms)*time.Millisecond, func() {
		if t.fired.CompareAndSwap(false, true) {
			t.sink.Push(api.HandshakeEvent{Source: api.SourceTimer, Type: api.EvTimeout})
		}
	})
}

func (t *OneShotTimer) Stop() {
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.stopped.CompareAndSwap(false, true) {
		t.sink.Push(api.HandshakeEvent{Source: api.SourceTimer, Type: api.EvStopped})
	}
}

func (t *OneShotTimer) IsIdle() bool {
	return t.stopped.Load()
}

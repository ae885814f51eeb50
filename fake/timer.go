// File: fake/timer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Timer is an in-memory api.Timer test double. Unlike
// concurrency.OneShotTimer it never schedules a real time.Timer: Fire
// must be called explicitly, which is what lets a test exercise the S6
// timeout scenario deterministically instead of sleeping 5 seconds.

package fake

import (
	"sync"

	"github.com/momentics/spws/api"
)

// Timer is a controllable, mutex-protected api.Timer fake.
type Timer struct {
	mu      sync.Mutex
	sink    api.EventSink
	started bool
	ms      int
	stopped bool
}

// NewTimer creates a fake timer posting completions into sink.
func NewTimer(sink api.EventSink) *Timer {
	return &Timer{sink: sink}
}

// Start implements api.Timer.
func (t *Timer) Start(ms int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.started = true
	t.ms = ms
}

// Stop implements api.Timer.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	t.sink.Push(api.HandshakeEvent{Source: api.SourceTimer, Type: api.EvStopped})
}

// IsIdle implements api.Timer.
func (t *Timer) IsIdle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// Fire posts a timeout as though the armed duration had elapsed. A test
// calls this directly rather than waiting out a real timeout.
func (t *Timer) Fire() {
	t.sink.Push(api.HandshakeEvent{Source: api.SourceTimer, Type: api.EvTimeout})
}

// Started reports whether Start has been called, and with what duration.
func (t *Timer) Started() (bool, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started, t.ms
}

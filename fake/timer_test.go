package fake

import (
	"testing"

	"github.com/momentics/spws/api"
)

func TestTimerFireAndStop(t *testing.T) {
	sink := newCollectingSink()
	timer := NewTimer(sink)

	timer.Start(5000)
	started, ms := timer.Started()
	if !started || ms != 5000 {
		t.Fatalf("Started() = %v, %d", started, ms)
	}

	timer.Fire()
	ev := <-sink.ch
	if ev.Type != api.EvTimeout {
		t.Fatalf("expected EvTimeout, got %v", ev.Type)
	}

	timer.Stop()
	ev = <-sink.ch
	if ev.Type != api.EvStopped {
		t.Fatalf("expected EvStopped, got %v", ev.Type)
	}
	if !timer.IsIdle() {
		t.Fatal("expected IsIdle() true after Stop")
	}

	// Second Stop must not post a second EvStopped.
	timer.Stop()
	select {
	case ev := <-sink.ch:
		t.Fatalf("unexpected second event: %+v", ev)
	default:
	}
}

// File: concurrency/dispatcher.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Dispatcher fans accepted connections out to a small, fixed pool of
// worker goroutines, each of which runs the job (typically "build and
// start a server Handshake, then wait for its own EventLoop to finish")
// to completion before taking the next one. It is a narrower descendant
// of the teacher's task executor: only Submit/Close survive, because a
// handshake subsystem has no need for dynamic resizing or a lock-free
// per-worker queue, but it is still a queue feeding worker goroutines,
// not a goroutine-per-connection free-for-all.

package concurrency

import (
	"sync"

	"github.com/eapache/queue"
)

// Job is a unit of dispatchable work, e.g. driving one accepted
// connection's server-side handshake to completion.
type Job func()

// Dispatcher is a bounded worker pool backed by a FIFO job queue.
type Dispatcher struct {
	mu     sync.Mutex
	cond   *sync.Cond
	jobs   *queue.Queue
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher starts numWorkers goroutines pulling from a shared queue.
func NewDispatcher(numWorkers int) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	d := &Dispatcher{jobs: queue.New()}
	d.cond = sync.NewCond(&d.mu)
	for i := 0; i < numWorkers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Submit enqueues a job for the next free worker. Returns false once the
// dispatcher has been closed.
func (d *Dispatcher) Submit(j Job) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	d.jobs.Add(j)
	d.cond.Signal()
	return true
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		for d.jobs.Length() == 0 && !d.closed {
			d.cond.Wait()
		}
		if d.jobs.Length() == 0 && d.closed {
			d.mu.Unlock()
			return
		}
		j := d.jobs.Remove().(Job)
		d.mu.Unlock()

		j()
	}
}

// Close stops accepting new jobs and waits for queued jobs to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.cond.Broadcast()
	d.mu.Unlock()
	d.wg.Wait()
}

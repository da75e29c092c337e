// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: browse/loop.go
// Summary: Single-goroutine task loop that owns all widget mutation.

package browse

import "sync"

// Loop is a FIFO unit-of-work queue consumed by exactly one goroutine, the
// GUI goroutine. Every widget mutation runs here; callers submit work from
// any goroutine and never block. Submission order is preserved globally,
// which is stronger than the per-caller ordering the facade promises.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	stopped bool

	wake chan struct{}
	quit chan struct{}
	once sync.Once
}

// NewLoop creates a loop. Nothing runs until Run is called.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
	}
}

// Submit enqueues a unit of work. It never blocks; once the loop has been
// stopped the work is dropped silently, which is the accepted degraded mode
// during shutdown. Returns whether the work was accepted.
func (l *Loop) Submit(fn func()) bool {
	if fn == nil {
		return false
	}
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run consumes units of work until Stop is called. Accepted work always runs
// to completion; there is no cancellation once a unit is enqueued.
func (l *Loop) Run() {
	for {
		select {
		case <-l.quit:
			l.drain()
			return
		case <-l.wake:
			l.drain()
		}
	}
}

func (l *Loop) drain() {
	for {
		l.mu.Lock()
		batch := l.pending
		l.pending = nil
		l.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			fn()
		}
	}
}

// Stop rejects further submissions and lets Run finish the accepted backlog.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()
	l.once.Do(func() { close(l.quit) })
}

// Flush blocks until everything submitted before it has executed. Returns
// immediately when the loop is already stopped. Intended for tests and
// shutdown barriers.
func (l *Loop) Flush() {
	done := make(chan struct{})
	if !l.Submit(func() { close(done) }) {
		return
	}
	<-done
}

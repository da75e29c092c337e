// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: browse/events.go
// Summary: Semantic events and the per-category listener registry.

package browse

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// EventType identifies a semantic event category.
type EventType int

const (
	// LinkClick fires when a press and release resolve to the same anchor.
	LinkClick EventType = iota + 1
	// TextChange fires after the widget's document content mutates.
	TextChange
	// MousePress and MouseRelease share one listener registration; the
	// dispatched event's Type tells them apart.
	MousePress
	MouseRelease
)

func (t EventType) String() string {
	switch t {
	case LinkClick:
		return "linkclick"
	case TextChange:
		return "textchange"
	case MousePress:
		return "mousepress"
	case MouseRelease:
		return "mouserelease"
	}
	return "unknown"
}

// Event is an immutable record of one semantic notification. For LinkClick
// it carries the resolved anchor target; mouse events carry position,
// button, and modifier state.
type Event struct {
	Type      EventType
	URL       string
	Button    tcell.ButtonMask
	X, Y      int
	Modifiers tcell.ModMask
	When      time.Time
}

// listenerEntry holds exactly one registered callback shape for a category.
type listenerEntry struct {
	detailed func(Event)
	plain    func()
}

func (e listenerEntry) empty() bool {
	return e.detailed == nil && e.plain == nil
}

// listenerRegistry routes events to at most one listener per category.
// Registration replaces, removal is idempotent. Firing happens on the GUI
// loop goroutine; listeners must not block.
type listenerRegistry struct {
	mu      sync.RWMutex
	entries map[EventType]listenerEntry
}

func (r *listenerRegistry) set(t EventType, e listenerEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[EventType]listenerEntry)
	}
	r.entries[t] = e
}

func (r *listenerRegistry) remove(t EventType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, t)
}

// accepting reports whether a listener is registered for the category.
func (r *listenerRegistry) accepting(t EventType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.entries[t].empty()
}

// fire dispatches the event to the registered listener, if any.
func (r *listenerRegistry) fire(ev Event) {
	r.mu.RLock()
	entry := r.entries[ev.Type]
	r.mu.RUnlock()

	switch {
	case entry.detailed != nil:
		entry.detailed(ev)
	case entry.plain != nil:
		entry.plain()
	}
}

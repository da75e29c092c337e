// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/core/uimanager.go
// Summary: Owns the widget list, routes input, and composes the cell buffer.

package core

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// UIManager owns a flat widget list (later entries draw on top) and composes
// them into a cell buffer. Input routing implements click-to-focus and mouse
// capture between press and release.
type UIManager struct {
	mu      sync.Mutex // protects widgets, focus, capture, buffer, size
	dirtyMu sync.Mutex // protects dirty region and notifier
	W, H    int
	widgets []Widget
	bgStyle tcell.Style
	focused Widget
	capture Widget
	buf     [][]Cell

	dirty    Rect
	notifier chan<- bool
}

// NewUIManager creates an empty manager with the given background style.
func NewUIManager(bg tcell.Style) *UIManager {
	return &UIManager{bgStyle: bg}
}

// SetRefreshNotifier installs a channel that receives a best-effort signal
// whenever a region is invalidated.
func (u *UIManager) SetRefreshNotifier(ch chan<- bool) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.notifier = ch
}

// Resize sets the compose surface size and invalidates everything.
func (u *UIManager) Resize(w, h int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	u.W, u.H = w, h
	u.buf = nil
	u.InvalidateAll()
}

// AddWidget appends a widget on top of the existing ones.
func (u *UIManager) AddWidget(w Widget) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.widgets = append(u.widgets, w)
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(u.Invalidate)
	}
	u.InvalidateAll()
}

// Focus moves keyboard focus to w if it accepts focus.
func (u *UIManager) Focus(w Widget) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.focusLocked(w)
}

func (u *UIManager) focusLocked(w Widget) {
	if w == nil || !w.Focusable() || u.focused == w {
		return
	}
	if u.focused != nil {
		u.focused.Blur()
	}
	u.focused = w
	u.focused.Focus()
}

// HandleKey offers the event to the focused widget.
func (u *UIManager) HandleKey(ev *tcell.EventKey) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.focused != nil && u.focused.HandleKey(ev) {
		u.InvalidateAll()
		return true
	}
	return false
}

// HandleMouse routes mouse events: focus on press, capture until release.
func (u *UIManager) HandleMouse(ev *tcell.EventMouse) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	x, y := ev.Position()
	wasDown := u.capture != nil
	nowDown := ev.Buttons()&tcell.Button1 != 0

	// Press: focus and capture the topmost widget under the pointer.
	if !wasDown && nowDown {
		w := u.topmostAtLocked(x, y)
		if w == nil {
			return false
		}
		u.focusLocked(w)
		u.capture = w
		if mw, ok := w.(MouseAware); ok {
			_ = mw.HandleMouse(ev)
		}
		u.InvalidateAll()
		return true
	}

	// While captured, the capture target sees every event until release.
	if u.capture != nil {
		if mw, ok := u.capture.(MouseAware); ok {
			_ = mw.HandleMouse(ev)
		}
		if wasDown && !nowDown {
			u.capture = nil
		}
		u.InvalidateAll()
		return true
	}

	// Wheel events go to whatever is under the pointer.
	if ev.Buttons()&(tcell.WheelUp|tcell.WheelDown) != 0 {
		if w := u.topmostAtLocked(x, y); w != nil {
			if mw, ok := w.(MouseAware); ok && mw.HandleMouse(ev) {
				u.InvalidateAll()
				return true
			}
		}
	}
	return false
}

func (u *UIManager) topmostAtLocked(x, y int) Widget {
	for i := len(u.widgets) - 1; i >= 0; i-- {
		if u.widgets[i].HitTest(x, y) {
			return u.widgets[i]
		}
	}
	return nil
}

// Invalidate marks a region dirty. Safe to call from any goroutine.
func (u *UIManager) Invalidate(r Rect) {
	if r.Empty() {
		return
	}
	u.dirtyMu.Lock()
	u.dirty = u.dirty.Union(r)
	u.notifyLocked()
	u.dirtyMu.Unlock()
}

// InvalidateAll marks the whole surface dirty.
func (u *UIManager) InvalidateAll() {
	u.dirtyMu.Lock()
	u.dirty = Rect{X: 0, Y: 0, W: u.W, H: u.H}
	u.notifyLocked()
	u.dirtyMu.Unlock()
}

func (u *UIManager) notifyLocked() {
	if u.notifier == nil {
		return
	}
	select {
	case u.notifier <- true:
	default:
	}
}

func (u *UIManager) ensureBufferLocked() {
	if u.buf != nil && len(u.buf) == u.H && (u.H == 0 || len(u.buf[0]) == u.W) {
		return
	}
	u.buf = make([][]Cell, u.H)
	for y := range u.buf {
		row := make([]Cell, u.W)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: u.bgStyle}
		}
		u.buf[y] = row
	}
}

// Render recomposes the dirty region and returns the framebuffer. Callers
// must treat the returned buffer as read-only.
func (u *UIManager) Render() [][]Cell {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.ensureBufferLocked()

	u.dirtyMu.Lock()
	clip := u.dirty.Intersect(Rect{X: 0, Y: 0, W: u.W, H: u.H})
	u.dirty = Rect{}
	u.dirtyMu.Unlock()

	if clip.Empty() {
		clip = Rect{X: 0, Y: 0, W: u.W, H: u.H}
	}

	p := NewPainter(u.buf, clip)
	p.Fill(clip, ' ', u.bgStyle)
	for _, w := range u.widgets {
		wx, wy := w.Position()
		ww, wh := w.Size()
		if !clip.Intersect(Rect{X: wx, Y: wy, W: ww, H: wh}).Empty() {
			w.Draw(p)
		}
	}
	return u.buf
}

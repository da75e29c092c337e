// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: browse/pane.go
// Summary: Thread-safe facade applications hold; marshals widget mutation
// onto the GUI loop and exposes listener registration.

package browse

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texbrowse/content"
)

// Pane is the long-lived logical handle for a browsable text pane. Methods
// may be called from any goroutine: mutations are submitted to the GUI loop
// as fire-and-forget units of work, reads go straight to the widget. A Pane
// owns exactly one adapter for its lifetime; Detach severs it.
type Pane struct {
	loop      *Loop
	widget    Browser
	adapter   *adapter
	listeners listenerRegistry
	detached  atomic.Bool

	mu          sync.RWMutex
	contentType string
	pageURL     string
}

// NewPane wraps widget in a facade bound to loop. If source is non-empty it
// is loaded immediately: strings with a scheme are treated as URLs,
// anything else as a filesystem path.
func NewPane(loop *Loop, widget Browser, source string) *Pane {
	p := &Pane{loop: loop, widget: widget}
	p.adapter = newAdapter(p, widget)
	p.submit(p.adapter.attach)
	if source != "" {
		if strings.Contains(source, "://") {
			p.LoadURL(source)
		} else {
			p.LoadFile(source)
		}
	}
	return p
}

// submit marshals a mutation onto the GUI loop. After Detach, or once the
// loop has stopped, the work is dropped silently: tolerating shutdown races
// beats crashing a teardown path.
func (p *Pane) submit(fn func()) {
	if p.detached.Load() {
		return
	}
	p.loop.Submit(fn)
}

// Detach severs the adapter back-reference, simulating facade destruction.
// The underlying widget is not torn down; that ownership is external. Any
// mutation attempted afterwards is a silent no-op.
func (p *Pane) Detach() {
	p.detached.Store(true)
	p.adapter.detach()
}

// HandleMouse feeds a raw pointer event into the link-click machine.
// It must be called on the GUI loop goroutine, typically by whatever pumps
// toolkit events. Returns whether the event completed a link click.
func (p *Pane) HandleMouse(ev *tcell.EventMouse) bool {
	return p.adapter.handleMouse(ev)
}

// ---- content ----

// SetText replaces the document content.
func (p *Pane) SetText(text string) {
	p.submit(func() { p.widget.SetText(text) })
}

// Clear empties the document.
func (p *Pane) Clear() {
	p.submit(p.widget.Clear)
}

// Text returns the current document source text.
func (p *Pane) Text() string { return p.widget.Text() }

// ContentType returns the MIME type of the last loaded content, or the
// value set explicitly. Empty until something is loaded or set.
func (p *Pane) ContentType() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.contentType
}

// SetContentType overrides the content type used to render the document.
func (p *Pane) SetContentType(contentType string) {
	p.mu.Lock()
	p.contentType = contentType
	p.mu.Unlock()
	p.submit(func() { p.widget.SetContentType(contentType) })
}

// PageURL returns the URL or path of the last loaded source.
func (p *Pane) PageURL() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pageURL
}

// LoadFile reads the whole file on the calling goroutine and marshals the
// content into the widget. An unreadable file is skipped silently (logged
// only), leaving previous content and type untouched.
func (p *Pane) LoadFile(path string) {
	text, contentType, err := content.LoadFile(path)
	if err != nil {
		log.Printf("Pane: skipping unreadable file: %v", err)
		return
	}
	p.mu.Lock()
	p.pageURL = path
	p.contentType = contentType
	p.mu.Unlock()
	p.submit(func() {
		p.widget.SetContentType(contentType)
		p.widget.SetText(text)
	})
}

// LoadURL records the URL and hands it to the widget's native source
// loading mechanism.
func (p *Pane) LoadURL(url string) {
	p.mu.Lock()
	p.pageURL = url
	p.mu.Unlock()
	p.submit(func() { p.widget.LoadSource(url) })
}

// ---- selection and cursor ----

// Select sets the selection to [start, start+length), clamped by the widget
// to the document length. Negative arguments are rejected on the calling
// goroutine before any marshaling happens.
func (p *Pane) Select(start, length int) error {
	if start < 0 {
		return fmt.Errorf("browse: Select: start must be non-negative, got %d", start)
	}
	if length < 0 {
		return fmt.Errorf("browse: Select: length must be non-negative, got %d", length)
	}
	p.submit(func() { p.widget.Select(start, length) })
	return nil
}

// SelectAll selects the whole document.
func (p *Pane) SelectAll() {
	p.submit(p.widget.SelectAll)
}

// ClearSelection collapses the selection to the cursor.
func (p *Pane) ClearSelection() {
	p.submit(p.widget.ClearSelection)
}

// SelectionStart returns the selection's start offset, or -1 when nothing
// is selected.
func (p *Pane) SelectionStart() int {
	start, end := p.widget.Selection()
	if end > start {
		return start
	}
	return -1
}

// SelectionEnd returns the selection's end offset, or -1 when nothing is
// selected.
func (p *Pane) SelectionEnd() int {
	start, end := p.widget.Selection()
	if end > start {
		return end
	}
	return -1
}

// SelectionLength returns the number of selected runes, zero when none.
func (p *Pane) SelectionLength() int {
	start, end := p.widget.Selection()
	return end - start
}

// SelectedText returns the selected document text, "" when none.
func (p *Pane) SelectedText() string { return p.widget.SelectedText() }

// CursorPosition returns the cursor's rune offset.
func (p *Pane) CursorPosition() int { return p.widget.CursorPosition() }

// SetCursorPosition moves the cursor. With extendSelection the selection
// anchor stays put, select-while-moving style. Negative positions are
// rejected before marshaling.
func (p *Pane) SetCursorPosition(pos int, extendSelection bool) error {
	if pos < 0 {
		return fmt.Errorf("browse: SetCursorPosition: pos must be non-negative, got %d", pos)
	}
	p.submit(func() { p.widget.SetCursorPosition(pos, extendSelection) })
	return nil
}

// MoveCursorToStart moves the cursor to the document start and scrolls it
// into view.
func (p *Pane) MoveCursorToStart() {
	p.submit(p.widget.MoveCursorToStart)
}

// MoveCursorToEnd moves the cursor to the document end and scrolls it into
// view.
func (p *Pane) MoveCursorToEnd() {
	p.submit(p.widget.MoveCursorToEnd)
}

// ---- presentation ----

// SetEditable toggles whether the widget accepts edits.
func (p *Pane) SetEditable(editable bool) {
	p.submit(func() { p.widget.SetEditable(editable) })
}

// Editable reports whether the widget accepts edits.
func (p *Pane) Editable() bool { return p.widget.Editable() }

// SetLineWrap toggles soft wrapping.
func (p *Pane) SetLineWrap(wrap bool) {
	p.submit(func() { p.widget.SetLineWrap(wrap) })
}

// LineWrap reports whether soft wrapping is on.
func (p *Pane) LineWrap() bool { return p.widget.LineWrap() }

// ScrollToTop scrolls the viewport to the document start.
func (p *Pane) ScrollToTop() {
	p.submit(p.widget.ScrollToTop)
}

// ScrollToBottom scrolls the viewport to the document end.
func (p *Pane) ScrollToBottom() {
	p.submit(p.widget.ScrollToBottom)
}

// ---- listeners ----

// SetLinkListener registers the detailed link-click listener, replacing any
// previous registration for the category.
func (p *Pane) SetLinkListener(fn func(Event)) {
	p.listeners.set(LinkClick, listenerEntry{detailed: fn})
}

// SetLinkListenerFunc registers a no-argument link-click listener.
func (p *Pane) SetLinkListenerFunc(fn func()) {
	p.listeners.set(LinkClick, listenerEntry{plain: fn})
}

// RemoveLinkListener clears the link-click registration. No-op when none.
func (p *Pane) RemoveLinkListener() {
	p.listeners.remove(LinkClick)
}

// SetTextChangeListener registers the detailed text-change listener.
func (p *Pane) SetTextChangeListener(fn func(Event)) {
	p.listeners.set(TextChange, listenerEntry{detailed: fn})
}

// SetTextChangeListenerFunc registers a no-argument text-change listener.
func (p *Pane) SetTextChangeListenerFunc(fn func()) {
	p.listeners.set(TextChange, listenerEntry{plain: fn})
}

// RemoveTextChangeListener clears the text-change registration.
func (p *Pane) RemoveTextChangeListener() {
	p.listeners.remove(TextChange)
}

// SetMouseListener registers one detailed listener for both mouse press and
// mouse release; the dispatched Event's Type distinguishes them.
func (p *Pane) SetMouseListener(fn func(Event)) {
	p.listeners.set(MousePress, listenerEntry{detailed: fn})
	p.listeners.set(MouseRelease, listenerEntry{detailed: fn})
}

// SetMouseListenerFunc registers a no-argument mouse listener for press and
// release.
func (p *Pane) SetMouseListenerFunc(fn func()) {
	p.listeners.set(MousePress, listenerEntry{plain: fn})
	p.listeners.set(MouseRelease, listenerEntry{plain: fn})
}

// RemoveMouseListener clears the mouse registration.
func (p *Pane) RemoveMouseListener() {
	p.listeners.remove(MousePress)
	p.listeners.remove(MouseRelease)
}

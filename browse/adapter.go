// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: browse/adapter.go
// Summary: GUI-loop-resident peer that turns raw pointer events into
// semantic link clicks.

package browse

import (
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
)

// pressState is the link-click machine's state: idle, or pressed on a
// specific anchor. It must be reset on every release outcome so the next
// press starts from a clean slate.
type pressState struct {
	active bool
	anchor string
}

// adapter wraps the native widget on the GUI loop goroutine. It holds only
// a weak back-reference to its Pane; Detach clears it, after which events
// fall through to the widget's default handling. All fields other than
// pane are confined to the GUI loop goroutine.
type adapter struct {
	widget Browser
	pane   atomic.Pointer[Pane]

	press       pressState
	lastButtons tcell.ButtonMask
}

func newAdapter(p *Pane, widget Browser) *adapter {
	a := &adapter{widget: widget}
	a.pane.Store(p)
	return a
}

// detach severs the back-reference. May run from any goroutine; the atomic
// store is the required barrier between the detaching thread and the loop.
func (a *adapter) detach() {
	a.pane.Store(nil)
}

// attach hooks the widget's change notifier. Runs on the GUI loop.
func (a *adapter) attach() {
	a.widget.OnTextChanged(a.textChanged)
}

// textChanged runs on the GUI loop whenever the widget's content mutates.
func (a *adapter) textChanged() {
	p := a.pane.Load()
	if p == nil {
		return
	}
	p.listeners.fire(Event{Type: TextChange, When: time.Now()})
}

// handleMouse derives press/release edges from a tcell mouse event. It must
// run on the GUI loop goroutine. Returns whether the event was consumed as
// part of a link click.
func (a *adapter) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	pressed := buttons &^ a.lastButtons
	released := a.lastButtons &^ buttons
	a.lastButtons = buttons

	consumed := false
	if pressed != 0 {
		a.mousePress(x, y, pressed, ev.Modifiers())
	}
	if released != 0 {
		consumed = a.mouseRelease(x, y, released, ev.Modifiers())
	}
	return consumed
}

// mousePress arms the link machine when the primary button lands on a
// resolvable anchor. Default widget handling always runs first, matching
// the toolkit convention of calling through before interception.
func (a *adapter) mousePress(x, y int, button tcell.ButtonMask, mods tcell.ModMask) {
	a.widget.MousePressDefault(x, y)

	p := a.pane.Load()
	if p == nil {
		return
	}
	now := time.Now()
	p.listeners.fire(Event{
		Type: MousePress, Button: button, X: x, Y: y, Modifiers: mods, When: now,
	})

	// No link listener: skip press tracking entirely. The clearing
	// invariant still holds because release resets the state regardless.
	if !p.listeners.accepting(LinkClick) {
		return
	}
	if button&tcell.Button1 == 0 {
		return
	}
	anchor := a.widget.AnchorAt(x, y)
	if anchor == "" {
		return
	}
	a.press = pressState{active: true, anchor: anchor}
}

// mouseRelease completes or cancels the press cycle. The pressed-anchor
// state is cleared on every path out of here.
func (a *adapter) mouseRelease(x, y int, button tcell.ButtonMask, mods tcell.ModMask) bool {
	press := a.press
	a.press = pressState{}

	p := a.pane.Load()
	if p == nil {
		a.widget.MouseReleaseDefault(x, y)
		return false
	}
	now := time.Now()
	p.listeners.fire(Event{
		Type: MouseRelease, Button: button, X: x, Y: y, Modifiers: mods, When: now,
	})

	if !p.listeners.accepting(LinkClick) || button&tcell.Button1 == 0 {
		a.widget.MouseReleaseDefault(x, y)
		return false
	}
	anchor := a.widget.AnchorAt(x, y)
	if anchor == "" || !press.active || anchor != press.anchor {
		a.widget.MouseReleaseDefault(x, y)
		return false
	}

	p.listeners.fire(Event{
		Type:      LinkClick,
		URL:       anchor,
		Button:    button,
		X:         x,
		Y:         y,
		Modifiers: mods,
		When:      now,
	})
	return true
}

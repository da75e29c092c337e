// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/border_test.go
// Summary: Frame layout and input delegation to the child widget.

package widgets_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texbrowse/ui/core"
	"github.com/framegrace/texbrowse/ui/widgets"
)

func TestBorderLaysOutChildInClientArea(t *testing.T) {
	b := widgets.NewBorder(0, 0, 10, 5, tcell.StyleDefault)
	tb := widgets.NewTextBrowser(0, 0, 1, 1)
	b.SetChild(tb)

	if x, y := tb.Position(); x != 1 || y != 1 {
		t.Fatalf("child at (%d,%d), want (1,1)", x, y)
	}
	if w, h := tb.Size(); w != 8 || h != 3 {
		t.Fatalf("child sized %dx%d, want 8x3", w, h)
	}

	b.Resize(6, 4)
	if w, h := tb.Size(); w != 4 || h != 2 {
		t.Fatalf("child sized %dx%d after resize, want 4x2", w, h)
	}
}

// The border alone is registered with the manager; clicking and typing must
// still reach the child through it.
func TestBorderDelegatesInputToChild(t *testing.T) {
	ui := core.NewUIManager(tcell.StyleDefault)
	ui.Resize(7, 4)

	frame := widgets.NewBorder(0, 0, 7, 4, tcell.StyleDefault)
	tb := widgets.NewTextBrowser(0, 0, 1, 1)
	tb.SetContentType("text/plain")
	tb.SetText("aa\nbb\ncc")
	frame.SetChild(tb)
	ui.AddWidget(frame)

	buf := ui.Render()
	if buf[1][1].Ch != 'a' {
		t.Fatalf("first client row = %q, want 'a'", string(buf[1][1].Ch))
	}

	// Click inside the client area, then scroll with the keyboard.
	ui.HandleMouse(tcell.NewEventMouse(1, 1, tcell.Button1, 0))
	ui.HandleMouse(tcell.NewEventMouse(1, 1, tcell.ButtonNone, 0))
	if !tb.IsFocused() {
		t.Fatal("click through the border did not focus the child")
	}
	if !ui.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, 0)) {
		t.Fatal("key did not reach the child through the border")
	}

	buf = ui.Render()
	if buf[1][1].Ch != 'b' {
		t.Fatalf("first client row after scroll = %q, want 'b'", string(buf[1][1].Ch))
	}
}

func TestBorderPropagatesInvalidator(t *testing.T) {
	ui := core.NewUIManager(tcell.StyleDefault)
	ui.Resize(7, 4)

	frame := widgets.NewBorder(0, 0, 7, 4, tcell.StyleDefault)
	tb := widgets.NewTextBrowser(0, 0, 1, 1)
	frame.SetChild(tb)
	ui.AddWidget(frame)

	ch := make(chan bool, 1)
	ui.SetRefreshNotifier(ch)

	tb.SetContentType("text/plain")
	tb.SetText("hello")

	select {
	case <-ch:
	default:
		t.Fatal("child mutation did not reach the refresh notifier")
	}
}

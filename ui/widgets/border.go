// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/border.go
// Summary: Border widget that frames an optional child and routes input
// to it.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texbrowse/ui/core"
)

// Border draws a frame around its Rect and lays out an optional child in
// the client area. The frame is transparent to input: focus, keys, mouse,
// and invalidation all delegate to the child, so only the border needs to
// be registered with the UI manager.
type Border struct {
	core.BaseWidget
	Style   tcell.Style
	Charset [6]rune // h, v, tl, tr, bl, br
	Child   core.Widget

	inv func(core.Rect)
}

func NewBorder(x, y, w, h int, style tcell.Style) *Border {
	b := &Border{Style: style}
	b.Charset = [6]rune{'─', '│', '┌', '┐', '└', '┘'}
	b.SetPosition(x, y)
	b.Resize(w, h)
	return b
}

// ClientRect is the inner area available to the child.
func (b *Border) ClientRect() core.Rect {
	r := b.Rect
	if r.W < 2 || r.H < 2 {
		return core.Rect{X: r.X, Y: r.Y}
	}
	return core.Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
}

func (b *Border) SetChild(w core.Widget) {
	b.Child = w
	b.propagateInvalidator()
	b.layoutChild()
}

// SetInvalidator passes the dirty-region callback through to the child.
func (b *Border) SetInvalidator(fn func(core.Rect)) {
	b.inv = fn
	b.propagateInvalidator()
}

func (b *Border) propagateInvalidator() {
	if b.inv == nil {
		return
	}
	if ia, ok := b.Child.(core.InvalidationAware); ok {
		ia.SetInvalidator(b.inv)
	}
}

func (b *Border) Resize(w, h int) {
	b.BaseWidget.Resize(w, h)
	b.layoutChild()
}

func (b *Border) layoutChild() {
	if b.Child == nil {
		return
	}
	cr := b.ClientRect()
	b.Child.SetPosition(cr.X, cr.Y)
	b.Child.Resize(cr.W, cr.H)
}

func (b *Border) Focusable() bool {
	return b.Child != nil && b.Child.Focusable()
}

func (b *Border) Focus() {
	if b.Child != nil {
		b.Child.Focus()
	}
}

func (b *Border) Blur() {
	if b.Child != nil {
		b.Child.Blur()
	}
}

func (b *Border) HandleKey(ev *tcell.EventKey) bool {
	return b.Child != nil && b.Child.HandleKey(ev)
}

func (b *Border) HandleMouse(ev *tcell.EventMouse) bool {
	if mw, ok := b.Child.(core.MouseAware); ok {
		return mw.HandleMouse(ev)
	}
	return false
}

func (b *Border) Draw(p *core.Painter) {
	p.DrawBorder(b.Rect, b.Style, b.Charset)
	if b.Child != nil {
		b.Child.Draw(p)
	}
}

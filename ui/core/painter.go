// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/core/painter.go
// Summary: Cell buffer and clipped painter used by widgets to draw.

package core

import "github.com/gdamore/tcell/v2"

// Cell is one rendered screen cell. Link carries the hyperlink anchor the
// cell belongs to, or "" for plain content.
type Cell struct {
	Ch    rune
	Style tcell.Style
	Link  string
}

// Painter draws into a shared cell buffer, clipped to a region.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

// NewPainter wraps a buffer with a clip region. Writes outside the clip or
// the buffer bounds are discarded.
func NewPainter(buf [][]Cell, clip Rect) *Painter {
	return &Painter{buf: buf, clip: clip}
}

func (p *Painter) inBounds(x, y int) bool {
	if !p.clip.Contains(x, y) {
		return false
	}
	if y < 0 || y >= len(p.buf) {
		return false
	}
	return x >= 0 && x < len(p.buf[y])
}

// SetCell writes a plain cell.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.inBounds(x, y) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style}
}

// SetLinkCell writes a cell that belongs to a hyperlink anchor.
func (p *Painter) SetLinkCell(x, y int, ch rune, style tcell.Style, link string) {
	if !p.inBounds(x, y) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style, Link: link}
}

// DrawBorder outlines the rectangle with the charset [h, v, tl, tr, bl, br].
func (p *Painter) DrawBorder(r Rect, style tcell.Style, cs [6]rune) {
	if r.W < 2 || r.H < 2 {
		return
	}
	for x := r.X + 1; x < r.X+r.W-1; x++ {
		p.SetCell(x, r.Y, cs[0], style)
		p.SetCell(x, r.Y+r.H-1, cs[0], style)
	}
	for y := r.Y + 1; y < r.Y+r.H-1; y++ {
		p.SetCell(r.X, y, cs[1], style)
		p.SetCell(r.X+r.W-1, y, cs[1], style)
	}
	p.SetCell(r.X, r.Y, cs[2], style)
	p.SetCell(r.X+r.W-1, r.Y, cs[3], style)
	p.SetCell(r.X, r.Y+r.H-1, cs[4], style)
	p.SetCell(r.X+r.W-1, r.Y+r.H-1, cs[5], style)
}

// Fill paints a rectangle with one rune and style.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.SetCell(x, y, ch, style)
		}
	}
}

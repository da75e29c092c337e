// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/textbrowser.go
// Summary: The native text browser widget: document layout, anchors,
// selection, cursor, wrapping, and scrolling.

package widgets

import (
	"io"
	"log"
	"mime"
	"net/http"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texbrowse/content"
	"github.com/framegrace/texbrowse/theme"
	"github.com/framegrace/texbrowse/ui/core"
)

// Fetcher retrieves raw content and a MIME type for a URL. The widget's
// native source-loading mechanism; replaceable for tests and offline use.
type Fetcher func(url string) (text, contentType string, err error)

// visualCell is one laid-out screen cell of the document.
type visualCell struct {
	ch     rune
	style  tcell.Style
	link   string
	offset int // rune offset into the document text
	width  int // display width in cells
}

// visualLine is one wrapped row. start is the rune offset the row begins
// at, needed for empty rows that own no cells.
type visualLine struct {
	cells []visualCell
	start int
}

// TextBrowser renders a styled document and resolves pointer positions to
// hyperlink anchors. Mutating methods run on the GUI loop goroutine only;
// read accessors may race with queued writes by design (no locking — the
// facade documents the relaxed consistency).
//
// Selection follows the cursor/anchor model: the selection is the span
// between the anchor and the cursor, empty when they coincide.
type TextBrowser struct {
	core.BaseWidget

	raw         string
	contentType string
	sourceName  string
	doc         content.Document
	layout      []visualLine
	docLen      int

	cursor   int
	anchor   int
	editable bool
	wrap     bool
	scroll   int

	style       tcell.Style
	linkStyle   tcell.Style
	chromaStyle string

	inv           func(core.Rect)
	onTextChanged func()
	fetch         Fetcher
}

// NewTextBrowser creates a read-only, wrapping browser widget.
func NewTextBrowser(x, y, w, h int) *TextBrowser {
	tm := theme.Get()
	bg := tm.GetColor("theme", "text_bg", tcell.ColorBlack)
	fg := tm.GetColor("theme", "text_fg", tcell.ColorWhite)
	link := tm.GetColor("theme", "link_fg", tcell.ColorBlue)

	tb := &TextBrowser{
		wrap:      true,
		style:     tcell.StyleDefault.Background(bg).Foreground(fg),
		linkStyle: tcell.StyleDefault.Background(bg).Foreground(link),
		fetch:     fetchHTTP,
	}
	tb.SetPosition(x, y)
	tb.SetFocusable(true)
	tb.Resize(w, h)
	tb.renderDoc()
	tb.relayout()
	return tb
}

// SetInvalidator allows the UI manager to inject a dirty-region callback.
func (tb *TextBrowser) SetInvalidator(fn func(core.Rect)) { tb.inv = fn }

// SetFetcher replaces the native URL loading mechanism.
func (tb *TextBrowser) SetFetcher(fn Fetcher) {
	if fn != nil {
		tb.fetch = fn
	}
}

// SetChromaStyle selects the highlighting style for non-HTML text.
func (tb *TextBrowser) SetChromaStyle(name string) {
	tb.chromaStyle = name
}

func (tb *TextBrowser) invalidate() {
	if tb.inv != nil {
		tb.inv(tb.Rect)
	}
}

// ---- content ----

func (tb *TextBrowser) renderDoc() {
	opts := content.Options{
		Base:        tb.style,
		Link:        tb.linkStyle,
		ChromaStyle: tb.chromaStyle,
	}
	tb.doc = content.Render(tb.raw, tb.contentType, tb.sourceName, opts)
	tb.docLen = tb.doc.RuneLen()
}

func (tb *TextBrowser) SetText(text string) {
	tb.raw = text
	tb.renderDoc()
	tb.relayout()
	tb.cursor, tb.anchor, tb.scroll = 0, 0, 0
	tb.invalidate()
	if tb.onTextChanged != nil {
		tb.onTextChanged()
	}
}

func (tb *TextBrowser) Text() string { return tb.raw }

func (tb *TextBrowser) Clear() { tb.SetText("") }

func (tb *TextBrowser) SetContentType(contentType string) {
	if tb.contentType == contentType {
		return
	}
	tb.contentType = contentType
	if tb.raw != "" {
		tb.renderDoc()
		tb.relayout()
		tb.invalidate()
	}
}

// LoadSource fetches a URL and replaces the document with the response.
// Failures are best-effort: logged, previous content kept.
func (tb *TextBrowser) LoadSource(url string) {
	text, contentType, err := tb.fetch(url)
	if err != nil {
		log.Printf("TextBrowser: load %s: %v", url, err)
		return
	}
	tb.sourceName = url
	if contentType == "" {
		contentType = content.TypeForPath(url)
	}
	tb.contentType = contentType
	tb.SetText(text)
}

// fetchHTTP is the default Fetcher. The MIME type comes from the response
// header when present, the URL extension otherwise.
func fetchHTTP(url string) (string, string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			contentType = mt
		}
	}
	return string(data), contentType, nil
}

// ---- layout ----

// relayout wraps the document to the widget width. Offsets count one rune
// per document line separator so selection spans survive rewrapping.
func (tb *TextBrowser) relayout() {
	tb.layout = tb.layout[:0]
	width := tb.Rect.W
	offset := 0

	for li, line := range tb.doc.Lines {
		if li > 0 {
			offset++ // the separator between document lines
		}
		current := visualLine{start: offset}
		col := 0
		for _, span := range line {
			for _, r := range span.Text {
				w := runewidth.RuneWidth(r)
				if tb.wrap && width > 0 && col+w > width && len(current.cells) > 0 {
					tb.layout = append(tb.layout, current)
					current = visualLine{start: offset}
					col = 0
				}
				current.cells = append(current.cells, visualCell{
					ch: r, style: span.Style, link: span.Link, offset: offset, width: w,
				})
				col += w
				offset++
			}
		}
		tb.layout = append(tb.layout, current)
	}
	if tb.scroll > tb.maxScroll() {
		tb.scroll = tb.maxScroll()
	}
}

func (tb *TextBrowser) maxScroll() int {
	m := len(tb.layout) - tb.Rect.H
	if m < 0 {
		return 0
	}
	return m
}

func (tb *TextBrowser) Resize(w, h int) {
	tb.BaseWidget.Resize(w, h)
	tb.relayout()
}

// clampOffset bounds a rune offset to the document.
func (tb *TextBrowser) clampOffset(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > tb.docLen {
		return tb.docLen
	}
	return pos
}

// lineEnd returns the rune offset just past the row's last cell.
func (l visualLine) lineEnd() int {
	if len(l.cells) == 0 {
		return l.start
	}
	last := l.cells[len(l.cells)-1]
	return last.offset + 1
}

// cellAt resolves screen coordinates to the laid-out cell under them.
// Positions outside the visible rect resolve to nothing, even when the
// layout has rows above or below the viewport.
func (tb *TextBrowser) cellAt(x, y int) (visualCell, bool) {
	if !tb.Rect.Contains(x, y) {
		return visualCell{}, false
	}
	row := y - tb.Rect.Y + tb.scroll
	if row >= len(tb.layout) {
		return visualCell{}, false
	}
	target := x - tb.Rect.X
	col := 0
	for _, c := range tb.layout[row].cells {
		if target < col+c.width {
			return c, true
		}
		col += c.width
	}
	return visualCell{}, false
}

// offsetAt resolves screen coordinates to the nearest rune offset. Positions
// above the viewport clamp to the document start, positions below it to the
// document end, so drag-selection past an edge behaves sensibly.
func (tb *TextBrowser) offsetAt(x, y int) int {
	if y < tb.Rect.Y {
		return 0
	}
	if y >= tb.Rect.Y+tb.Rect.H {
		return tb.docLen
	}
	row := y - tb.Rect.Y + tb.scroll
	if row >= len(tb.layout) {
		return tb.docLen
	}
	if c, ok := tb.cellAt(x, y); ok {
		return c.offset
	}
	return tb.layout[row].lineEnd()
}

// rowOf returns the layout row containing the offset.
func (tb *TextBrowser) rowOf(offset int) int {
	for i, l := range tb.layout {
		if offset >= l.start && offset <= l.lineEnd() {
			return i
		}
	}
	if n := len(tb.layout); n > 0 {
		return n - 1
	}
	return 0
}

func (tb *TextBrowser) ensureCursorVisible() {
	row := tb.rowOf(tb.cursor)
	if row < tb.scroll {
		tb.scroll = row
	}
	if tb.Rect.H > 0 && row >= tb.scroll+tb.Rect.H {
		tb.scroll = row - tb.Rect.H + 1
	}
}

// AnchorAt resolves a pointer position to the hyperlink target under it.
func (tb *TextBrowser) AnchorAt(x, y int) string {
	if c, ok := tb.cellAt(x, y); ok {
		return c.link
	}
	return ""
}

// ---- selection and cursor ----

func (tb *TextBrowser) Select(start, length int) {
	if start < 0 || length < 0 {
		return
	}
	tb.anchor = tb.clampOffset(start)
	tb.cursor = tb.clampOffset(start + length)
	tb.invalidate()
}

func (tb *TextBrowser) SelectAll() {
	tb.anchor = 0
	tb.cursor = tb.docLen
	tb.invalidate()
}

func (tb *TextBrowser) ClearSelection() {
	tb.anchor = tb.cursor
	tb.invalidate()
}

// Selection returns normalized bounds; start == end means no selection.
func (tb *TextBrowser) Selection() (start, end int) {
	if tb.anchor <= tb.cursor {
		return tb.anchor, tb.cursor
	}
	return tb.cursor, tb.anchor
}

func (tb *TextBrowser) SelectedText() string {
	start, end := tb.Selection()
	if end <= start {
		return ""
	}
	runes := []rune(tb.doc.PlainText())
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

func (tb *TextBrowser) CursorPosition() int { return tb.cursor }

func (tb *TextBrowser) SetCursorPosition(pos int, extendSelection bool) {
	tb.cursor = tb.clampOffset(pos)
	if !extendSelection {
		tb.anchor = tb.cursor
	}
	tb.ensureCursorVisible()
	tb.invalidate()
}

func (tb *TextBrowser) MoveCursorToStart() { tb.SetCursorPosition(0, false) }
func (tb *TextBrowser) MoveCursorToEnd()   { tb.SetCursorPosition(tb.docLen, false) }

// ---- presentation ----

func (tb *TextBrowser) SetEditable(editable bool) { tb.editable = editable }
func (tb *TextBrowser) Editable() bool            { return tb.editable }

func (tb *TextBrowser) SetLineWrap(wrap bool) {
	if tb.wrap == wrap {
		return
	}
	tb.wrap = wrap
	tb.relayout()
	tb.invalidate()
}

func (tb *TextBrowser) LineWrap() bool { return tb.wrap }

func (tb *TextBrowser) ScrollToTop() {
	tb.scroll = 0
	tb.invalidate()
}

func (tb *TextBrowser) ScrollToBottom() {
	tb.scroll = tb.maxScroll()
	tb.invalidate()
}

func (tb *TextBrowser) scrollBy(delta int) {
	tb.scroll += delta
	if tb.scroll < 0 {
		tb.scroll = 0
	}
	if tb.scroll > tb.maxScroll() {
		tb.scroll = tb.maxScroll()
	}
	tb.invalidate()
}

// ---- input ----

// MousePressDefault is the non-link press behavior: place the cursor and
// collapse the selection, starting a potential drag.
func (tb *TextBrowser) MousePressDefault(x, y int) {
	tb.cursor = tb.offsetAt(x, y)
	tb.anchor = tb.cursor
	tb.invalidate()
}

// MouseReleaseDefault completes a drag: the cursor moves, the anchor from
// the press stays, so press-drag-release selects a span.
func (tb *TextBrowser) MouseReleaseDefault(x, y int) {
	tb.cursor = tb.offsetAt(x, y)
	tb.invalidate()
}

// OnTextChanged installs the single change notifier.
func (tb *TextBrowser) OnTextChanged(fn func()) { tb.onTextChanged = fn }

// HandleKey implements viewport navigation. Editing keys are not handled;
// rich-text editing is out of scope.
func (tb *TextBrowser) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		tb.scrollBy(-1)
	case tcell.KeyDown:
		tb.scrollBy(1)
	case tcell.KeyPgUp:
		tb.scrollBy(-tb.Rect.H)
	case tcell.KeyPgDn:
		tb.scrollBy(tb.Rect.H)
	case tcell.KeyHome:
		tb.ScrollToTop()
	case tcell.KeyEnd:
		tb.ScrollToBottom()
	default:
		return false
	}
	return true
}

// HandleMouse consumes wheel events for scrolling. Button handling lives in
// the browse adapter, which owns link-click detection.
func (tb *TextBrowser) HandleMouse(ev *tcell.EventMouse) bool {
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		tb.scrollBy(-3)
	case ev.Buttons()&tcell.WheelDown != 0:
		tb.scrollBy(3)
	default:
		return false
	}
	return true
}

// ---- drawing ----

func (tb *TextBrowser) Draw(p *core.Painter) {
	p.Fill(tb.Rect, ' ', tb.style)

	selStart, selEnd := tb.Selection()
	for row := 0; row < tb.Rect.H; row++ {
		li := tb.scroll + row
		if li >= len(tb.layout) {
			break
		}
		col := 0
		for _, c := range tb.layout[li].cells {
			if col >= tb.Rect.W {
				break // no horizontal scrolling; long lines clip
			}
			style := c.style
			selected := c.offset >= selStart && c.offset < selEnd
			if selected || (tb.IsFocused() && c.offset == tb.cursor) {
				style = style.Reverse(true)
			}
			x, y := tb.Rect.X+col, tb.Rect.Y+row
			if c.link != "" {
				p.SetLinkCell(x, y, c.ch, style, c.link)
			} else {
				p.SetCell(x, y, c.ch, style)
			}
			if c.width == 2 {
				p.SetCell(x+1, y, ' ', style)
			}
			col += c.width
		}
	}
}

// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: browse/browser.go
// Summary: Contract the facade and adapter require from the native widget.

package browse

// Browser is the underlying widget surface the Pane delegates to. All
// mutating methods are invoked on the GUI loop goroutine only; read
// accessors may be called from any goroutine and tolerate observing state
// concurrently with a not-yet-executed queued write (non-strict
// consistency, accepted for responsiveness).
//
// Offsets are zero-based rune positions into the rendered document text.
type Browser interface {
	// Content.
	SetText(text string)
	Text() string
	Clear()
	SetContentType(contentType string)
	// LoadSource hands a URL to the widget's native loading mechanism.
	LoadSource(url string)

	// Selection and cursor. Selection returns normalized bounds with
	// start == end when nothing is selected. Select clamps to the
	// document length.
	Select(start, length int)
	SelectAll()
	ClearSelection()
	Selection() (start, end int)
	SelectedText() string
	CursorPosition() int
	SetCursorPosition(pos int, extendSelection bool)
	MoveCursorToStart()
	MoveCursorToEnd()

	// Presentation toggles and scrolling.
	SetEditable(editable bool)
	Editable() bool
	SetLineWrap(wrap bool)
	LineWrap() bool
	ScrollToTop()
	ScrollToBottom()

	// AnchorAt resolves a widget-local pointer position to the hyperlink
	// target under it, or "" when the position is not over an anchor.
	AnchorAt(x, y int) string

	// Default pointer handling, invoked when an event is not consumed as
	// part of a link click.
	MousePressDefault(x, y int)
	MouseReleaseDefault(x, y int)

	// OnTextChanged installs the single change notifier the adapter uses
	// to raise TextChange events. Called once during attach.
	OnTextChanged(fn func())
}

// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/document.go
// Summary: Styled document model produced by the renderers.

package content

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Span is a run of text sharing one style. Link carries the hyperlink
// target when the span belongs to an anchor.
type Span struct {
	Text  string
	Style tcell.Style
	Link  string
}

// Line is one logical line of spans, without a trailing newline.
type Line []Span

// Document is the renderer output consumed by the text browser widget.
type Document struct {
	Lines []Line
}

// Options selects the base styles a renderer decorates.
type Options struct {
	Base        tcell.Style
	Link        tcell.Style
	ChromaStyle string // chroma style name for source highlighting
}

// PlainText flattens the document back to unstyled text with newlines.
func (d Document) PlainText() string {
	var sb strings.Builder
	for i, line := range d.Lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, sp := range line {
			sb.WriteString(sp.Text)
		}
	}
	return sb.String()
}

// RuneLen returns the document length in runes, counting one rune per
// line separator. Selection offsets index into this space.
func (d Document) RuneLen() int {
	n := 0
	for i, line := range d.Lines {
		if i > 0 {
			n++
		}
		for _, sp := range line {
			n += len([]rune(sp.Text))
		}
	}
	return n
}

// Render converts raw source text into a document according to the MIME
// content type. HTML is parsed into styled lines with anchors; other text
// types are syntax highlighted when a language can be determined.
func Render(text, contentType, sourceName string, o Options) Document {
	switch {
	case contentType == "text/html" || contentType == "":
		return ParseHTML(text, o)
	case strings.HasPrefix(contentType, "text/"):
		return Highlight(text, sourceName, o)
	default:
		return PlainDocument(text, o.Base)
	}
}

// PlainDocument splits text into unstyled lines.
func PlainDocument(text string, style tcell.Style) Document {
	var doc Document
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		doc.Lines = append(doc.Lines, Line{{Text: raw, Style: style}})
	}
	return doc
}

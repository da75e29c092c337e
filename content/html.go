// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/html.go
// Summary: Converts HTML markup into a styled document with anchors.
//
// This is a flow renderer, not a layout engine: block elements break lines,
// inline elements contribute styled spans, anchors carry their href so the
// widget can resolve pointer positions back to link targets.

package content

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/net/html"
)

// htmlState tracks inline formatting depth while tokenizing.
type htmlState struct {
	bold      int
	italic    int
	underline int
	pre       int
	skip      int // inside script/style/head/title
	links     []string
}

func (s *htmlState) link() string {
	if len(s.links) == 0 {
		return ""
	}
	return s.links[len(s.links)-1]
}

// ParseHTML tokenizes src and emits a document of styled lines.
func ParseHTML(src string, o Options) Document {
	z := html.NewTokenizer(strings.NewReader(src))
	b := docBuilder{opts: o}
	var st htmlState

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		switch tt {
		case html.TextToken:
			if st.skip > 0 {
				continue
			}
			b.text(string(z.Text()), &st)
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			var href string
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = z.TagAttr()
				if string(k) == "href" {
					href = string(v)
				}
			}
			b.openTag(tag, href, &st)
			if tt == html.SelfClosingTagToken {
				b.closeTag(tag, &st)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			b.closeTag(string(name), &st)
		}
	}
	b.breakIfContent()
	if len(b.lines) == 0 {
		b.lines = append(b.lines, Line{})
	}
	return Document{Lines: b.lines}
}

// docBuilder accumulates spans into lines.
type docBuilder struct {
	opts    Options
	lines   []Line
	current Line
}

func (b *docBuilder) flushLine() {
	b.lines = append(b.lines, b.current)
	b.current = nil
}

// breakIfContent ends the current line only when it already has content,
// so consecutive block boundaries don't pile up blank lines.
func (b *docBuilder) breakIfContent() {
	if len(b.current) > 0 {
		b.flushLine()
	}
}

func (b *docBuilder) openTag(tag, href string, st *htmlState) {
	switch tag {
	case "br":
		b.flushLine()
	case "p", "div", "ul", "ol", "table", "tr", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6":
		b.breakIfContent()
		if strings.HasPrefix(tag, "h") {
			st.bold++
		}
	case "pre":
		b.breakIfContent()
		st.pre++
	case "li":
		b.breakIfContent()
		b.current = append(b.current, Span{Text: "• ", Style: b.style(st)})
	case "a":
		st.links = append(st.links, href)
	case "b", "strong":
		st.bold++
	case "i", "em":
		st.italic++
	case "u":
		st.underline++
	case "script", "style", "head", "title":
		st.skip++
	}
}

func (b *docBuilder) closeTag(tag string, st *htmlState) {
	switch tag {
	case "p", "div", "ul", "ol", "table", "tr", "blockquote", "li":
		b.breakIfContent()
	case "h1", "h2", "h3", "h4", "h5", "h6":
		b.breakIfContent()
		if st.bold > 0 {
			st.bold--
		}
	case "pre":
		b.breakIfContent()
		if st.pre > 0 {
			st.pre--
		}
	case "a":
		if len(st.links) > 0 {
			st.links = st.links[:len(st.links)-1]
		}
	case "b", "strong":
		if st.bold > 0 {
			st.bold--
		}
	case "i", "em":
		if st.italic > 0 {
			st.italic--
		}
	case "u":
		if st.underline > 0 {
			st.underline--
		}
	case "script", "style", "head", "title":
		if st.skip > 0 {
			st.skip--
		}
	}
}

func (b *docBuilder) style(st *htmlState) tcell.Style {
	style := b.opts.Base
	if st.link() != "" {
		style = b.opts.Link
	}
	if st.bold > 0 {
		style = style.Bold(true)
	}
	if st.italic > 0 {
		style = style.Italic(true)
	}
	if st.underline > 0 || st.link() != "" {
		style = style.Underline(true)
	}
	return style
}

func (b *docBuilder) text(text string, st *htmlState) {
	if st.pre > 0 {
		b.preText(text, st)
		return
	}
	collapsed := collapseSpace(text, b.lineEndsInSpace())
	if collapsed == "" {
		return
	}
	b.current = append(b.current, Span{Text: collapsed, Style: b.style(st), Link: st.link()})
}

func (b *docBuilder) preText(text string, st *htmlState) {
	parts := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, part := range parts {
		if i > 0 {
			b.flushLine()
		}
		if part == "" {
			continue
		}
		b.current = append(b.current, Span{Text: part, Style: b.style(st), Link: st.link()})
	}
}

func (b *docBuilder) lineEndsInSpace() bool {
	if len(b.current) == 0 {
		return true // leading whitespace on a fresh line is dropped
	}
	last := b.current[len(b.current)-1].Text
	return last == "" || last[len(last)-1] == ' '
}

// collapseSpace folds whitespace runs into single spaces, HTML flow style.
// afterSpace suppresses a leading space when the line already ends in one.
func collapseSpace(s string, afterSpace bool) string {
	var sb strings.Builder
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inSpace = true
			continue
		}
		if inSpace && !(sb.Len() == 0 && afterSpace) {
			sb.WriteByte(' ')
		}
		inSpace = false
		sb.WriteRune(r)
	}
	if inSpace {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		} else if !afterSpace {
			// whitespace-only text between two inline elements
			return " "
		}
	}
	return sb.String()
}

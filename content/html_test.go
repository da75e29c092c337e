// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/html_test.go
// Summary: HTML flow rendering: anchors, blocks, lists, and whitespace.

package content_test

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texbrowse/content"
)

var testOpts = content.Options{
	Base: tcell.StyleDefault,
	Link: tcell.StyleDefault.Foreground(tcell.ColorBlue),
}

// anchorSpans collects every span carrying a link target.
func anchorSpans(doc content.Document) []content.Span {
	var out []content.Span
	for _, line := range doc.Lines {
		for _, sp := range line {
			if sp.Link != "" {
				out = append(out, sp)
			}
		}
	}
	return out
}

func TestParseHTMLAnchorsCarryTargets(t *testing.T) {
	doc := content.ParseHTML(
		`<p>Visit <a href="https://example.com/docs">the docs</a> today</p>`, testOpts)

	anchors := anchorSpans(doc)
	if len(anchors) != 1 {
		t.Fatalf("expected one anchor span, got %d", len(anchors))
	}
	if anchors[0].Link != "https://example.com/docs" {
		t.Fatalf("anchor target = %q", anchors[0].Link)
	}
	if anchors[0].Text != "the docs" {
		t.Fatalf("anchor text = %q", anchors[0].Text)
	}
	if got := doc.PlainText(); got != "Visit the docs today" {
		t.Fatalf("plain text = %q", got)
	}
}

func TestParseHTMLBlocksBreakLines(t *testing.T) {
	doc := content.ParseHTML(`<h1>Title</h1><p>First</p><p>Second</p>`, testOpts)
	want := "Title\nFirst\nSecond"
	if got := doc.PlainText(); got != want {
		t.Fatalf("plain text = %q, want %q", got, want)
	}
}

func TestParseHTMLListBullets(t *testing.T) {
	doc := content.ParseHTML(`<ul><li>one</li><li>two</li></ul>`, testOpts)
	want := "• one\n• two"
	if got := doc.PlainText(); got != want {
		t.Fatalf("plain text = %q, want %q", got, want)
	}
}

func TestParseHTMLSkipsScriptStyleHead(t *testing.T) {
	doc := content.ParseHTML(`<html><head><title>T</title>
<style>body { color: red }</style></head>
<body><script>alert("x")</script><p>visible</p></body></html>`, testOpts)

	got := doc.PlainText()
	if got != "visible" {
		t.Fatalf("plain text = %q, want %q", got, "visible")
	}
}

func TestParseHTMLCollapsesWhitespace(t *testing.T) {
	doc := content.ParseHTML("<p>a\n\n   b\t\tc</p>", testOpts)
	if got := doc.PlainText(); got != "a b c" {
		t.Fatalf("plain text = %q, want %q", got, "a b c")
	}
}

func TestParseHTMLWhitespaceBetweenInlineElements(t *testing.T) {
	doc := content.ParseHTML(`<p><b>bold</b> <i>italic</i></p>`, testOpts)
	if got := doc.PlainText(); got != "bold italic" {
		t.Fatalf("plain text = %q, want %q", got, "bold italic")
	}
}

func TestParseHTMLPrePreservesLines(t *testing.T) {
	doc := content.ParseHTML("<pre>line one\n  line two</pre>", testOpts)
	want := "line one\n  line two"
	if got := doc.PlainText(); got != want {
		t.Fatalf("plain text = %q, want %q", got, want)
	}
}

func TestParseHTMLBreakTag(t *testing.T) {
	doc := content.ParseHTML(`<p>up<br>down</p>`, testOpts)
	if got := doc.PlainText(); got != "up\ndown" {
		t.Fatalf("plain text = %q", got)
	}
}

func TestParseHTMLEmptyInputYieldsOneEmptyLine(t *testing.T) {
	doc := content.ParseHTML("", testOpts)
	if len(doc.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(doc.Lines))
	}
	if doc.RuneLen() != 0 {
		t.Fatalf("RuneLen = %d, want 0", doc.RuneLen())
	}
}

func TestParseHTMLNestedAnchorsResolveInnermost(t *testing.T) {
	// Not valid HTML, but the renderer must not lose track of targets.
	doc := content.ParseHTML(
		`<a href="outer">out <a href="inner">in</a></a>`, testOpts)

	anchors := anchorSpans(doc)
	if len(anchors) != 2 {
		t.Fatalf("expected two anchor spans, got %d", len(anchors))
	}
	if anchors[0].Link != "outer" || anchors[1].Link != "inner" {
		t.Fatalf("anchor targets = %q, %q", anchors[0].Link, anchors[1].Link)
	}
}

func TestRenderDispatchesByContentType(t *testing.T) {
	html := `<p><a href="x">go</a></p>`

	doc := content.Render(html, "text/html", "page.html", testOpts)
	if len(anchorSpans(doc)) != 1 {
		t.Fatal("text/html did not go through the HTML renderer")
	}

	// Non-HTML text keeps markup verbatim.
	doc = content.Render(html, "text/plain", "page.txt", testOpts)
	if !strings.Contains(doc.PlainText(), "<p>") {
		t.Fatalf("text/plain mangled the source: %q", doc.PlainText())
	}

	// Unknown binary-ish types degrade to plain lines.
	doc = content.Render("raw\ndata", "application/octet-stream", "blob", testOpts)
	if got := doc.PlainText(); got != "raw\ndata" {
		t.Fatalf("fallback rendering = %q", got)
	}
}

func TestDocumentRuneLenCountsSeparators(t *testing.T) {
	doc := content.ParseHTML(`<p>ab</p><p>cd</p>`, testOpts)
	// "ab\ncd": four runes plus one separator.
	if got := doc.RuneLen(); got != 5 {
		t.Fatalf("RuneLen = %d, want 5", got)
	}
}

// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/highlight_test.go
// Summary: Syntax highlighting keeps text intact while adding styles.

package content_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texbrowse/content"
)

const goSample = `package main

import "fmt"

func main() {
	fmt.Println("hello")
}`

func TestHighlightPreservesText(t *testing.T) {
	doc := content.Highlight(goSample, "main.go", testOpts)
	if got := doc.PlainText(); got != goSample {
		t.Fatalf("highlighting altered content:\n%q\nwant:\n%q", got, goSample)
	}
}

func TestHighlightProducesDistinctStyles(t *testing.T) {
	doc := content.Highlight(goSample, "main.go", testOpts)

	seen := make(map[tcell.Style]bool)
	for _, line := range doc.Lines {
		for _, sp := range line {
			seen[sp.Style] = true
		}
	}
	// Keywords, strings, and plain identifiers must not all share one style.
	if len(seen) < 2 {
		t.Fatalf("expected multiple styles, got %d", len(seen))
	}
}

func TestHighlightUnknownLanguageStillRenders(t *testing.T) {
	text := "just some prose\nwith two lines"
	doc := content.Highlight(text, "notes", testOpts)
	if got := doc.PlainText(); got != text {
		t.Fatalf("fallback highlighting altered content: %q", got)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(doc.Lines))
	}
}

// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/mime_test.go
// Summary: Extension to MIME type resolution edge cases.

package content_test

import (
	"testing"

	"github.com/framegrace/texbrowse/content"
)

func TestTypeForPathKnownExtensions(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"report.PDF", "application/pdf"}, // case-insensitive
		{"index.html", "text/html"},
		{"page.shtml", "text/html"},
		{"main.go", "text/plain"},
		{"styles.css", "text/css"},
		{"photo.JPEG", "image/jpeg"},
		{"archive.tar.gz", "application/x-gzip"}, // last segment wins
	}
	for _, c := range cases {
		if got := content.TypeForPath(c.path); got != c.want {
			t.Errorf("TypeForPath(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestTypeForPathUnknownFallsBackToHTML(t *testing.T) {
	for _, path := range []string{"README", "data.xyz123", "", "noext."} {
		if got := content.TypeForPath(path); got != content.DefaultType {
			t.Errorf("TypeForPath(%q) = %q, want %q", path, got, content.DefaultType)
		}
	}
}

func TestTypeForExtensionLeadingDot(t *testing.T) {
	if got := content.TypeForExtension(".pdf"); got != "application/pdf" {
		t.Fatalf("TypeForExtension(.pdf) = %q", got)
	}
	if got := content.TypeForExtension("pdf"); got != "application/pdf" {
		t.Fatalf("TypeForExtension(pdf) = %q", got)
	}
}

// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/highlight.go
// Summary: Chroma-based syntax highlighting for non-HTML text documents.

package content

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	enry "github.com/go-enry/go-enry/v2"
)

const defaultChromaStyle = "catppuccin-mocha"

// chromaStyle resolves a style name, falling back to the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultChromaStyle
	}
	return styles.Get(name)
}

// lexerFor picks a lexer for the document. enry's classifier resolves the
// language from the file name and content; chroma's own matching and
// content analysis are the fallbacks.
func lexerFor(sourceName, text string) chroma.Lexer {
	base := sourceName
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if lang := enry.GetLanguage(base, []byte(text)); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if base != "" {
		if l := lexers.Match(base); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// Highlight tokenizes text and emits a document of colorized lines. Tokens
// whose color matches the style's base text color keep the caller's base
// style so themed foregrounds survive.
func Highlight(text, sourceName string, o Options) Document {
	lexer := chroma.Coalesce(lexerFor(sourceName, text))
	style := chromaStyle(o.ChromaStyle)

	tokens, err := chroma.Tokenise(lexer, nil, strings.ReplaceAll(text, "\r\n", "\n"))
	if err != nil {
		return PlainDocument(text, o.Base)
	}

	baseColour := style.Get(chroma.Text).Colour
	var doc Document
	var current Line

	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		spanStyle := tokenStyle(style.Get(tok.Type), baseColour, o.Base)
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				doc.Lines = append(doc.Lines, current)
				current = nil
			}
			if part == "" {
				continue
			}
			current = append(current, Span{Text: part, Style: spanStyle})
		}
	}
	doc.Lines = append(doc.Lines, current)
	return doc
}

// tokenStyle maps a chroma style entry onto the base tcell style.
func tokenStyle(entry chroma.StyleEntry, baseColour chroma.Colour, base tcell.Style) tcell.Style {
	style := base
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		style = style.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}

// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texbrowse/main.go
// Summary: The texbrowse command: opens a file or URL in a browsable
// rich-text pane inside the terminal.
// Usage: texbrowse [flags] [file-or-url]

package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/texbrowse/browse"
	"github.com/framegrace/texbrowse/config"
	"github.com/framegrace/texbrowse/history"
	"github.com/framegrace/texbrowse/theme"
	"github.com/framegrace/texbrowse/ui/core"
	"github.com/framegrace/texbrowse/ui/widgets"
)

// welcomePage is shown when no source is given on the command line.
const welcomePage = `<html><head><title>texbrowse</title></head><body>
<h1>texbrowse</h1>
<p>A browsable rich-text pane for the terminal.</p>
<p><b>Usage:</b> texbrowse [flags] &lt;file-or-url&gt;</p>
<ul>
<li>Click a <a href="file:///dev/null">link</a> to follow it.</li>
<li>Arrow keys, PgUp/PgDn, Home/End scroll; the mouse wheel works too.</li>
<li>Press q or Ctrl+C to quit.</li>
</ul>
</body></html>`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texbrowse", flag.ContinueOnError)

	chromaStyle := fs.String("style", "", "Highlighting style for source files (overrides config)")
	contentType := fs.String("content-type", "", "Force a MIME type instead of deriving it from the extension")
	noWrap := fs.Bool("no-wrap", false, "Disable soft line wrapping")
	noHistory := fs.Bool("no-history", false, "Do not record visited pages")
	noBorder := fs.Bool("no-border", false, "Draw the pane without a frame")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	source := fs.Arg(0)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("texbrowse requires a terminal")
	}

	// Logging goes to a file; stdout belongs to the screen.
	if stateDir, err := config.StateDir(); err == nil {
		if f, err := os.OpenFile(filepath.Join(stateDir, "texbrowse.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			log.SetOutput(f)
			defer f.Close()
		}
	}

	cfg := config.System()

	var hist *history.Store
	if cfg.GetBool("history", "enabled", true) && !*noHistory {
		stateDir, err := config.StateDir()
		if err != nil {
			log.Printf("Main: history disabled, no state directory: %v", err)
		} else {
			hc := history.DefaultStoreConfig(filepath.Join(stateDir, "history.db"))
			hc.BatchSize = cfg.GetInt("history", "batch_size", hc.BatchSize)
			hist, err = history.OpenWithConfig(hc)
			if err != nil {
				log.Printf("Main: history disabled: %v", err)
				hist = nil
			}
		}
	}
	if hist != nil {
		defer hist.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	tm := theme.Get()
	bg := tcell.StyleDefault.
		Background(tm.GetColor("theme", "text_bg", tcell.ColorBlack)).
		Foreground(tm.GetColor("theme", "text_fg", tcell.ColorWhite))

	w, h := screen.Size()
	paneH := h - 1 // bottom row is the status line
	if paneH < 1 {
		paneH = 1
	}

	ui := core.NewUIManager(bg)
	ui.Resize(w, paneH)

	tb := widgets.NewTextBrowser(0, 0, w, paneH)
	style := *chromaStyle
	if style == "" {
		style = cfg.GetString("", "chromaStyle", "catppuccin-mocha")
	}
	tb.SetChromaStyle(style)
	if *noWrap {
		tb.SetLineWrap(false)
	}

	// The border delegates input to its child, so only one of the two is
	// ever registered with the manager.
	var frame *widgets.Border
	if *noBorder {
		ui.AddWidget(tb)
	} else {
		frame = widgets.NewBorder(0, 0, w, paneH, bg)
		frame.SetChild(tb)
		ui.AddWidget(frame)
	}
	ui.Focus(tb)

	loop := browse.NewLoop()

	pane := browse.NewPane(loop, tb, source)
	if source == "" {
		pane.SetContentType("text/html")
		pane.SetText(welcomePage)
	}
	if *contentType != "" {
		pane.SetContentType(*contentType)
	}
	if hist != nil && source != "" {
		hist.Record(source, pane.ContentType())
	}

	pane.SetLinkListener(func(ev browse.Event) {
		target := resolveLink(pane.PageURL(), ev.URL)
		if target == "" {
			return
		}
		log.Printf("Main: following link %s", target)
		if strings.Contains(target, "://") {
			pane.LoadURL(target)
		} else {
			pane.LoadFile(target)
		}
		if hist != nil {
			hist.Record(target, pane.ContentType())
		}
	})

	render := func() {
		buf := ui.Render()
		for y, row := range buf {
			for x, c := range row {
				screen.SetContent(x, y, c.Ch, nil, c.Style)
			}
		}
		drawStatus(screen, h-1, w, pane, bg.Reverse(true))
		screen.Show()
	}

	// Invalidations become render passes on the loop goroutine.
	refresh := make(chan bool, 1)
	ui.SetRefreshNotifier(refresh)
	go func() {
		for range refresh {
			if !loop.Submit(render) {
				return
			}
		}
	}()

	// The input pump: raw terminal events become units of work.
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				loop.Submit(func() {
					nw, nh := ev.Size()
					ph := nh - 1
					if ph < 1 {
						ph = 1
					}
					ui.Resize(nw, ph)
					if frame != nil {
						frame.Resize(nw, ph)
					} else {
						tb.Resize(nw, ph)
					}
					screen.Sync()
				})
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					loop.Stop()
					return
				}
				loop.Submit(func() { ui.HandleKey(ev) })
			case *tcell.EventMouse:
				loop.Submit(func() {
					ui.HandleMouse(ev)
					pane.HandleMouse(ev)
				})
			}
		}
	}()

	loop.Submit(render)
	loop.Run()

	if hist != nil {
		hist.Flush()
	}
	return nil
}

// resolveLink turns a clicked anchor into a loadable target, resolving
// relative references against the current page.
func resolveLink(base, href string) string {
	if href == "" {
		return ""
	}
	if strings.Contains(href, "://") || base == "" {
		return href
	}
	if strings.Contains(base, "://") {
		bu, err := url.Parse(base)
		if err != nil {
			return href
		}
		hu, err := url.Parse(href)
		if err != nil {
			return href
		}
		return bu.ResolveReference(hu).String()
	}
	if filepath.IsAbs(href) {
		return href
	}
	return filepath.Join(filepath.Dir(base), href)
}

// drawStatus paints the bottom status line: source, MIME type, key hints.
func drawStatus(screen tcell.Screen, y, w int, pane *browse.Pane, style tcell.Style) {
	if y < 0 {
		return
	}
	left := pane.PageURL()
	if left == "" {
		left = "texbrowse"
	}
	if ct := pane.ContentType(); ct != "" {
		left += "  [" + ct + "]"
	}
	const right = "q:quit"

	for x := 0; x < w; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
	col := 0
	for _, r := range left {
		if col >= w {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
	if start := w - len(right) - 1; start > col+2 {
		for i, r := range right {
			screen.SetContent(start+i, y, r, nil, style)
		}
	}
}

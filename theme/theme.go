// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/theme.go
// Summary: Config-backed color lookup for widgets.

package theme

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texbrowse/config"
)

// Theme resolves named colors from the "theme" config section.
type Theme struct {
	mu     sync.RWMutex
	colors map[string]tcell.Color
}

var (
	once     sync.Once
	instance *Theme
)

// Get returns the process-wide theme, loading it from config on first use.
func Get() *Theme {
	once.Do(func() {
		instance = &Theme{colors: make(map[string]tcell.Color)}
		instance.load()
	})
	return instance
}

func (t *Theme) load() {
	t.loadSection("theme", config.System().Section("theme"))
}

// loadSection registers a config section's colors under "section.key", the
// form GetColor resolves first.
func (t *Theme) loadSection(name string, section config.Section) {
	if section == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, raw := range section {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		if c, ok := parseColor(s); ok {
			t.colors[name+"."+key] = c
		}
	}
}

// GetColor returns the color registered under section.key, or the fallback.
func (t *Theme) GetColor(section, key string, fallback tcell.Color) tcell.Color {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if c, ok := t.colors[section+"."+key]; ok {
		return c
	}
	if c, ok := t.colors[key]; ok {
		return c
	}
	return fallback
}

// parseColor accepts "#rrggbb" hex or tcell color names.
func parseColor(s string) (tcell.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		var r, g, b int32
		for i, dst := range []*int32{&r, &g, &b} {
			hi := hexVal(s[1+2*i])
			lo := hexVal(s[2+2*i])
			if hi < 0 || lo < 0 {
				return 0, false
			}
			*dst = int32(hi<<4 | lo)
		}
		return tcell.NewRGBColor(r, g, b), true
	}
	if c, ok := tcell.ColorNames[strings.ToLower(s)]; ok {
		return c, true
	}
	return 0, false
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}

// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the system configuration file.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"chromaStyle": "catppuccin-mocha",
	})
	cfg.RegisterDefaults("theme", Section{
		"text_bg": "black",
		"text_fg": "white",
		"link_fg": "#89b4fa",
	})
	cfg.RegisterDefaults("history", Section{
		"enabled":    true,
		"batch_size": 32,
	})
}

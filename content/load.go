// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/load.go
// Summary: Whole-file loading with content-type inference.

package content

import (
	"fmt"
	"os"
)

// LoadFile reads the entire file into memory and infers its MIME content
// type from the extension.
func LoadFile(path string) (text, contentType string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), TypeForPath(path), nil
}

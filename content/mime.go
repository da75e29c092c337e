// Copyright © 2025 Texbrowse contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/mime.go
// Summary: Extension to MIME content-type lookup for loaded documents.

package content

import (
	"path/filepath"
	"strings"
)

// DefaultType is used when the extension is empty or unknown. Documents
// without a recognizable type are treated as HTML so markup still renders.
const DefaultType = "text/html"

// contentTypes maps lowercased file extensions (without dot) to MIME types.
// The table is immutable; TypeForExtension is the only reader.
var contentTypes = map[string]string{
	"bmp":   "image/bmp",
	"bz":    "application/x-bzip",
	"bz2":   "application/x-bzip2",
	"c":     "text/plain",
	"cc":    "text/plain",
	"cpp":   "text/plain",
	"css":   "text/css",
	"doc":   "application/msword",
	"exe":   "application/octet-stream",
	"gif":   "image/gif",
	"go":    "text/plain",
	"gz":    "application/x-gzip",
	"h":     "text/plain",
	"hpp":   "text/plain",
	"htm":   "text/html",
	"html":  "text/html",
	"ico":   "image/x-icon",
	"java":  "text/plain",
	"jpeg":  "image/jpeg",
	"jpg":   "image/jpeg",
	"js":    "text/plain",
	"json":  "text/plain",
	"md":    "text/plain",
	"mid":   "audio/midi",
	"mov":   "video/quicktime",
	"mp3":   "audio/mpeg",
	"mpg":   "video/mpeg",
	"odt":   "application/vnd.oasis.opendocument.text",
	"pdf":   "application/pdf",
	"pl":    "text/plain",
	"png":   "image/png",
	"ppt":   "application/powerpoint",
	"ps":    "application/postscript",
	"py":    "text/plain",
	"rb":    "text/plain",
	"rtf":   "application/rtf",
	"sh":    "text/plain",
	"shtml": "text/html",
	"tex":   "application/x-tex",
	"tif":   "image/tiff",
	"tiff":  "image/tiff",
	"toml":  "text/plain",
	"txt":   "text/plain",
	"wav":   "audio/wav",
	"xls":   "application/excel",
	"xml":   "text/plain",
	"yaml":  "text/plain",
	"yml":   "text/plain",
	"zip":   "application/zip",
}

// TypeForExtension resolves a MIME type from a file extension. The extension
// may carry a leading dot or extra leading segments ("foo.BAZ.BaR" resolves
// as "bar"); matching is case-insensitive.
func TypeForExtension(extension string) string {
	if extension == "" {
		return DefaultType
	}
	ext := strings.ToLower(extension)
	if dot := strings.LastIndexByte(ext, '.'); dot >= 0 {
		ext = ext[dot+1:]
	}
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return DefaultType
}

// TypeForPath resolves a MIME type from a file path.
func TypeForPath(path string) string {
	return TypeForExtension(filepath.Ext(path))
}

// CLASSIFICATION: COMMUNITY
// Filename: mime.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-15
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package static

import (
	"path/filepath"
	"strings"
)

// DefaultContentType is sent for extensions missing from the table.
const DefaultContentType = "application/octet-stream"

// mimeTypes is read-only after init.
var mimeTypes = map[string]string{
	".html":  "text/html; charset=utf-8",
	".css":   "text/css; charset=utf-8",
	".js":    "application/javascript; charset=utf-8",
	".json":  "application/json; charset=utf-8",
	".svg":   "image/svg+xml; charset=utf-8",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".ico":   "image/x-icon",
	".webp":  "image/webp",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".yml":   "text/yaml; charset=utf-8",
	".yaml":  "text/yaml; charset=utf-8",
}

// ContentType maps a file name to the content type served for it. The
// extension match is case-insensitive.
func ContentType(name string) string {
	if ct, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return DefaultContentType
}

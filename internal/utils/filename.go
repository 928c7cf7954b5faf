package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SanitizeFilename strips every character outside [A-Za-z0-9._-] from
// the base name of an uploaded file.
func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		cleaned = "arquivo"
	}
	return cleaned
}

// StampFilename prefixes a sanitized filename with the creation
// timestamp so concurrent uploads of the same name cannot collide.
func StampFilename(name string) string {
	return fmt.Sprintf("%d_%s", time.Now().UnixNano(), SanitizeFilename(name))
}

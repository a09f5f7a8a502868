package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SanitizeFileName replaces characters outside [a-zA-Z0-9-_.] with '_'
func SanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}

// TimestampedName builds "name_<unix>.ext" from an original filename,
// sanitized for storage on disk.
func TimestampedName(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	timestamp := time.Now().Unix()
	return SanitizeFileName(fmt.Sprintf("%s_%d%s", base, timestamp, ext))
}

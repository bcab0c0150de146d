package service

import (
	"strings"
)

// sanitizeUTF8 drops invalid UTF-8 and NUL bytes, both of which PostgreSQL
// rejects in text columns. Extracted PDF text and pasted form input carry them.
func sanitizeUTF8(s string) string {
	s = strings.ToValidUTF8(s, "")
	if strings.IndexByte(s, 0) >= 0 {
		s = strings.ReplaceAll(s, "\x00", "")
	}
	return s
}

// truncateRunes shortens s to at most n runes, for log fields and titles.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

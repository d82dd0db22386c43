package api

import (
	"strings"
	"unicode/utf8"
)

// TrimToRect keeps at most maxHeight lines of at most maxWidth bytes each,
// marking every cut with "[...]". Non-UTF-8 data is replaced by a short note.
func TrimToRect(s []byte, maxHeight int, maxWidth int) string {
	if len(s) == 0 {
		return ""
	}
	if !utf8.Valid(s) {
		return "[binary data]"
	}
	lines := strings.Split(string(s), "\n")
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
		lines = append(lines, "[...]")
	}
	var res strings.Builder
	for i, line := range lines {
		if i > 0 {
			res.WriteByte('\n')
		}
		if len(line) > maxWidth {
			cut := maxWidth
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			res.WriteString(line[:cut] + "[...]")
		} else {
			res.WriteString(line)
		}
	}
	return res.String()
}

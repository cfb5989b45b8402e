// internal/util/util.go
package util

import (
	"strings"
	"unicode/utf8"
)

// TruncateRunes truncates a string to a maximum number of runes,
// appending an ellipsis if truncated.
func TruncateRunes(text string, maxRunes int) string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}

// WrapToWidth wraps the given text to a specified width, breaking long
// words when a single word exceeds the width.
func WrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			out = append(out, "")
			continue
		}
		var cur strings.Builder
		runeCount := 0
		for wi, w := range strings.Fields(line) {
			space := 0
			if wi > 0 {
				space = 1
			}
			wLen := utf8.RuneCountInString(w)
			if runeCount+space+wLen <= width {
				if wi > 0 {
					cur.WriteByte(' ')
					runeCount++
				}
				cur.WriteString(w)
				runeCount += wLen
				continue
			}
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
				runeCount = 0
			}
			for wLen > width {
				runes := []rune(w)
				out = append(out, string(runes[:width]))
				w = string(runes[width:])
				wLen = utf8.RuneCountInString(w)
			}
			cur.WriteString(w)
			runeCount = wLen
		}
		if cur.Len() > 0 || runeCount == 0 {
			out = append(out, cur.String())
		}
	}
	return strings.Join(out, "\n")
}

// Indent prefixes every line of text with the given prefix.
func Indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

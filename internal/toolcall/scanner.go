// internal/toolcall/scanner.go
// Package toolcall recovers structured tool call requests from freeform
// model reply text. Models without native tool support emit calls as
// JSON-like fragments inside prose; this package splits the text into
// segments, leniently parses the brace-delimited ones, and filters the
// results against an allow-list catalog.
package toolcall

import "strings"

// SegmentKind distinguishes prose from brace-delimited call candidates.
type SegmentKind int

const (
	// SegmentPlain is text outside any balanced-brace region.
	SegmentPlain SegmentKind = iota
	// SegmentCandidate is a balanced-brace substring that may be a call.
	SegmentCandidate
)

// Segment is one contiguous slice of the scanned text.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Scan splits text into plain and candidate segments in document order.
// A candidate starts at a top-level '{' (or '[', since some models wrap
// several calls in one array) and ends at its balanced closing partner.
// Text without a '{' is one plain segment regardless of brackets: arrays
// only matter as wrappers around call objects. Depth tracking ignores
// braces inside quoted strings, single or double, since lenient parsing
// accepts both; when a lone apostrophe would leave a single-quote region
// open past the end of input, the region is rescanned with '\'' as a
// literal so prose like "the user's id" cannot swallow later candidates.
// Segments are gap-free and non-overlapping: concatenating them
// reproduces the input exactly. An object left unterminated at end of
// input is still emitted as a candidate so the parser can attempt a
// repair.
func Scan(text string) []Segment {
	if text == "" {
		return nil
	}
	if !strings.ContainsRune(text, '{') {
		return []Segment{{Kind: SegmentPlain, Text: text}}
	}

	var segments []Segment
	plainStart := 0
	i := 0
	for i < len(text) {
		if text[i] != '{' && text[i] != '[' {
			i++
			continue
		}
		end := scanBalanced(text[i:], true)
		if end == 0 {
			// An apostrophe can open single-quote tracking that never
			// closes; retry with '\'' treated as ordinary text.
			end = scanBalanced(text[i:], false)
		}
		if end == 0 {
			// Unterminated object: candidate runs to end of input.
			end = len(text) - i
		}
		if i > plainStart {
			segments = append(segments, Segment{Kind: SegmentPlain, Text: text[plainStart:i]})
		}
		segments = append(segments, Segment{Kind: SegmentCandidate, Text: text[i : i+end]})
		i += end
		plainStart = i
	}
	if plainStart < len(text) {
		segments = append(segments, Segment{Kind: SegmentPlain, Text: text[plainStart:]})
	}
	return segments
}

// scanBalanced returns the length of the balanced prefix of text, which
// must start with '{' or '['. It returns 0 when the delimiters never
// balance. Single quotes are treated as string delimiters only when
// trackSingleQuotes is set.
func scanBalanced(text string, trackSingleQuotes bool) int {
	open := text[0]
	var closing byte = '}'
	if open == '[' {
		closing = ']'
	}

	depth := 0
	var quote byte
	for i := 0; i < len(text); i++ {
		char := text[i]
		if quote != 0 {
			if char == '\\' {
				i++
				continue
			}
			if char == quote {
				quote = 0
			}
			continue
		}
		switch char {
		case '"':
			quote = char
		case '\'':
			if trackSingleQuotes {
				quote = char
			}
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return 0
}

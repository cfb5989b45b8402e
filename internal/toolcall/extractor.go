// internal/toolcall/extractor.go
package toolcall

import (
	"strings"

	"github.com/mwiater/toolless/internal/catalog"
)

// Request is one reconstructed tool call. IDs are unique within the
// extraction that produced them; Name always matches a catalog entry at
// extraction time.
type Request struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// DropStats counts candidate segments discarded during one extraction,
// by reason. Drops are silent; the counters exist for logging and tests.
type DropStats struct {
	ParseFailures  int
	NotCallShaped  int
	UnknownTool    int
	EmptyArguments int
}

// Total returns the number of dropped candidates across all reasons.
func (d DropStats) Total() int {
	return d.ParseFailures + d.NotCallShaped + d.UnknownTool + d.EmptyArguments
}

// Result is the outcome of one extraction: the accepted calls in
// document order, the verbatim input text, and the drop tally. The text
// is never stripped of its JSON substrings; the call list is additive.
type Result struct {
	Calls []Request
	Text  string
	Drops DropStats
}

// Extract scans text for embedded call objects and returns those naming
// a cataloged tool with non-empty object arguments. Candidates that fail
// to parse, lack call shape, name an unknown tool, or carry empty
// arguments are dropped and counted. Malformed input never produces an
// error; a reply with no usable call passes through with an empty list.
func Extract(text string, cat catalog.Catalog) Result {
	result := Result{Text: text}
	if text == "" || !strings.ContainsRune(text, '{') {
		return result
	}

	for _, segment := range Scan(text) {
		if segment.Kind != SegmentCandidate {
			continue
		}
		value, ok := ParseCandidate(segment.Text)
		if !ok {
			result.Drops.ParseFailures++
			continue
		}
		// Some models emit a JSON array of calls; flatten one level.
		entries, ok := value.([]any)
		if !ok {
			entries = []any{value}
		}
		for _, entry := range entries {
			name, args, ok := callShape(entry)
			if !ok {
				result.Drops.NotCallShaped++
				continue
			}
			if !cat.Has(name) {
				result.Drops.UnknownTool++
				continue
			}
			if len(args) == 0 {
				result.Drops.EmptyArguments++
				continue
			}
			result.Calls = append(result.Calls, Request{
				ID:        newCallID(),
				Name:      name,
				Arguments: args,
			})
		}
	}
	return result
}

// internal/toolcall/scanner_test.go
package toolcall

import (
	"strings"
	"testing"
)

// TestScanNoBraces verifies that brace-free input yields a single plain
// segment equal to the whole text.
func TestScanNoBraces(t *testing.T) {
	t.Parallel()

	segments := Scan("just a plain sentence")
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Kind != SegmentPlain || segments[0].Text != "just a plain sentence" {
		t.Fatalf("unexpected segment: %+v", segments[0])
	}
}

func TestScanEmptyInput(t *testing.T) {
	t.Parallel()

	if segments := Scan(""); segments != nil {
		t.Fatalf("expected no segments for empty input, got %+v", segments)
	}
}

// TestScanSegmentsReconstructInput verifies the gap-free property: the
// concatenated segments reproduce the input exactly.
func TestScanSegmentsReconstructInput(t *testing.T) {
	t.Parallel()

	cases := []string{
		`Sure! {"name": "lookup", "arguments": {"id": 7}} done.`,
		`{"a":1}{"b":2}`,
		`leading {"x": "{not a brace}"} trailing`,
		`unbalanced start { "name": "x"`,
		`no candidates here at all`,
	}
	for _, input := range cases {
		var b strings.Builder
		for _, seg := range Scan(input) {
			b.WriteString(seg.Text)
		}
		if b.String() != input {
			t.Fatalf("segments do not reconstruct input\n got: %q\nwant: %q", b.String(), input)
		}
	}
}

func TestScanTagsCandidates(t *testing.T) {
	t.Parallel()

	segments := Scan(`Sure! {"name": "lookup", "arguments": {"id": 7}} done.`)
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(segments), segments)
	}
	if segments[0].Kind != SegmentPlain || segments[0].Text != "Sure! " {
		t.Fatalf("unexpected leading segment: %+v", segments[0])
	}
	if segments[1].Kind != SegmentCandidate || segments[1].Text != `{"name": "lookup", "arguments": {"id": 7}}` {
		t.Fatalf("unexpected candidate segment: %+v", segments[1])
	}
	if segments[2].Kind != SegmentPlain || segments[2].Text != " done." {
		t.Fatalf("unexpected trailing segment: %+v", segments[2])
	}
}

// TestScanBracesInsideStrings verifies that braces inside quoted strings
// do not perturb depth tracking.
func TestScanBracesInsideStrings(t *testing.T) {
	t.Parallel()

	input := `{"msg": "curly } inside", "n": 1} tail`
	segments := Scan(input)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segments), segments)
	}
	if segments[0].Kind != SegmentCandidate || segments[0].Text != `{"msg": "curly } inside", "n": 1}` {
		t.Fatalf("unexpected candidate: %+v", segments[0])
	}

	// Same property for single-quoted strings, which lenient parsing accepts.
	input = `{'msg': 'open { brace'} end`
	segments = Scan(input)
	if segments[0].Kind != SegmentCandidate || segments[0].Text != `{'msg': 'open { brace'}` {
		t.Fatalf("unexpected single-quote candidate: %+v", segments[0])
	}
}

func TestScanEscapedQuotes(t *testing.T) {
	t.Parallel()

	input := `{"msg": "a \" quote } here"} rest`
	segments := Scan(input)
	if segments[0].Kind != SegmentCandidate || segments[0].Text != `{"msg": "a \" quote } here"}` {
		t.Fatalf("unexpected candidate with escaped quote: %+v", segments[0])
	}
}

// TestScanUnterminatedCandidate verifies an object left open at end of
// input is still emitted as a candidate for the repair ladder.
func TestScanUnterminatedCandidate(t *testing.T) {
	t.Parallel()

	segments := Scan(`try {"name": "lookup", "arguments": {"id": 7}`)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segments), segments)
	}
	if segments[1].Kind != SegmentCandidate {
		t.Fatalf("expected trailing candidate, got %+v", segments[1])
	}
}

// TestScanApostropheInBraceRegion verifies that a lone apostrophe inside
// a brace region does not open a string region that swallows the rest of
// the input: the region closes at its own brace and a later well-formed
// candidate is still emitted on its own.
func TestScanApostropheInBraceRegion(t *testing.T) {
	t.Parallel()

	input := `Use {the user's id} here. {"name": "lookup", "arguments": {"id": 7}}`
	segments := Scan(input)

	var candidates []string
	for _, seg := range segments {
		if seg.Kind == SegmentCandidate {
			candidates = append(candidates, seg.Text)
		}
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(candidates), segments)
	}
	if candidates[0] != `{the user's id}` {
		t.Fatalf("unexpected first candidate: %q", candidates[0])
	}
	if candidates[1] != `{"name": "lookup", "arguments": {"id": 7}}` {
		t.Fatalf("unexpected second candidate: %q", candidates[1])
	}

	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
	}
	if b.String() != input {
		t.Fatalf("segments do not reconstruct input: %q", b.String())
	}
}

// TestScanBracketsWithoutBraces verifies brace-free text stays one plain
// segment even when it contains brackets.
func TestScanBracketsWithoutBraces(t *testing.T) {
	t.Parallel()

	segments := Scan(`pick one of [1, 2, 3] please`)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d: %+v", len(segments), segments)
	}
	if segments[0].Kind != SegmentPlain || segments[0].Text != `pick one of [1, 2, 3] please` {
		t.Fatalf("unexpected segment: %+v", segments[0])
	}
}

func TestScanMultipleCandidatesInOrder(t *testing.T) {
	t.Parallel()

	segments := Scan(`a {"n":1} b {"n":2} c`)
	var candidates []string
	for _, seg := range segments {
		if seg.Kind == SegmentCandidate {
			candidates = append(candidates, seg.Text)
		}
	}
	if len(candidates) != 2 || candidates[0] != `{"n":1}` || candidates[1] != `{"n":2}` {
		t.Fatalf("unexpected candidates: %v", candidates)
	}
}

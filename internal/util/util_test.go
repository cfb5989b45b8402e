// internal/util/util_test.go
package util

import (
	"strings"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	if got := TruncateRunes("hello", 10); got != "hello" {
		t.Fatalf("short input changed: %q", got)
	}
	if got := TruncateRunes("hello world", 5); got != "hello…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := TruncateRunes("héllo wörld", 5); got != "héllo…" {
		t.Fatalf("rune-aware truncation failed: %q", got)
	}
}

func TestWrapToWidth(t *testing.T) {
	t.Parallel()

	got := WrapToWidth("one two three four", 9)
	for _, line := range strings.Split(got, "\n") {
		if len([]rune(line)) > 9 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if !strings.Contains(got, "one two") {
		t.Fatalf("unexpected wrap: %q", got)
	}

	// A single over-long word is broken rather than overflowing.
	got = WrapToWidth("abcdefghij", 4)
	for _, line := range strings.Split(got, "\n") {
		if len([]rune(line)) > 4 {
			t.Fatalf("long word not broken: %q", line)
		}
	}

	if got := WrapToWidth("unchanged", 0); got != "unchanged" {
		t.Fatalf("zero width should passthrough: %q", got)
	}
}

func TestIndent(t *testing.T) {
	t.Parallel()

	got := Indent("a\n\nb", "  ")
	if got != "  a\n\n  b" {
		t.Fatalf("unexpected indent: %q", got)
	}
}

// internal/conversation/normalize_test.go
package conversation

import (
	"reflect"
	"strings"
	"testing"
)

// TestNormalizeMergesAdjacentUserLikeTurns pins the merge contract:
// content is concatenated with no separator and the tool role is
// rewritten to user.
func TestNormalizeMergesAdjacentUserLikeTurns(t *testing.T) {
	t.Parallel()

	input := []Message{
		{Role: RoleUser, Content: "A"},
		{Role: RoleTool, Content: "B"},
		{Role: RoleAssistant, Content: "C"},
	}
	out, err := Normalize(input)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	want := []Message{
		{Role: RoleUser, Content: "AB"},
		{Role: RoleAssistant, Content: "C"},
	}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("unexpected output:\n got: %+v\nwant: %+v", out, want)
	}
}

// TestNormalizeDoesNotMergeAcrossSystem verifies a system message breaks
// the user run and passes through unchanged.
func TestNormalizeDoesNotMergeAcrossSystem(t *testing.T) {
	t.Parallel()

	input := []Message{
		{Role: RoleSystem, Content: "S"},
		{Role: RoleUser, Content: "A"},
	}
	out, err := Normalize(input)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected length preserved at 2, got %d", len(out))
	}
	if out[0].Role != RoleSystem || out[0].Content != "S" {
		t.Fatalf("system message changed: %+v", out[0])
	}
	if out[1].Role != RoleUser || out[1].Content != "A" {
		t.Fatalf("user message changed: %+v", out[1])
	}
}

// TestNormalizeIdempotent verifies normalize(normalize(m)) == normalize(m).
func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	input := []Message{
		{Role: RoleUser, Content: "A"},
		{Role: RoleTool, Content: "B", ToolResponses: []ToolResponse{{Role: RoleTool, Content: "r1"}}},
		{Role: RoleAssistant, Content: "C"},
		{Role: RoleTool, Content: "D"},
		{Role: RoleUser, Content: "E"},
		{Role: RoleSystem, Content: "S"},
	}
	once, err := Normalize(input)
	if err != nil {
		t.Fatalf("first Normalize error: %v", err)
	}
	twice, err := Normalize(once)
	if err != nil {
		t.Fatalf("second Normalize error: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("not idempotent:\n once: %+v\ntwice: %+v", once, twice)
	}
}

// TestNormalizeRewritesToolResponses verifies response records are
// rewritten to the user role and flattened onto the surviving message.
func TestNormalizeRewritesToolResponses(t *testing.T) {
	t.Parallel()

	input := []Message{
		{Role: RoleUser, Content: "A", ToolResponses: []ToolResponse{{Role: RoleTool, Content: "r1"}}},
		{Role: RoleTool, Content: "B", ToolResponses: []ToolResponse{{Role: RoleTool, Content: "r2"}, {Role: RoleTool, Content: "r3"}}},
	}
	out, err := Normalize(input)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected single merged message, got %d", len(out))
	}
	responses := out[0].ToolResponses
	if len(responses) != 3 {
		t.Fatalf("expected 3 flattened responses, got %d: %+v", len(responses), responses)
	}
	for i, r := range responses {
		if r.Role != RoleUser {
			t.Fatalf("response %d role not rewritten: %+v", i, r)
		}
	}
	if responses[0].Content != "r1" || responses[1].Content != "r2" || responses[2].Content != "r3" {
		t.Fatalf("responses out of order: %+v", responses)
	}
}

// TestNormalizeDoesNotMutateInput verifies copy-on-write: the caller's
// history keeps its roles and response records.
func TestNormalizeDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := []Message{
		{Role: RoleTool, Content: "B", ToolResponses: []ToolResponse{{Role: RoleTool, Content: "r1"}}},
		{Role: RoleUser, Content: "C"},
	}
	if _, err := Normalize(input); err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if input[0].Role != RoleTool {
		t.Fatalf("input role mutated: %+v", input[0])
	}
	if input[0].ToolResponses[0].Role != RoleTool {
		t.Fatalf("input tool response mutated: %+v", input[0].ToolResponses[0])
	}
	if input[0].Content != "B" || input[1].Content != "C" {
		t.Fatalf("input content mutated: %+v", input)
	}
}

// TestNormalizeUnknownRole verifies unrecognized roles are a contract
// violation, not something to guess around.
func TestNormalizeUnknownRole(t *testing.T) {
	t.Parallel()

	_, err := Normalize([]Message{{Role: "narrator", Content: "X"}})
	if err == nil {
		t.Fatal("expected error for unrecognized role")
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	t.Parallel()

	out, err := Normalize(nil)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %+v", out)
	}
}

// TestNormalizeNeverDropsContent verifies every input turn's content
// survives somewhere in the output.
func TestNormalizeNeverDropsContent(t *testing.T) {
	t.Parallel()

	input := []Message{
		{Role: RoleUser, Content: "one"},
		{Role: RoleTool, Content: "two"},
		{Role: RoleAssistant, Content: "three"},
		{Role: RoleUser, Content: "four"},
		{Role: RoleUser, Content: "five"},
	}
	out, err := Normalize(input)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	var all string
	for _, msg := range out {
		all += msg.Content
	}
	for _, msg := range input {
		if !strings.Contains(all, msg.Content) {
			t.Fatalf("content %q lost in output %q", msg.Content, all)
		}
	}
	merges := len(input) - len(out)
	if merges != 2 {
		t.Fatalf("expected 2 merges, got %d (output %+v)", merges, out)
	}
}

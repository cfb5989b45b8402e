// internal/shim/shim.go
// Package shim wires the pure transformation stages into the ordered
// pipeline the chat loop runs around each model request. There is no
// hook registry: every stage is an explicit function over the values it
// needs, invoked in a fixed order.
package shim

import (
	"strings"

	"github.com/mwiater/toolless/internal/catalog"
	"github.com/mwiater/toolless/internal/conversation"
	"github.com/mwiater/toolless/internal/toolcall"
)

// toolUseInstructions is appended to the system prompt so the model knows
// how to request a tool in plain text.
const toolUseInstructions = "You can call these tools by replying with json:\n" +
	`{"name": "toolname", "arguments": {"arg1": arg1, "arg2": arg2}}`

// Stage names, in invocation order around one model request.
const (
	StageBeforeSend   = "beforeSend"
	StageBeforeReply  = "beforeReply"
	StageAfterReceive = "afterReceive"
)

// Pipeline holds the catalog shared by the stages of one orchestration
// cycle. It carries no other state; every stage is a pure function.
type Pipeline struct {
	Catalog catalog.Catalog
}

// New returns a pipeline over the given catalog.
func New(cat catalog.Catalog) Pipeline {
	return Pipeline{Catalog: cat}
}

// StageNames lists the pipeline stages in the order they run.
func StageNames() []string {
	return []string{StageBeforeSend, StageBeforeReply, StageAfterReceive}
}

// BeforeSend rewrites the outgoing history for strict alternating-turn
// backends. The returned slice is a fresh value; the caller's
// authoritative history is untouched.
func (p Pipeline) BeforeSend(history []conversation.Message) ([]conversation.Message, error) {
	return conversation.Normalize(history)
}

// BeforeReply decorates the base system prompt with the tool-use
// instructions and the current catalog listing (or the fixed no-tools
// notice). It rebuilds the text every cycle so the allow-list always
// reflects the current configuration.
func (p Pipeline) BeforeReply(systemPrompt string) string {
	var b strings.Builder
	if trimmed := strings.TrimSpace(systemPrompt); trimmed != "" {
		b.WriteString(trimmed)
		b.WriteString("\n\n")
	}
	b.WriteString(toolUseInstructions)
	b.WriteString("\n\n")
	b.WriteString(p.Catalog.Listing())
	return b.String()
}

// AfterReceive extracts tool calls from the raw reply text and builds the
// assistant message appended to history, as if the backend had returned
// the calls natively. The message content is the verbatim reply.
func (p Pipeline) AfterReceive(text string) (conversation.Message, toolcall.DropStats) {
	result := toolcall.Extract(text, p.Catalog)
	return conversation.Message{
		Role:      conversation.RoleAssistant,
		Content:   result.Text,
		ToolCalls: result.Calls,
	}, result.Drops
}

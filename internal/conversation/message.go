// internal/conversation/message.go
// Package conversation models chat turns and rewrites histories for
// backends whose templates require strict user/assistant alternation and
// reject the tool role.
package conversation

import (
	"github.com/mwiater/toolless/internal/toolcall"
)

// Role identifies the speaker of a message. The set is closed; any other
// value is a contract violation by the caller.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Valid reports whether the role is one of the recognized values.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	}
	return false
}

// UserLike reports whether the role counts as a user turn under strict
// alternating-turn templates. Tool results speak with the user's voice.
func (r Role) UserLike() bool {
	return r == RoleUser || r == RoleTool
}

// ToolResponse is one tool result record carried on a message.
type ToolResponse struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Message is a single conversation turn.
type Message struct {
	Role          Role               `json:"role"`
	Content       string             `json:"content"`
	ToolResponses []ToolResponse     `json:"tool_responses,omitempty"`
	ToolCalls     []toolcall.Request `json:"tool_calls,omitempty"`
}

// internal/conversation/normalize.go
package conversation

import "fmt"

// Normalize rewrites a history so that no tool role survives and no two
// user-like turns sit adjacent: consecutive user/tool messages collapse
// into one user message. Content of merged turns is concatenated with no
// separator, preserving the behavior of the template-constrained backends
// this feeds. Tool responses on merged turns are rewritten to the user
// role and flattened onto the surviving message. System and assistant
// messages pass through untouched and break the run.
//
// The input is never mutated; merged messages are copies. No message is
// dropped: every input turn survives, either on its own or merged into
// its predecessor. A message with an unrecognized role is a contract
// violation and yields an error.
func Normalize(messages []Message) ([]Message, error) {
	out := make([]Message, 0, len(messages))
	userRun := false

	for i, msg := range messages {
		if !msg.Role.Valid() {
			return nil, fmt.Errorf("conversation: message %d has unrecognized role %q", i, msg.Role)
		}
		if !msg.Role.UserLike() {
			out = append(out, msg)
			userRun = false
			continue
		}

		if userRun {
			last := &out[len(out)-1]
			last.Content += msg.Content
			if len(msg.ToolResponses) > 0 {
				last.ToolResponses = append(last.ToolResponses, asUserResponses(msg.ToolResponses)...)
			}
			continue
		}

		merged := msg
		merged.Role = RoleUser
		merged.ToolResponses = asUserResponses(msg.ToolResponses)
		out = append(out, merged)
		userRun = true
	}
	return out, nil
}

// asUserResponses copies tool response records with their role rewritten
// to user, leaving the originals untouched.
func asUserResponses(responses []ToolResponse) []ToolResponse {
	if len(responses) == 0 {
		return nil
	}
	out := make([]ToolResponse, len(responses))
	for i, r := range responses {
		r.Role = RoleUser
		out[i] = r
	}
	return out
}

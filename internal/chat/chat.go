// internal/chat/chat.go
// Package chat runs the conversational loop: it sends the normalized
// history to the backend, reconstructs tool calls from the reply,
// executes them, and feeds results back for a follow-up turn.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwiater/toolless/internal/appconfig"
	"github.com/mwiater/toolless/internal/catalog"
	"github.com/mwiater/toolless/internal/conversation"
	"github.com/mwiater/toolless/internal/logging"
	"github.com/mwiater/toolless/internal/providers"
	"github.com/mwiater/toolless/internal/shim"
	"github.com/mwiater/toolless/internal/tools"
)

// maxToolRounds bounds how many tool-execution follow-ups one user turn
// may trigger before the loop returns whatever the model last said.
const maxToolRounds = 3

// Session owns the authoritative history for one conversation with one
// host. The pipeline only ever sees derived copies of that history.
type Session struct {
	cfg      *appconfig.Config
	host     appconfig.Host
	provider providers.ChatProvider
	pipeline shim.Pipeline
	history  []conversation.Message
}

// NewSession creates a session against the given host using the enabled
// built-in tools as the catalog.
func NewSession(cfg *appconfig.Config, host appconfig.Host, provider providers.ChatProvider) *Session {
	return &Session{
		cfg:      cfg,
		host:     host,
		provider: provider,
		pipeline: shim.New(tools.NewCatalog(cfg.EnabledTools())),
	}
}

// NewSessionWithCatalog creates a session over an explicit catalog;
// used by tests and callers that manage their own tool set.
func NewSessionWithCatalog(cfg *appconfig.Config, host appconfig.Host, provider providers.ChatProvider, cat catalog.Catalog) *Session {
	return &Session{
		cfg:      cfg,
		host:     host,
		provider: provider,
		pipeline: shim.New(cat),
	}
}

// History returns a copy of the authoritative conversation history.
func (s *Session) History() []conversation.Message {
	out := make([]conversation.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Catalog returns the session's tool catalog.
func (s *Session) Catalog() catalog.Catalog {
	return s.pipeline.Catalog
}

// Send appends a user turn, runs the request/extract/execute loop, and
// returns every message appended to the history during this turn, in
// order. OnChunk, when set, receives streamed content fragments.
func (s *Session) Send(ctx context.Context, text string, onChunk func(string)) ([]conversation.Message, error) {
	appendedFrom := len(s.history)
	s.history = append(s.history, conversation.Message{Role: conversation.RoleUser, Content: text})

	for round := 0; round <= maxToolRounds; round++ {
		assistant, err := s.requestOnce(ctx, onChunk)
		if err != nil {
			return nil, err
		}
		s.history = append(s.history, assistant)

		if len(assistant.ToolCalls) == 0 || round == maxToolRounds {
			break
		}

		toolMsg, ran := s.runToolCalls(ctx, assistant)
		if !ran {
			break
		}
		s.history = append(s.history, toolMsg)
	}

	return s.History()[appendedFrom:], nil
}

// requestOnce sends the current history through the pipeline and backend
// once and returns the reconstructed assistant message.
func (s *Session) requestOnce(ctx context.Context, onChunk func(string)) (conversation.Message, error) {
	outgoing, err := s.pipeline.BeforeSend(s.history)
	if err != nil {
		return conversation.Message{}, fmt.Errorf("chat: normalize history: %w", err)
	}

	var reply strings.Builder
	req := providers.StreamRequest{
		Host:             s.host,
		Model:            s.host.Model,
		Messages:         outgoing,
		SystemPrompt:     s.pipeline.BeforeReply(s.host.SystemPrompt),
		DisableStreaming: s.cfg.DisableStreaming,
	}
	err = s.provider.Stream(ctx, req, providers.StreamCallbacks{
		OnChunk: func(msg conversation.Message) error {
			reply.WriteString(msg.Content)
			if onChunk != nil {
				onChunk(msg.Content)
			}
			return nil
		},
	})
	if err != nil {
		return conversation.Message{}, err
	}

	assistant, drops := s.pipeline.AfterReceive(reply.String())
	logging.LogDrops(hostName(s.host), s.host.Model,
		drops.ParseFailures, drops.NotCallShaped, drops.UnknownTool, drops.EmptyArguments)
	return assistant, nil
}

// runToolCalls executes the assistant's tool calls and collects their
// output into one tool-role message. Failed calls report their error text
// back to the model instead of aborting the turn.
func (s *Session) runToolCalls(ctx context.Context, assistant conversation.Message) (conversation.Message, bool) {
	var outputs []string
	var responses []conversation.ToolResponse
	for _, call := range assistant.ToolCalls {
		result, err := tools.Execute(ctx, s.pipeline.Catalog, call.Name, call.Arguments)
		if err != nil {
			logging.LogEvent("chat: tool %s (%s) failed: %v", call.Name, call.ID, err)
			result = fmt.Sprintf("Tool %s failed: %v", call.Name, err)
		}
		outputs = append(outputs, fmt.Sprintf("[Tool %s]\n%s", call.Name, result))
		responses = append(responses, conversation.ToolResponse{
			Role:    conversation.RoleTool,
			Content: result,
		})
	}
	if len(outputs) == 0 {
		return conversation.Message{}, false
	}
	return conversation.Message{
		Role:          conversation.RoleTool,
		Content:       strings.Join(outputs, "\n\n"),
		ToolResponses: responses,
	}, true
}

func hostName(host appconfig.Host) string {
	if name := strings.TrimSpace(host.Name); name != "" {
		return name
	}
	return host.URL
}

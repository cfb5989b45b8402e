// internal/providers/provider.go
// Package providers defines the interface for chat backends. Backends
// here are assumed to have no native tool calling; the shim pipeline
// supplies that around each request, so a StreamRequest never carries
// tool definitions.
package providers

import (
	"context"
	"time"

	"github.com/mwiater/toolless/internal/appconfig"
	"github.com/mwiater/toolless/internal/conversation"
)

// StreamRequest encapsulates one chat request to a backend. Messages are
// the already-normalized history; the system prompt has already been
// decorated with the tool listing by the pipeline.
type StreamRequest struct {
	Host             appconfig.Host
	Model            string
	Messages         []conversation.Message
	SystemPrompt     string
	DisableStreaming bool
}

// StreamMetadata carries timing and token counts for a completed reply.
type StreamMetadata struct {
	Model           string
	CreatedAt       time.Time
	Done            bool
	TotalDuration   int64
	PromptEvalCount int
	EvalCount       int
}

// StreamCallbacks receives reply content as it arrives. OnChunk is called
// per content fragment, OnComplete once at the end.
type StreamCallbacks struct {
	OnChunk    func(conversation.Message) error
	OnComplete func(StreamMetadata) error
}

// ChatProvider is the interface chat backends implement.
type ChatProvider interface {
	// Stream issues a chat request and forwards output to the callbacks.
	Stream(ctx context.Context, req StreamRequest, callbacks StreamCallbacks) error
	// Close cleans up any resources used by the provider.
	Close() error
}

// internal/providers/ollama/provider.go
// Package ollama provides a ChatProvider backed by Ollama-compatible HTTP
// endpoints. The provider deliberately never sends a "tools" field: the
// backends this project targets reject or ignore it, and tool calling is
// emulated around the request instead.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mwiater/toolless/internal/appconfig"
	"github.com/mwiater/toolless/internal/conversation"
	"github.com/mwiater/toolless/internal/logging"
	"github.com/mwiater/toolless/internal/providers"
)

// Provider implements providers.ChatProvider using the Ollama HTTP API.
type Provider struct {
	client  *http.Client
	timeout time.Duration
	debug   bool
}

// New constructs a Provider configured with the application's request timeout.
func New(cfg *appconfig.Config) *Provider {
	timeout := cfg.RequestTimeout()
	return &Provider{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		timeout: timeout,
		debug:   cfg.Debug,
	}
}

// wireMessage is the role/content pair the chat endpoint accepts. Tool
// responses and call metadata stay on the richer conversation type and
// never cross the wire.
type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// streamChunk defines the structure of a single chunk in a chat response.
type streamChunk struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done            bool  `json:"done"`
	TotalDuration   int64 `json:"total_duration"`
	PromptEvalCount int   `json:"prompt_eval_count"`
	EvalCount       int   `json:"eval_count"`
}

// hostIdentifier returns a string identifier for a host, preferring the
// name over the URL.
func hostIdentifier(host appconfig.Host) string {
	if name := strings.TrimSpace(host.Name); name != "" {
		return name
	}
	if url := strings.TrimSpace(host.URL); url != "" {
		return url
	}
	return "ollama-host"
}

// Stream issues a chat request and forwards output to the callbacks.
func (p *Provider) Stream(ctx context.Context, req providers.StreamRequest, callbacks providers.StreamCallbacks) error {
	messages := make([]wireMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, wireMessage{Role: string(conversation.RoleSystem), Content: req.SystemPrompt})
	}
	for _, msg := range req.Messages {
		messages = append(messages, wireMessage{Role: string(msg.Role), Content: msg.Content})
	}
	hostID := hostIdentifier(req.Host)

	streamEnabled := !req.DisableStreaming
	payload := map[string]any{
		"model":    req.Model,
		"messages": messages,
		"stream":   streamEnabled,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if pretty, perr := json.MarshalIndent(payload, "", "  "); perr == nil && p.debug {
		logging.LogRequest("APP->LLM", hostID, req.Model, pretty)
	} else {
		logging.LogRequest("APP->LLM", hostID, req.Model, body)
	}

	streamCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(streamCtx, http.MethodPost, req.Host.URL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		logging.LogRequest("LLM->APP", hostID, req.Model, respBody)
		return fmt.Errorf("ollama: /api/chat returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	if !streamEnabled {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		logging.LogRequest("LLM->APP", hostID, req.Model, respBody)
		var result streamChunk
		if err := json.Unmarshal(respBody, &result); err != nil {
			return err
		}
		if callbacks.OnChunk != nil && result.Message.Content != "" {
			role := conversation.Role(result.Message.Role)
			if role == "" {
				role = conversation.RoleAssistant
			}
			if err := callbacks.OnChunk(conversation.Message{Role: role, Content: result.Message.Content}); err != nil {
				return err
			}
		}
		return complete(callbacks, result, req.Model)
	}

	decoder := json.NewDecoder(resp.Body)
	var final streamChunk
	for {
		var chunk streamChunk
		if err := decoder.Decode(&chunk); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if callbacks.OnChunk != nil && chunk.Message.Content != "" {
			role := conversation.Role(chunk.Message.Role)
			if role == "" {
				role = conversation.RoleAssistant
			}
			if err := callbacks.OnChunk(conversation.Message{Role: role, Content: chunk.Message.Content}); err != nil {
				return err
			}
		}
		if chunk.Done {
			final = chunk
			break
		}
	}
	return complete(callbacks, final, req.Model)
}

// complete forwards end-of-reply metadata to the OnComplete callback.
func complete(callbacks providers.StreamCallbacks, chunk streamChunk, fallbackModel string) error {
	if callbacks.OnComplete == nil {
		return nil
	}
	modelName := chunk.Model
	if modelName == "" {
		modelName = fallbackModel
	}
	return callbacks.OnComplete(providers.StreamMetadata{
		Model:           modelName,
		CreatedAt:       time.Now(),
		Done:            true,
		TotalDuration:   chunk.TotalDuration,
		PromptEvalCount: chunk.PromptEvalCount,
		EvalCount:       chunk.EvalCount,
	})
}

// Close cleans up any resources used by the provider.
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// internal/tools/tools.go
// Package tools hosts the built-in tools the chat loop can execute and
// their schema definitions, which seed the tool catalog.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwiater/toolless/internal/catalog"
)

// Definition describes the metadata one built-in tool exposes.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Handler executes a tool with validated arguments and returns content
// destined for the conversation.
type Handler func(ctx context.Context, args map[string]any) (string, error)

const (
	// CurrentTimeName is the canonical name for the time tool.
	CurrentTimeName = "current_time"
	// CalculatorName is the canonical name for the arithmetic tool.
	CalculatorName = "calculator"
)

type builtin struct {
	definition Definition
	handler    Handler
}

// builtins lists every built-in tool in presentation order.
func builtins() []builtin {
	return []builtin{
		{definition: CurrentTimeDefinition(), handler: CurrentTime},
		{definition: CalculatorDefinition(), handler: Calculator},
	}
}

// Definitions returns the definitions of the enabled built-in tools, in
// order. An empty allow-list enables everything.
func Definitions(enabled []string) []Definition {
	allow := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		allow[strings.TrimSpace(name)] = true
	}
	var defs []Definition
	for _, b := range builtins() {
		if len(allow) > 0 && !allow[b.definition.Name] {
			continue
		}
		defs = append(defs, b.definition)
	}
	return defs
}

// Lookup returns the handler for a tool name.
func Lookup(name string) (Handler, bool) {
	for _, b := range builtins() {
		if b.definition.Name == name {
			return b.handler, true
		}
	}
	return nil, false
}

// NewCatalog projects the enabled built-in tools into the catalog shape
// the extraction pipeline consumes.
func NewCatalog(enabled []string) catalog.Catalog {
	defs := Definitions(enabled)
	descriptors := make([]catalog.Descriptor, len(defs))
	for i, def := range defs {
		descriptors[i] = catalog.Descriptor{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  def.Parameters,
		}
	}
	return catalog.New(descriptors)
}

// Execute validates the arguments against the tool's schema and runs the
// handler. Unknown names and schema violations surface as errors; the
// caller decides whether to report them to the model or drop the call.
func Execute(ctx context.Context, cat catalog.Catalog, name string, args map[string]any) (string, error) {
	handler, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("tools: no built-in tool named %q", name)
	}
	if err := cat.ValidateArguments(name, args); err != nil {
		return "", err
	}
	return handler(ctx, args)
}

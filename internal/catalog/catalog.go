// internal/catalog/catalog.go
// Package catalog projects the host's tool configuration into the
// read-only name/description/schema view consumed by extraction and
// prompt construction. It performs no parsing and no merging.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// NoToolsNotice is the fixed text used in place of a listing when the
// configuration exposes no tools.
const NoToolsNotice = "There are NO tools available for you at this time."

// Descriptor describes one tool: its unique name, a human-readable
// description, and an opaque JSON-schema-shaped parameter definition.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// Catalog is an ordered, name-unique collection of tool descriptors.
// It is immutable after construction and safe for concurrent readers.
type Catalog struct {
	entries []Descriptor
	index   map[string]int
}

// New builds a Catalog from descriptors in order. Entries with an empty
// name are skipped; on duplicate names the first entry wins.
func New(descriptors []Descriptor) Catalog {
	entries := make([]Descriptor, 0, len(descriptors))
	index := make(map[string]int, len(descriptors))
	for _, d := range descriptors {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			continue
		}
		if _, exists := index[name]; exists {
			continue
		}
		d.Name = name
		index[name] = len(entries)
		entries = append(entries, d)
	}
	return Catalog{entries: entries, index: index}
}

// Len returns the number of tools in the catalog.
func (c Catalog) Len() int { return len(c.entries) }

// Has reports whether a tool with the given name is in the catalog.
func (c Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Get returns the descriptor for name, if present.
func (c Catalog) Get(name string) (Descriptor, bool) {
	i, ok := c.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return c.entries[i], true
}

// Descriptors returns a copy of the catalog entries in order.
func (c Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, len(c.entries))
	copy(out, c.entries)
	return out
}

// Names returns the tool names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, d := range c.entries {
		names[i] = d.Name
	}
	return names
}

// Listing renders the human-readable tool enumeration appended to the
// system prompt. An empty catalog yields the fixed no-tools notice.
func (c Catalog) Listing() string {
	if len(c.entries) == 0 {
		return NoToolsNotice
	}
	var b strings.Builder
	b.WriteString("Available Tools: ")
	b.WriteString(strings.Join(c.Names(), ", "))
	b.WriteString("\n")
	for _, d := range c.entries {
		b.WriteString(fmt.Sprintf("Tool name: %s\n", d.Name))
		b.WriteString(fmt.Sprintf("Tool description: %s\n", d.Description))
		b.WriteString(fmt.Sprintf("     arguments: %s\n", formatProperties(d.Parameters)))
	}
	return b.String()
}

// formatProperties renders the property names of an object schema, or
// "none" when the schema declares no properties.
func formatProperties(schema map[string]any) string {
	props, ok := schema["properties"].(map[string]any)
	if !ok || len(props) == 0 {
		return "none"
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// ValidateArguments checks an argument map against the named tool's
// parameter schema. A tool with no schema accepts anything. Validation
// failures list every violated constraint.
func (c Catalog) ValidateArguments(name string, args map[string]any) error {
	descriptor, ok := c.Get(name)
	if !ok {
		return fmt.Errorf("catalog: no tool named %q", name)
	}
	if len(descriptor.Parameters) == 0 {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}

	schemaLoader := gojsonschema.NewGoLoader(descriptor.Parameters)
	documentLoader := gojsonschema.NewGoLoader(args)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("catalog: validate arguments for %q: %w", name, err)
	}
	if result.Valid() {
		return nil
	}
	details := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		details = append(details, resultErr.String())
	}
	return fmt.Errorf("catalog: arguments for %q invalid: %s", name, strings.Join(details, "; "))
}

// internal/tools/current_time.go
package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// CurrentTimeDefinition describes the time tool.
func CurrentTimeDefinition() Definition {
	return Definition{
		Name:        CurrentTimeName,
		Description: "Returns the current date and time, optionally for a specific IANA timezone.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"timezone": map[string]any{
					"type":        "string",
					"description": "IANA timezone name, e.g. America/Los_Angeles. Defaults to UTC.",
				},
			},
		},
	}
}

// CurrentTime reports the current time in the requested timezone.
func CurrentTime(ctx context.Context, args map[string]any) (string, error) {
	location := time.UTC
	if raw, ok := args["timezone"]; ok {
		name := cast.ToString(raw)
		if name != "" {
			loc, err := time.LoadLocation(name)
			if err != nil {
				return "", fmt.Errorf("tools: unknown timezone %q: %w", name, err)
			}
			location = loc
		}
	}
	now := time.Now().In(location)
	return fmt.Sprintf("Current time in %s: %s", location.String(), now.Format(time.RFC1123)), nil
}

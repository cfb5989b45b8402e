// internal/toolcall/parser.go
package toolcall

import (
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kaptinlin/jsonrepair"
	"github.com/spf13/cast"
)

// ParseCandidate attempts to interpret a candidate segment as a generic
// JSON value. It climbs a repair ladder: strict parse, then jsonrepair
// (unquoted keys, single quotes, trailing commas, missing closers), then a
// regex sanitize pass as the last rung. It reports false when no rung
// yields a parseable value; it never fabricates a placeholder.
func ParseCandidate(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}

	var value any
	if err := jsoniter.UnmarshalFromString(trimmed, &value); err == nil {
		return value, true
	}

	if repaired, err := jsonrepair.JSONRepair(trimmed); err == nil {
		if err := jsoniter.UnmarshalFromString(repaired, &value); err == nil {
			return value, true
		}
	}

	if sanitized := sanitizeLooseJSON(trimmed); sanitized != trimmed {
		if err := jsoniter.UnmarshalFromString(sanitized, &value); err == nil {
			return value, true
		}
	}

	return nil, false
}

var (
	singleQuotedStringPattern = regexp.MustCompile(`'([^']*)'`)
	trailingCommaPattern      = regexp.MustCompile(`,\s*([}\]])`)
)

// sanitizeLooseJSON rewrites single-quoted strings to double quotes and
// strips trailing commas before closing braces or brackets.
func sanitizeLooseJSON(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return s
	}
	replaced := singleQuotedStringPattern.ReplaceAllStringFunc(s, func(match string) string {
		if len(match) < 2 {
			return match
		}
		return `"` + match[1:len(match)-1] + `"`
	})
	return trailingCommaPattern.ReplaceAllString(replaced, "$1")
}

// callShape reports whether a parsed value has the shape of a call
// request: an object with a non-empty string "name" and an object-shaped
// "arguments" field. The returned arguments map may be empty; the
// extractor decides whether empty arguments are acceptable.
func callShape(value any) (string, map[string]any, bool) {
	data, ok := value.(map[string]any)
	if !ok {
		return "", nil, false
	}
	name, ok := data["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return "", nil, false
	}
	rawArgs, ok := data["arguments"]
	if !ok {
		return "", nil, false
	}
	args, ok := coerceArguments(rawArgs)
	if !ok {
		return "", nil, false
	}
	return name, args, true
}

// coerceArguments converts an arguments payload of unknown type into a
// string-keyed map. Some models double-encode arguments as a JSON string;
// those are re-parsed through the same lenient ladder.
func coerceArguments(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return map[string]any{}, true
		}
		parsed, ok := ParseCandidate(trimmed)
		if !ok {
			return nil, false
		}
		args, ok := parsed.(map[string]any)
		return args, ok
	case nil:
		return map[string]any{}, true
	default:
		if args, err := cast.ToStringMapE(value); err == nil {
			return args, true
		}
	}
	return nil, false
}

// Package coerce normalizes loosely-typed persisted values into canonical
// containers. Upstream extractors persist creator attributes as whatever
// shape the source produced: a native array, a single string, or a
// JSON-encoded string. These helpers accept all of them and never fail;
// malformed input degrades to an empty container.
package coerce

import (
	"encoding/json"
	"strings"
)

// StringList coerces v into a slice of trimmed, non-empty strings.
// Accepted shapes: []string, []any of strings, a bare string, or a string
// holding a JSON array. Anything else yields an empty slice.
func StringList(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []string:
		return cleanList(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return cleanList(out)
	case string:
		return stringToList(t)
	default:
		return []string{}
	}
}

func stringToList(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return []string{}
	}
	if strings.HasPrefix(trimmed, "[") {
		var parsed []any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			return StringList(parsed)
		}
		// Looked like JSON but was not; treat as opaque text.
	}
	return cleanList([]string{trimmed})
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// StringMap coerces v into a map[string]any. Accepted shapes: a native
// map[string]any or a string holding a JSON object. Anything else yields an
// empty map.
func StringMap(v any) map[string]any {
	switch t := v.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return t
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return map[string]any{}
		}
		var parsed map[string]any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
			return map[string]any{}
		}
		return parsed
	default:
		return map[string]any{}
	}
}

// Float64 coerces a numeric signal that may arrive as float64, int, or a
// numeric string. Returns 0 and false when no number can be extracted.
func Float64(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		var f float64
		if err := json.Unmarshal([]byte(strings.TrimSpace(t)), &f); err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

package results

import (
	"encoding/json"
	"strings"
)

// DeepUnwrap resolves strings that are themselves serialized JSON objects or arrays,
// anywhere in v, until no such string is left. Strings that only look like JSON but fail
// to parse are kept as they are.
func DeepUnwrap(v any) any {
	switch t := v.(type) {
	case string:
		return unwrapString(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = DeepUnwrap(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = DeepUnwrap(item)
		}
		return out
	default:
		return v
	}
}

func unwrapString(s string) any {
	trimmed := strings.TrimSpace(s)
	if !looksLikeJSON(trimmed) {
		return s
	}
	var parsed any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return s
	}
	return DeepUnwrap(parsed)
}

func looksLikeJSON(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '{' && last == '}') || (first == '[' && last == ']')
}

// DecodeJSON parses raw bytes into the generic value tree DeepUnwrap works on.
// Numbers are decoded as float64 like encoding/json does for interface values.
func DecodeJSON(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

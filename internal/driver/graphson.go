package driver

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeValue parses a GraphSON payload into plain Go values.
// Numbers are kept as json.Number so they survive re-serialization unchanged.
func decodeValue(raw json.RawMessage) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode graphson: %w", err)
	}
	return untype(v), nil
}

// untype strips GraphSON {"@type", "@value"} wrappers.
func untype(v any) any {
	switch val := v.(type) {
	case map[string]any:
		if t, ok := val["@type"].(string); ok && len(val) == 2 {
			if inner, ok := val["@value"]; ok {
				return untypeValue(t, inner)
			}
		}
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = untype(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = untype(item)
		}
		return out
	default:
		return v
	}
}

func untypeValue(typ string, inner any) any {
	if typ != "g:Map" {
		return untype(inner)
	}
	// maps are flat [k1, v1, k2, v2, ...] lists
	list, ok := inner.([]any)
	if !ok {
		return untype(inner)
	}
	out := make(map[string]any, len(list)/2)
	for i := 0; i+1 < len(list); i += 2 {
		out[fmt.Sprint(untype(list[i]))] = untype(list[i+1])
	}
	return out
}

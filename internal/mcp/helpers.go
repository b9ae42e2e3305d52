package mcpserver

import (
	"encoding/json"
	"fmt"

	"bouncecure/internal/editor"
)

func boolPtr(v bool) *bool { return &v }

func getFloat(args map[string]any, key string, fallback float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return fallback
}

func getBool(args map[string]any, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}

// parsePatch decodes a JSON object argument into an element patch. An
// empty string yields a nil patch.
func parsePatch(data string) (editor.Patch, error) {
	if data == "" {
		return nil, nil
	}
	var p editor.Patch
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("invalid patch JSON: %w", err)
	}
	return p, nil
}

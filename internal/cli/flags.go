package cli

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseCallArgs accepts either one JSON object or key=value pairs.
// A repeated key collects its values into a list.
func parseCallArgs(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return map[string]any{}, nil
	}
	if len(args) == 1 && strings.HasPrefix(strings.TrimSpace(args[0]), "{") {
		return parseJSONObject(args[0])
	}

	result := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q, want key=value", arg)
		}
		putArgValue(result, key, value)
	}
	return result, nil
}

func parseJSONObject(raw string) (map[string]any, error) {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("invalid JSON arguments: %w", err)
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("JSON arguments must be an object")
	}
	return obj, nil
}

func putArgValue(dst map[string]any, key string, value any) {
	if existing, ok := dst[key]; ok {
		switch v := existing.(type) {
		case []any:
			dst[key] = append(v, value)
		default:
			dst[key] = []any{v, value}
		}
		return
	}
	dst[key] = value
}

package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// compileArgs checks raw against the descriptor: no unknown arguments, every
// required argument present, every value of the declared type. Strings are
// trimmed and a blank required string counts as missing. The returned error
// wraps mcp.ErrInvalidParams.
func compileArgs(raw map[string]any, desc Descriptor) (Args, error) {
	if raw == nil {
		raw = map[string]any{}
	}

	for key := range raw {
		if _, ok := desc.Arg(key); !ok {
			return nil, invalidParamsError("unknown argument %q", key)
		}
	}

	out := make(Args, len(raw))
	for _, spec := range desc.Args {
		value, ok := raw[spec.Name]
		if !ok || value == nil {
			if spec.Required {
				return nil, invalidParamsError("missing required argument %q", spec.Name)
			}
			continue
		}

		coerced, err := coerceValue(value, spec)
		if err != nil {
			return nil, err
		}
		if s, isString := coerced.(string); isString && s == "" && spec.Required {
			return nil, invalidParamsError("missing required argument %q", spec.Name)
		}
		out[spec.Name] = coerced
	}
	return out, nil
}

func coerceValue(value any, spec ArgSpec) (any, error) {
	switch spec.Type {
	case ArgBoolean:
		return coerceBoolean(value, spec.Name)
	case ArgInteger:
		return coerceInteger(value, spec.Name)
	default:
		s, ok := value.(string)
		if !ok {
			return nil, invalidParamsType(spec.Name, "string", value)
		}
		return strings.TrimSpace(s), nil
	}
}

func coerceInteger(value any, path string) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if math.Trunc(v) != v {
			return 0, invalidParamsError("argument %q must be integer", path)
		}
		if v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, invalidParamsError("argument %q is out of range", path)
		}
		return int64(v), nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, invalidParamsError("argument %q must be integer: %v", path, err)
		}
		return i, nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, invalidParamsError("argument %q must be integer: %v", path, err)
		}
		return i, nil
	default:
		return 0, invalidParamsType(path, "integer", value)
	}
}

func coerceBoolean(value any, path string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, invalidParamsError("argument %q must be boolean: %v", path, err)
		}
		return b, nil
	default:
		return false, invalidParamsType(path, "boolean", value)
	}
}

func invalidParamsType(path, want string, got any) error {
	return invalidParamsError("argument %q must be %s, got %T", path, want, got)
}

func invalidParamsError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s", mcp.ErrInvalidParams, msg)
}

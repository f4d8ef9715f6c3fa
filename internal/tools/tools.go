// Package tools exposes the ZeroTier operations as named tools: a fixed
// catalog of descriptors, argument validation against each descriptor, and a
// Dispatcher that runs one invocation to a rendered text outcome.
package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mitchellh/mapstructure"
)

// Backend names the API a tool talks to.
type Backend string

const (
	BackendLocal Backend = "local"
	BackendCloud Backend = "cloud"
)

// ArgType is the declared JSON type of a tool argument.
type ArgType string

const (
	ArgString  ArgType = "string"
	ArgBoolean ArgType = "boolean"
	ArgInteger ArgType = "integer"
)

// ArgSpec declares one named argument.
type ArgSpec struct {
	Name        string
	Type        ArgType
	Description string
	Required    bool
}

// Descriptor is the fixed, registration-time description of a tool.
type Descriptor struct {
	Name        string
	Description string
	Backend     Backend
	// Action names the operation in failure sentences, e.g. "Join network".
	Action string
	Args   []ArgSpec
}

// Arg returns the spec for name.
func (d Descriptor) Arg(name string) (ArgSpec, bool) {
	for _, a := range d.Args {
		if a.Name == name {
			return a, true
		}
	}
	return ArgSpec{}, false
}

// Tool renders the descriptor as an MCP tool definition.
func (d Descriptor) Tool() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Description)}
	for _, a := range d.Args {
		props := []mcp.PropertyOption{mcp.Description(a.Description)}
		if a.Required {
			props = append(props, mcp.Required())
		}
		switch a.Type {
		case ArgBoolean:
			opts = append(opts, mcp.WithBoolean(a.Name, props...))
		case ArgInteger:
			opts = append(opts, mcp.WithNumber(a.Name, props...))
		default:
			opts = append(opts, mcp.WithString(a.Name, props...))
		}
	}
	return mcp.NewTool(d.Name, opts...)
}

// Args holds validated arguments for one invocation.
type Args map[string]any

// Decode copies the arguments into a params struct tagged with
// `mapstructure:"name"`.
func (a Args) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(a)); err != nil {
		return fmt.Errorf("decoding arguments: %w", err)
	}
	return nil
}

// Handler runs one tool against its backend and returns the rendered text.
type Handler interface {
	Invoke(ctx context.Context, args Args) (string, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, args Args) (string, error)

func (f HandlerFunc) Invoke(ctx context.Context, args Args) (string, error) {
	return f(ctx, args)
}

// Tool binds a descriptor to its handler.
type Tool struct {
	Descriptor Descriptor
	Handler    Handler
}

package tools

import (
	"fmt"
	"path"
)

// Registry is the ordered name → tool table built once at startup.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds t. Names are unique across both backends; a duplicate is a
// wiring bug and panics.
func (r *Registry) Register(t Tool) {
	name := t.Descriptor.Name
	if name == "" {
		panic("tools: register with empty name")
	}
	if t.Handler == nil {
		panic(fmt.Sprintf("tools: %q registered without handler", name))
	}
	if _, exists := r.tools[name]; exists {
		panic(fmt.Sprintf("tools: duplicate tool %q", name))
	}
	r.order = append(r.order, name)
	r.tools[name] = t
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

// Descriptors returns descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Descriptor)
	}
	return out
}

// Disable removes every tool whose name matches one of the glob patterns and
// returns the removed names. Patterns use path.Match syntax.
func (r *Registry) Disable(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	for _, p := range patterns {
		if _, err := path.Match(p, "probe"); err != nil {
			return nil, fmt.Errorf("invalid tool pattern %q: %w", p, err)
		}
	}

	var removed []string
	kept := r.order[:0]
	for _, name := range r.order {
		if matchAny(patterns, name) {
			removed = append(removed, name)
			delete(r.tools, name)
			continue
		}
		kept = append(kept, name)
	}
	r.order = kept
	return removed, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}

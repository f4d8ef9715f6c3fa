package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lydakis/ztmcp/internal/zerotier/central"
	"github.com/lydakis/ztmcp/internal/zerotier/local"
)

// Dispatcher validates and runs tool invocations. It holds no mutable state
// after construction and is safe for concurrent use.
type Dispatcher struct {
	registry *Registry
	local    *local.Client
	central  *central.Client
	logger   hclog.Logger
	now      func() time.Time
	newID    func() string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher) error

// WithLogger sets the logger. Defaults to a null logger.
func WithLogger(logger hclog.Logger) Option {
	return func(d *Dispatcher) error {
		if logger != nil {
			d.logger = logger
		}
		return nil
	}
}

// WithDisabledTools removes tools matching any of the glob patterns.
func WithDisabledTools(patterns []string) Option {
	return func(d *Dispatcher) error {
		removed, err := d.registry.Disable(patterns)
		if err != nil {
			return err
		}
		if len(removed) > 0 {
			d.logger.Debug("disabled tools", "tools", strings.Join(removed, ","))
		}
		return nil
	}
}

// WithClock sets the time source used for relative timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) error {
		if now != nil {
			d.now = now
		}
		return nil
	}
}

// New builds a Dispatcher over the local client and an optional Central
// client. A nil centralClient is a valid configuration: Central tools stay
// listed and fail with ErrNotConfigured.
func New(localClient *local.Client, centralClient *central.Client, opts ...Option) (*Dispatcher, error) {
	if localClient == nil {
		return nil, errors.New("tools: local client is required")
	}
	d := &Dispatcher{
		registry: NewRegistry(),
		local:    localClient,
		central:  centralClient,
		logger:   hclog.NewNullLogger(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, t := range d.bindings() {
		d.registry.Register(t)
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Descriptors lists the enabled tools in catalog order.
func (d *Dispatcher) Descriptors() []Descriptor {
	return d.registry.Descriptors()
}

// CloudConfigured reports whether Central tools can run.
func (d *Dispatcher) CloudConfigured() bool {
	return d.central != nil
}

// Invoke runs one tool call to a terminal outcome. It never panics and never
// returns a nil Text.
func (d *Dispatcher) Invoke(ctx context.Context, name string, raw map[string]any) (out Outcome) {
	out = Outcome{Tool: name, InvocationID: d.newID(), State: StateReceived}
	logger := d.logger.With("tool", name, "invocation", out.InvocationID)

	tool, ok := d.registry.Lookup(name)
	if !ok {
		return d.reject(logger, out, fmt.Errorf("%w %q", ErrUnknownTool, name))
	}
	args, err := compileArgs(raw, tool.Descriptor)
	if err != nil {
		return d.reject(logger, out, err)
	}
	out.State = StateValidated

	out.State = StateExecuting
	if tool.Descriptor.Backend == BackendCloud && d.central == nil {
		return d.fail(logger, out, tool.Descriptor, ErrNotConfigured)
	}

	defer func() {
		if r := recover(); r != nil {
			out = d.fail(logger, out, tool.Descriptor, fmt.Errorf("panic: %v", r))
		}
	}()

	start := d.now()
	text, err := tool.Handler.Invoke(ctx, args)
	if err != nil {
		return d.fail(logger, out, tool.Descriptor, err)
	}

	out.State = StateRendered
	out.Text = text
	logger.Debug("tool call rendered", "elapsed", d.now().Sub(start))
	return out
}

func (d *Dispatcher) reject(logger hclog.Logger, out Outcome, err error) Outcome {
	out.State = StateRejected
	out.Kind = KindValidation
	out.Err = err
	if errors.Is(err, ErrUnknownTool) {
		out.Text = fmt.Sprintf("Unknown tool: %s", out.Tool)
	} else {
		msg := strings.TrimPrefix(err.Error(), mcp.ErrInvalidParams.Error()+": ")
		out.Text = fmt.Sprintf("Invalid arguments for %s: %s", out.Tool, msg)
	}
	logger.Warn("tool call rejected", "error", err)
	return out
}

func (d *Dispatcher) fail(logger hclog.Logger, out Outcome, desc Descriptor, err error) Outcome {
	out.State = StateFailed
	out.Kind = classify(err)
	out.Err = err
	out.Text = failureText(desc.Action, err)
	logger.Warn("tool call failed", "kind", string(out.Kind), "error", err)
	return out
}

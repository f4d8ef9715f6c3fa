// Package mcpserver exposes the tool dispatcher as an MCP server over stdio.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lydakis/ztmcp/internal/tools"
)

const serverName = "ztmcp"

const instructions = "ZeroTier management tools. Tools without a prefix use the ZeroTier One service on this host; " +
	"cloud-* tools use ZeroTier Central and need a Central API token."

// Options configures a Server.
type Options struct {
	Version string
	Logger  hclog.Logger
}

// Server is the MCP front end of a tools.Dispatcher.
type Server struct {
	mcp        *server.MCPServer
	dispatcher *tools.Dispatcher
	logger     hclog.Logger
	version    string
}

// New registers one MCP tool per enabled descriptor.
func New(d *tools.Dispatcher, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		mcp: server.NewMCPServer(serverName, opts.Version,
			server.WithToolCapabilities(false),
			server.WithInstructions(instructions),
			server.WithRecovery(),
		),
		dispatcher: d,
		logger:     opts.Logger,
		version:    opts.Version,
	}
	for _, desc := range d.Descriptors() {
		s.mcp.AddTool(desc.Tool(), s.handler(desc.Name))
	}
	return s
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

func (s *Server) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out := s.dispatcher.Invoke(ctx, name, req.GetArguments())
		s.logger.Debug("tool call", "tool", name, "invocation", out.InvocationID, "state", string(out.State))
		if out.OK() {
			return mcp.NewToolResultText(out.Text), nil
		}
		return mcp.NewToolResultError(out.Text), nil
	}
}

// ServeStdio serves newline-delimited JSON-RPC on in/out until ctx is done or
// in reaches EOF. Cancelling ctx abandons in-flight calls.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(s.logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}))

	s.logger.Info("serving MCP over stdio", "tools", len(s.dispatcher.Descriptors()), "cloud", s.dispatcher.CloudConfigured())
	err := stdio.Listen(ctx, in, out)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("serving stdio: %w", err)
}

// Call runs one tool through an in-process MCP client, exercising the same
// protocol path a remote caller would.
func (s *Server) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	c, err := mcpclient.NewInProcessClient(s.mcp)
	if err != nil {
		return nil, fmt.Errorf("creating in-process client: %w", err)
	}
	defer c.Close()

	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting in-process client: %w", err)
	}
	if _, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo: mcp.Implementation{
				Name:    serverName + "-call",
				Version: s.version,
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	}); err != nil {
		return nil, fmt.Errorf("initializing: %w", err)
	}

	return c.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	})
}

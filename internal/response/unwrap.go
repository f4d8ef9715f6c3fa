// Package response turns tool results into CLI output and exit codes.
package response

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitToolErr  = 1
	ExitUsageErr = 2
	ExitInternal = 3
)

// Unwrap extracts printable text from an MCP CallToolResult.
// Returns the output bytes and an exit code.
func Unwrap(result *mcp.CallToolResult) ([]byte, int) {
	if result == nil {
		return nil, ExitInternal
	}

	exitCode := ExitOK
	if result.IsError {
		exitCode = ExitToolErr
	}

	var parts []string
	for _, content := range result.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			parts = append(parts, text.Text)
			continue
		}

		raw, err := json.Marshal(content)
		if err == nil {
			parts = append(parts, string(raw))
		}
	}

	if len(parts) == 0 {
		return nil, exitCode
	}

	out := strings.Join(parts, "\n")
	return ensureTrailingNewline([]byte(out)), exitCode
}

// ClassifyCallError maps a protocol-level call failure to an exit code.
// Unknown tools and invalid parameters are usage errors.
func ClassifyCallError(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, mcp.ErrInvalidParams) || errors.Is(err, mcp.ErrMethodNotFound) {
		return ExitUsageErr
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "-32602") || strings.Contains(msg, "-32601") {
		return ExitUsageErr
	}
	if strings.Contains(msg, "invalid params") || strings.Contains(msg, "method not found") {
		return ExitUsageErr
	}
	if strings.Contains(msg, "tool") && strings.Contains(msg, "not found") {
		return ExitUsageErr
	}
	return ExitInternal
}

func ensureTrailingNewline(out []byte) []byte {
	if len(out) == 0 {
		return out
	}
	if out[len(out)-1] != '\n' {
		return append(out, '\n')
	}
	return out
}

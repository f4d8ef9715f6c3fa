// Package logging builds the process logger. Stdout carries the MCP stream,
// so every log line goes to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// New returns the root logger named "ztmcp" writing to w (stderr when nil).
func New(level string, w io.Writer) (hclog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "ztmcp",
		Level:  lvl,
		Output: w,
	}), nil
}

// ParseLevel maps a textual level onto hclog. Empty means info.
func ParseLevel(level string) (hclog.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return hclog.Info, nil
	}
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		return hclog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}

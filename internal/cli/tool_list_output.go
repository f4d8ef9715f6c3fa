package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lydakis/ztmcp/internal/tools"
)

type toolListEntry struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Backend     string         `json:"backend"`
	Available   bool           `json:"available"`
	Args        []toolArgEntry `json:"args,omitempty"`
}

type toolArgEntry struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

func newToolsCmd(opts *globalOptions) *cobra.Command {
	var (
		asJSON  bool
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tool catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			entries := toolListEntries(rt.dispatcher.Descriptors(), rt.dispatcher.CloudConfigured())
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			return writeToolListText(cmd.OutOrStdout(), entries, verbose)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include arguments")
	return cmd
}

func toolListEntries(descs []tools.Descriptor, cloudConfigured bool) []toolListEntry {
	entries := make([]toolListEntry, 0, len(descs))
	for _, d := range descs {
		entry := toolListEntry{
			Name:        d.Name,
			Description: d.Description,
			Backend:     string(d.Backend),
			Available:   d.Backend != tools.BackendCloud || cloudConfigured,
		}
		for _, a := range d.Args {
			entry.Args = append(entry.Args, toolArgEntry{
				Name:        a.Name,
				Type:        string(a.Type),
				Required:    a.Required,
				Description: a.Description,
			})
		}
		entries = append(entries, entry)
	}
	return entries
}

func writeToolListText(w io.Writer, entries []toolListEntry, verbose bool) error {
	for _, entry := range entries {
		line := entry.Name
		if desc := strings.TrimSpace(entry.Description); desc != "" {
			line += "\t" + desc
		}
		if !entry.Available {
			line += " (no Central token)"
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return fmt.Errorf("writing tool list output: %w", err)
		}
		if !verbose {
			continue
		}
		for _, a := range entry.Args {
			req := "optional"
			if a.Required {
				req = "required"
			}
			if _, err := fmt.Fprintf(w, "    %s (%s, %s): %s\n", a.Name, a.Type, req, a.Description); err != nil {
				return fmt.Errorf("writing tool list output: %w", err)
			}
		}
	}
	return nil
}

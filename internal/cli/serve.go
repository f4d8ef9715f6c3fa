package cli

import (
	"github.com/spf13/cobra"

	"github.com/lydakis/ztmcp/internal/response"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool catalog over MCP stdio (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *globalOptions) error {
	rt, err := newRuntime(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := rt.server().ServeStdio(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
		return withCode(response.ExitInternal, err)
	}
	return nil
}

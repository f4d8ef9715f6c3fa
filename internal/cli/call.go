package cli

import (
	"github.com/spf13/cobra"

	"github.com/lydakis/ztmcp/internal/response"
)

func newCallCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [key=value ...| '{json}']",
		Short: "Run one tool and print its result",
		Example: `  ztmcp call status
  ztmcp call join-network network_id=8056c2e21c000001
  ztmcp call cloud-authorize-member '{"network_id":"8056c2e21c000001","member_id":"89e92ceee5"}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs, err := parseCallArgs(args[1:])
			if err != nil {
				return withCode(response.ExitUsageErr, err)
			}

			rt, err := newRuntime(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			result, err := rt.server().Call(cmd.Context(), args[0], toolArgs)
			if err != nil {
				return withCode(response.ClassifyCallError(err), err)
			}

			out, code := response.Unwrap(result)
			w := cmd.OutOrStdout()
			if code != response.ExitOK {
				w = cmd.ErrOrStderr()
			}
			if _, err := w.Write(out); err != nil {
				return withCode(response.ExitInternal, err)
			}
			if code != response.ExitOK {
				return withCode(code, nil)
			}
			return nil
		},
	}
}

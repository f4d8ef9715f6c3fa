package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lydakis/ztmcp/internal/config"
	"github.com/lydakis/ztmcp/internal/credentials"
	"github.com/lydakis/ztmcp/internal/response"
)

// Version is stamped by the linker; see cmd/ztmcp.
var Version = "dev"

var (
	rootStdout io.Writer = os.Stdout
	rootStderr io.Writer = os.Stderr
	rootStdin  io.Reader = os.Stdin

	lookupEnv   = os.LookupEnv
	newResolver = credentials.NewResolver
)

type globalOptions struct {
	configPath     string
	logLevel       string
	localURL       string
	localTokenFile string
	centralURL     string
}

// exitError carries a specific process exit code out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// Run is the main CLI entry point. Returns an exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(rootStdin)
	root.SetOut(rootStdout)
	root.SetErr(rootStderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return response.ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(rootStderr, "ztmcp: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(rootStderr, "ztmcp: %v\n", err)
	return response.ExitUsageErr
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "ztmcp",
		Short: "ZeroTier management tools over MCP",
		Long: `ztmcp exposes the ZeroTier One service on this host and, when a token is
configured, ZeroTier Central as MCP tools over stdio.

Run without a subcommand to serve. Use "ztmcp tools" to list the catalog and
"ztmcp call" to run one tool from the shell.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default "+config.ExampleConfigPath()+")")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, off")
	pf.StringVar(&opts.localURL, "local-url", "", "ZeroTier One service URL (default "+config.DefaultLocalURL+")")
	pf.StringVar(&opts.localTokenFile, "local-token-file", "", "file holding the local authtoken.secret")
	pf.StringVar(&opts.centralURL, "central-url", "", "ZeroTier Central API URL (default "+config.DefaultCentralURL+")")

	cmd.AddCommand(
		newServeCmd(opts),
		newToolsCmd(opts),
		newCallCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "ztmcp version %s\n", Version)
			return err
		},
	}
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/lydakis/ztmcp/internal/config"
	"github.com/lydakis/ztmcp/internal/credentials"
	"github.com/lydakis/ztmcp/internal/logging"
	"github.com/lydakis/ztmcp/internal/mcpserver"
	"github.com/lydakis/ztmcp/internal/response"
	"github.com/lydakis/ztmcp/internal/tools"
	"github.com/lydakis/ztmcp/internal/zerotier/central"
	"github.com/lydakis/ztmcp/internal/zerotier/local"
)

// runtime is everything a command needs, resolved once per process.
type runtime struct {
	cfg        *config.Config
	logger     hclog.Logger
	dispatcher *tools.Dispatcher
}

func (r *runtime) server() *mcpserver.Server {
	return mcpserver.New(r.dispatcher, mcpserver.Options{
		Version: Version,
		Logger:  r.logger.Named("mcpserver"),
	})
}

// loadConfig applies sources in increasing priority: defaults, file,
// environment, flags.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		if _, statErr := os.Stat(opts.configPath); errors.Is(statErr, fs.ErrNotExist) {
			return nil, withCode(response.ExitUsageErr, fmt.Errorf("config file %s does not exist", opts.configPath))
		}
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, withCode(response.ExitInternal, err)
	}

	config.ApplyEnv(cfg, lookupEnv)
	opts.applyTo(cfg)

	if err := config.Validate(cfg); err != nil {
		return nil, withCode(response.ExitUsageErr, fmt.Errorf("invalid config: %w", err))
	}
	return cfg, nil
}

func (o *globalOptions) applyTo(cfg *config.Config) {
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.localURL != "" {
		cfg.Local.URL = o.localURL
	}
	if o.localTokenFile != "" {
		cfg.Local.TokenFile = o.localTokenFile
		cfg.Local.Token = ""
	}
	if o.centralURL != "" {
		cfg.Central.URL = o.centralURL
	}
}

func newRuntime(opts *globalOptions, stderr io.Writer) (*runtime, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, stderr)
	if err != nil {
		return nil, withCode(response.ExitUsageErr, err)
	}

	localCred, err := newResolver().ResolveLocal(cfg.Local.Token, cfg.Local.TokenFile)
	if err != nil {
		return nil, withCode(response.ExitUsageErr, err)
	}
	if localCred.Token == "" {
		logger.Warn("no local auth token found; the service will reject local calls", "path", localCred.Path)
	} else {
		logger.Debug("resolved local auth token", "source", string(localCred.Source), "path", localCred.Path)
	}

	localClient := local.New(local.Options{
		BaseURL: cfg.Local.URL,
		Token:   localCred.Token,
		Timeout: cfg.Local.TimeoutOr(config.DefaultLocalTimeout),
		Headers: cfg.Local.Headers,
		Logger:  logger.Named("rest.local"),
	})

	var centralClient *central.Client
	if token := credentials.Central(cfg.Central.Token); token != "" {
		centralClient = central.New(central.Options{
			BaseURL: cfg.Central.URL,
			Token:   token,
			Timeout: cfg.Central.TimeoutOr(config.DefaultCentralTimeout),
			Headers: cfg.Central.Headers,
			Logger:  logger.Named("rest.central"),
		})
	}

	d, err := tools.New(localClient, centralClient,
		tools.WithLogger(logger.Named("tools")),
		tools.WithDisabledTools(cfg.DisabledTools),
	)
	if err != nil {
		return nil, withCode(response.ExitUsageErr, err)
	}

	return &runtime{cfg: cfg, logger: logger, dispatcher: d}, nil
}

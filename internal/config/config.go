package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lydakis/ztmcp/internal/paths"
)

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Environment variables that override file values.
const (
	EnvCentralToken  = "ZEROTIER_CENTRAL_TOKEN"
	EnvAuthToken     = "ZEROTIER_AUTH_TOKEN"
	EnvAuthTokenFile = "ZEROTIER_AUTH_TOKEN_FILE"
	EnvLocalURL      = "ZEROTIER_LOCAL_URL"
	EnvCentralURL    = "ZEROTIER_CENTRAL_URL"
	EnvLogLevel      = "ZTMCP_LOG_LEVEL"
)

// Load reads the first config file found in the default locations.
// If none exists, it returns the defaults (no error).
func Load() (*Config, error) {
	for _, candidate := range paths.ConfigCandidates() {
		if _, err := os.Stat(candidate); err == nil {
			return LoadFrom(candidate)
		}
	}
	return Default(), nil
}

// LoadFrom reads and parses a config file at the given path. The format is
// chosen by extension: .yaml/.yml for YAML, anything else for TOML.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	expandConfigEnvVars(cfg)
	fillDefaults(cfg)
	return cfg, nil
}

// ExampleConfigPath returns the default config file path (for help messages).
func ExampleConfigPath() string {
	return paths.ConfigFile()
}

// ApplyEnv overlays environment overrides onto cfg. Non-empty variables win
// over file values.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if cfg == nil {
		return
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	set := func(dst *string, name string) {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&cfg.Central.Token, EnvCentralToken)
	set(&cfg.Central.URL, EnvCentralURL)
	set(&cfg.Local.Token, EnvAuthToken)
	set(&cfg.Local.TokenFile, EnvAuthTokenFile)
	set(&cfg.Local.URL, EnvLocalURL)
	set(&cfg.LogLevel, EnvLogLevel)
}

func fillDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Local.URL) == "" {
		cfg.Local.URL = DefaultLocalURL
	}
	if strings.TrimSpace(cfg.Central.URL) == "" {
		cfg.Central.URL = DefaultCentralURL
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	cfg.Central.Token = strings.TrimSpace(cfg.Central.Token)
	cfg.Local.Token = strings.TrimSpace(cfg.Local.Token)
}

func expandConfigEnvVars(cfg *Config) {
	cfg.LogLevel = expandEnvVars(cfg.LogLevel)
	for i := range cfg.DisabledTools {
		cfg.DisabledTools[i] = expandEnvVars(cfg.DisabledTools[i])
	}

	cfg.Local.URL = expandEnvVars(cfg.Local.URL)
	cfg.Local.Token = expandEnvVars(cfg.Local.Token)
	cfg.Local.TokenFile = expandEnvVars(cfg.Local.TokenFile)
	cfg.Local.Timeout = expandEnvVars(cfg.Local.Timeout)
	for k, v := range cfg.Local.Headers {
		cfg.Local.Headers[k] = expandEnvVars(v)
	}

	cfg.Central.URL = expandEnvVars(cfg.Central.URL)
	cfg.Central.Token = expandEnvVars(cfg.Central.Token)
	cfg.Central.Timeout = expandEnvVars(cfg.Central.Timeout)
	for k, v := range cfg.Central.Headers {
		cfg.Central.Headers[k] = expandEnvVars(v)
	}
}

// expandEnvVars replaces ${VAR_NAME} with the value of the environment variable.
func expandEnvVars(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRe.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match // leave unresolved vars as-is
	})
}

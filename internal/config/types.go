package config

import "time"

const (
	DefaultLocalURL       = "http://localhost:9993"
	DefaultLocalTimeout   = 10 * time.Second
	DefaultCentralURL     = "https://api.zerotier.com/api/v1"
	DefaultCentralTimeout = 30 * time.Second
	DefaultLogLevel       = "info"
)

// Config is the top-level ztmcp configuration.
type Config struct {
	LogLevel      string        `toml:"log_level" yaml:"log_level" json:"log_level"`
	DisabledTools []string      `toml:"disabled_tools" yaml:"disabled_tools" json:"disabled_tools"`
	Local         LocalConfig   `toml:"local" yaml:"local" json:"local"`
	Central       CentralConfig `toml:"central" yaml:"central" json:"central"`
}

// LocalConfig describes the ZeroTier One service API on this host.
type LocalConfig struct {
	URL       string            `toml:"url" yaml:"url" json:"url"`
	Token     string            `toml:"token" yaml:"token" json:"token"`
	TokenFile string            `toml:"token_file" yaml:"token_file" json:"token_file"`
	Timeout   string            `toml:"timeout" yaml:"timeout" json:"timeout"`
	Headers   map[string]string `toml:"headers" yaml:"headers" json:"headers"`
}

// CentralConfig describes the ZeroTier Central API. An empty token leaves
// the Central tools unconfigured.
type CentralConfig struct {
	URL     string            `toml:"url" yaml:"url" json:"url"`
	Token   string            `toml:"token" yaml:"token" json:"token"`
	Timeout string            `toml:"timeout" yaml:"timeout" json:"timeout"`
	Headers map[string]string `toml:"headers" yaml:"headers" json:"headers"`
}

// Default returns a Config populated with the built-in endpoints.
func Default() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Local:    LocalConfig{URL: DefaultLocalURL},
		Central:  CentralConfig{URL: DefaultCentralURL},
	}
}

// TimeoutOr returns the configured timeout, or def when unset. Call Validate
// first; an unparsable value also yields def.
func (l LocalConfig) TimeoutOr(def time.Duration) time.Duration {
	return parseTimeout(l.Timeout, def)
}

// TimeoutOr returns the configured timeout, or def when unset.
func (c CentralConfig) TimeoutOr(def time.Duration) time.Duration {
	return parseTimeout(c.Timeout, def)
}

// HasToken reports whether a Central credential was supplied.
func (c CentralConfig) HasToken() bool {
	return c.Token != ""
}

func parseTimeout(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var logLevels = []any{"trace", "debug", "info", "warn", "error", "off"}

// logLevel matches case-insensitively, as hclog does.
func logLevel(value any) error {
	s, _ := value.(string)
	s = strings.ToLower(strings.TrimSpace(s))
	return validation.Validate(s, validation.In(logLevels...).Error("must be one of trace, debug, info, warn, error, off"))
}

// Validate checks configuration invariants and returns actionable errors.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	var errs []error
	if err := validation.ValidateStruct(cfg,
		validation.Field(&cfg.LogLevel, validation.By(logLevel)),
	); err != nil {
		errs = append(errs, err)
	}

	local := &cfg.Local
	if err := validation.ValidateStruct(local,
		validation.Field(&local.URL, validation.Required, validation.By(httpURL)),
		validation.Field(&local.Timeout, validation.By(positiveDuration)),
	); err != nil {
		errs = append(errs, fmt.Errorf("local: %w", err))
	}

	central := &cfg.Central
	if err := validation.ValidateStruct(central,
		validation.Field(&central.URL, validation.Required, validation.By(httpURL)),
		validation.Field(&central.Timeout, validation.By(positiveDuration)),
	); err != nil {
		errs = append(errs, fmt.Errorf("central: %w", err))
	}

	for i, pattern := range cfg.DisabledTools {
		if _, err := path.Match(pattern, "probe"); err != nil {
			errs = append(errs, fmt.Errorf("disabled_tools[%d]: invalid glob %q: %w", i, pattern, err))
		}
	}

	return errors.Join(errs...)
}

func httpURL(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q, want http or https", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

func positiveDuration(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q", raw)
	}
	if d <= 0 {
		return fmt.Errorf("must be > 0, got %q", raw)
	}
	return nil
}

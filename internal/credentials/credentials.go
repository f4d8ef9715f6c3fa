// Package credentials resolves the secrets used to authenticate against the
// local ZeroTier service and ZeroTier Central.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"

	"github.com/lydakis/ztmcp/internal/paths"
)

// Source records where a resolved token came from.
type Source string

const (
	SourceNone     Source = ""
	SourceExplicit Source = "explicit"
	SourceFile     Source = "file"
	SourceDefault  Source = "default"
)

// Local is the resolved local API secret.
type Local struct {
	Token  string
	Source Source
	Path   string
}

// Resolver looks up the local API secret. Fs and DefaultPath are injectable
// so resolution never depends on the real host layout in tests.
type Resolver struct {
	Fs          afero.Fs
	DefaultPath func() string
}

// NewResolver returns a Resolver reading from the OS filesystem and the
// platform default secret location.
func NewResolver() *Resolver {
	return &Resolver{Fs: afero.NewOsFs(), DefaultPath: paths.DefaultAuthTokenFile}
}

// ResolveLocal picks the local token in priority order: explicit token,
// explicit file path, then the platform default path. An explicit file that
// cannot be read is an error; a missing default file yields an empty token.
func (r *Resolver) ResolveLocal(token, tokenFile string) (Local, error) {
	if t := strings.TrimSpace(token); t != "" {
		return Local{Token: t, Source: SourceExplicit}, nil
	}

	if p := strings.TrimSpace(tokenFile); p != "" {
		t, err := r.readToken(p)
		if err != nil {
			return Local{}, fmt.Errorf("reading auth token file %s: %w", p, err)
		}
		return Local{Token: t, Source: SourceFile, Path: p}, nil
	}

	if r.DefaultPath == nil {
		return Local{}, nil
	}
	p := r.DefaultPath()
	if p == "" {
		return Local{}, nil
	}
	t, err := r.readToken(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return Local{Path: p}, nil
		}
		return Local{}, fmt.Errorf("reading auth token file %s: %w", p, err)
	}
	if t == "" {
		return Local{Path: p}, nil
	}
	return Local{Token: t, Source: SourceDefault, Path: p}, nil
}

func (r *Resolver) readToken(path string) (string, error) {
	fsys := r.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Central normalizes a Central API token. An empty result means the cloud
// backend stays unconfigured.
func Central(token string) string {
	return strings.TrimSpace(token)
}

//go:build !windows

package paths

import (
	"path/filepath"
	"runtime"
)

// DefaultAuthTokenFile returns where the ZeroTier One service keeps its
// local API secret on this platform.
func DefaultAuthTokenFile() string {
	return authTokenFileFor(runtime.GOOS)
}

func authTokenFileFor(goos string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Application Support", "ZeroTier", "authtoken.secret")
	case "freebsd", "openbsd":
		return "/var/db/zerotier-one/authtoken.secret"
	default:
		return "/var/lib/zerotier-one/authtoken.secret"
	}
}

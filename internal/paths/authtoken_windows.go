//go:build windows

package paths

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// DefaultAuthTokenFile returns where the ZeroTier One service keeps its
// local API secret on this platform.
func DefaultAuthTokenFile() string {
	return filepath.Join(programData(), "ZeroTier", "One", "authtoken.secret")
}

func programData() string {
	if dir, err := windows.KnownFolderPath(windows.FOLDERID_ProgramData, 0); err == nil && dir != "" {
		return dir
	}
	if dir := os.Getenv("ProgramData"); dir != "" {
		return dir
	}
	return `C:\ProgramData`
}

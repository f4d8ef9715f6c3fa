package paths

import (
	"os"
	"path/filepath"
)

const appName = "ztmcp"

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}

func xdgDir(envVar, fallbackSuffix string) string {
	if v := os.Getenv(envVar); v != "" {
		return filepath.Join(v, appName)
	}
	return filepath.Join(homeDir(), fallbackSuffix, appName)
}

// ConfigDir returns the ztmcp config directory ($XDG_CONFIG_HOME/ztmcp).
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// ConfigFile returns the path to config.toml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// ConfigCandidates returns the config files probed in order when no
// explicit path is given.
func ConfigCandidates() []string {
	dir := ConfigDir()
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
	}
}

package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "storewatch"

// EnvConfig overrides the default config file location.
const EnvConfig = "STOREWATCH_CONFIG"

// userDir resolves a per-user base directory. On Windows winEnv is read
// (falling back to winRel under the profile); elsewhere xdgEnv is read
// (falling back to unixRel under the home directory).
func userDir(winEnv string, winRel []string, xdgEnv string, unixRel []string) (string, error) {
	env, rel := xdgEnv, unixRel
	if runtime.GOOS == "windows" {
		env, rel = winEnv, winRel
	}
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	var home string
	if runtime.GOOS == "windows" {
		home = os.Getenv("USERPROFILE")
	}
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		home = h
	}
	return filepath.Join(append(append([]string{home}, rel...), appName)...), nil
}

// GetConfigDir returns the platform-specific config directory.
// Unix: $XDG_CONFIG_HOME/storewatch or ~/.config/storewatch
// Windows: %APPDATA%\storewatch
func GetConfigDir() (string, error) {
	return userDir("APPDATA", []string{"AppData", "Roaming"}, "XDG_CONFIG_HOME", []string{".config"})
}

// GetDataDir returns the platform-specific data directory, where the TUI
// writes its log.
func GetDataDir() (string, error) {
	return userDir("LOCALAPPDATA", []string{"AppData", "Local"}, "XDG_DATA_HOME", []string{".local", "share"})
}

// GetConfigPath returns the config file path: $STOREWATCH_CONFIG when set,
// otherwise config.toml in the config directory.
func GetConfigPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// GetLogPath returns the default TUI log file path.
func GetLogPath() (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".log"), nil
}

// EnsureDirs creates the config and data directories.
func EnsureDirs() error {
	for _, fn := range []func() (string, error){GetConfigDir, GetDataDir} {
		dir, err := fn()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return nil
}

package files

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName names the directory under the user's config home.
	AppName = "mdstatus"
	// ConfigFileName is the config file looked up inside that directory.
	ConfigFileName = "config.json"
)

// ResolveConfigPath determines where the optional config file lives, defaulting to
// ~/.config/mdstatus/config.json. MDSTATUS_CONFIG overrides the full path and XDG_CONFIG_HOME
// overrides the config home.
func ResolveConfigPath() (string, error) {
	if override, ok := os.LookupEnv("MDSTATUS_CONFIG"); ok {
		override = strings.TrimSpace(override)
		if override != "" {
			return normalizePath(override)
		}
	}

	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		base, err := normalizePath(xdg)
		if err != nil {
			return "", err
		}
		return filepath.Join(base, AppName, ConfigFileName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, ConfigFileName), nil
}

func normalizePath(input string) (string, error) {
	if input == "~" || strings.HasPrefix(input, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		input = filepath.Join(home, strings.TrimPrefix(input, "~"))
	}
	return input, nil
}

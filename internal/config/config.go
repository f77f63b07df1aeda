package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/faizmokh/mdstatus/internal/files"
)

// ShowClosedEnv is the environment toggle that adds the DONT and DONE categories.
const ShowClosedEnv = "SHOW_CLOSED"

var (
	// ErrInvalidConfig is returned when a config file cannot be parsed or holds bad values.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrConfigNotFound is returned when an explicitly requested config file is missing.
	ErrConfigNotFound = errors.New("config file not found")
)

// Config controls which categories are reported and how summary lines are laid out.
type Config struct {
	// ShowClosed adds the DONT and DONE categories.
	ShowClosed bool
	// BasenameWidth truncates the source basename to this many characters; 0 disables it.
	BasenameWidth int
	// LineWidth left-aligns the line number in a column this wide; 0 disables padding.
	LineWidth int
	// Source is the config file that was loaded, empty when none was.
	Source string
}

type fileConfig struct {
	ShowClosed    *bool `json:"show_closed"`
	BasenameWidth *int  `json:"basename_width"`
	LineWidth     *int  `json:"line_width"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{}
}

// Load applies, in order, the defaults, the config file and the SHOW_CLOSED environment toggle.
// An explicit path must exist; otherwise the default location is optional.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	path := explicitPath
	mustExist := explicitPath != ""
	if path == "" {
		// Without a home directory there is simply no default config.
		if resolved, err := files.ResolveConfigPath(); err == nil {
			path = resolved
		}
	}

	if path != "" {
		fileCfg, loaded, err := loadFile(path, mustExist)
		if err != nil {
			return Config{}, err
		}
		if loaded {
			cfg = merge(cfg, fileCfg)
			cfg.Source = path
		}
	}

	if showClosed, ok := ShowClosedFromEnv(); ok {
		cfg.ShowClosed = showClosed
	}

	return cfg, nil
}

// ShowClosedFromEnv reads the SHOW_CLOSED toggle. Only the literal value "true" enables it; any
// other value disables it. ok is false when the variable is unset.
func ShowClosedFromEnv() (value bool, ok bool) {
	raw, ok := os.LookupEnv(ShowClosedEnv)
	if !ok {
		return false, false
	}
	return raw == "true", true
}

func loadFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return fileConfig{}, false, nil
		}
		return fileConfig{}, false, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrInvalidConfig, path, err)
	}
	return cfg, true, nil
}

func parse(data []byte) (fileConfig, error) {
	if strings.TrimSpace(string(data)) == "" {
		return fileConfig{}, nil
	}

	// Standardize JSONC (comments, trailing commas) to plain JSON.
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	dec := json.NewDecoder(strings.NewReader(string(standardized)))
	dec.DisallowUnknownFields()

	var cfg fileConfig
	if err := dec.Decode(&cfg); err != nil {
		return fileConfig{}, err
	}

	if cfg.BasenameWidth != nil && *cfg.BasenameWidth < 0 {
		return fileConfig{}, errors.New("basename_width must not be negative")
	}
	if cfg.LineWidth != nil && *cfg.LineWidth < 0 {
		return fileConfig{}, errors.New("line_width must not be negative")
	}
	return cfg, nil
}

func merge(base Config, override fileConfig) Config {
	if override.ShowClosed != nil {
		base.ShowClosed = *override.ShowClosed
	}
	if override.BasenameWidth != nil {
		base.BasenameWidth = *override.BasenameWidth
	}
	if override.LineWidth != nil {
		base.LineWidth = *override.LineWidth
	}
	return base
}

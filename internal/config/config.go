package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	DefaultPrompt = "> "
	DefaultHeight = 10
	DefaultDevice = "/dev/tty"
)

// Config holds the top-level tofi configuration.
type Config struct {
	UI       UIConfig       `toml:"ui"`
	Dmenu    DmenuConfig    `toml:"dmenu"`
	Terminal TerminalConfig `toml:"terminal"`
	Log      LogConfig      `toml:"log"`
	History  HistoryConfig  `toml:"history"`
}

type UIConfig struct {
	Prompt string `toml:"prompt"`
	Height int    `toml:"height"` // visible rows; 0 fills the terminal
}

type DmenuConfig struct {
	Encoding string `toml:"encoding"` // WHATWG label; empty means utf-8
}

type TerminalConfig struct {
	Device string `toml:"device"`
}

type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// HistoryConfig controls the launch history.
type HistoryConfig struct {
	// Enabled defaults to true when not set in config.
	Enabled *bool `toml:"enabled,omitempty"`
}

// IsEnabled treats nil (missing from config) as true.
func (h HistoryConfig) IsEnabled() bool {
	if h.Enabled == nil {
		return true
	}
	return *h.Enabled
}

// Paths holds the standard XDG-compliant locations.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	StateDir   string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	tofiConfig := filepath.Join(configDir, "tofi")
	tofiData := filepath.Join(dataDir, "tofi")

	return Paths{
		ConfigDir:  tofiConfig,
		DataDir:    tofiData,
		CacheDir:   filepath.Join(cacheDir, "tofi"),
		StateDir:   filepath.Join(stateDir, "tofi"),
		ConfigFile: filepath.Join(tofiConfig, "config.toml"),
		DBFile:     filepath.Join(tofiData, "tofi.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found. Keys
// missing from the file keep their default values.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(v bool) *bool {
	return &v
}

func defaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Prompt: DefaultPrompt,
			Height: DefaultHeight,
		},
		Terminal: TerminalConfig{
			Device: DefaultDevice,
		},
		Log: LogConfig{
			Level: "info",
		},
		History: HistoryConfig{
			Enabled: BoolPtr(true),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

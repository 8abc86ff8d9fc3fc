package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeInt    KeyType = "int"
	KeyTypeBool   KeyType = "bool"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type (string, int, bool).
	Type KeyType
	// Desc is a human-readable description shown in `tofi config list`.
	Desc string
	// DefaultStr is the string representation of the default value.
	DefaultStr string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"ui.prompt": {
		Type:       KeyTypeString,
		Desc:       "Prompt shown before the query",
		DefaultStr: DefaultPrompt,
		get:        func(cfg *Config) string { return cfg.UI.Prompt },
		set:        func(cfg *Config, v string) error { cfg.UI.Prompt = v; return nil },
		unset:      func(cfg *Config) { cfg.UI.Prompt = DefaultPrompt },
	},
	"ui.height": {
		Type:       KeyTypeInt,
		Desc:       "Visible result rows (0 fills the terminal)",
		DefaultStr: strconv.Itoa(DefaultHeight),
		get:        func(cfg *Config) string { return strconv.Itoa(cfg.UI.Height) },
		set: func(cfg *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n < 0 {
				return fmt.Errorf("invalid value %q for ui.height: want a non-negative integer", v)
			}
			cfg.UI.Height = n
			return nil
		},
		unset: func(cfg *Config) { cfg.UI.Height = DefaultHeight },
	},
	"dmenu.encoding": {
		Type:       KeyTypeString,
		Desc:       "Encoding of piped input (utf-8, latin1, shift_jis, ...)",
		DefaultStr: "",
		get:        func(cfg *Config) string { return cfg.Dmenu.Encoding },
		set: func(cfg *Config, v string) error {
			v = strings.TrimSpace(v)
			if v != "" {
				if _, err := htmlindex.Get(v); err != nil {
					return fmt.Errorf("invalid value %q for dmenu.encoding: not a known encoding label", v)
				}
			}
			cfg.Dmenu.Encoding = v
			return nil
		},
		unset: func(cfg *Config) { cfg.Dmenu.Encoding = "" },
	},
	"terminal.device": {
		Type:       KeyTypeString,
		Desc:       "Terminal device opened when input is piped",
		DefaultStr: DefaultDevice,
		get:        func(cfg *Config) string { return cfg.Terminal.Device },
		set:        func(cfg *Config, v string) error { cfg.Terminal.Device = v; return nil },
		unset:      func(cfg *Config) { cfg.Terminal.Device = DefaultDevice },
	},
	"log.level": {
		Type:       KeyTypeString,
		Desc:       "Log level (debug, info, warn, error)",
		DefaultStr: "info",
		get:        func(cfg *Config) string { return cfg.Log.Level },
		set: func(cfg *Config, v string) error {
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "debug", "info", "warn", "error":
				cfg.Log.Level = strings.ToLower(strings.TrimSpace(v))
				return nil
			}
			return fmt.Errorf("invalid value %q for log.level (use debug, info, warn or error)", v)
		},
		unset: func(cfg *Config) { cfg.Log.Level = "info" },
	},
	"history": {
		Type:       KeyTypeBool,
		Desc:       "Record launches and selections",
		DefaultStr: "true",
		get:        func(cfg *Config) string { return fmt.Sprintf("%t", cfg.History.IsEnabled()) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for history: %w", v, err)
			}
			cfg.History.Enabled = BoolPtr(b)
			return nil
		},
		unset: func(cfg *Config) { cfg.History.Enabled = BoolPtr(true) },
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseBoolValue accepts common boolean string representations.
// Valid truthy values: true, 1, yes, on.
// Valid falsy values: false, 0, no, off.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}

package config

import (
	"sort"
	"testing"
)

func TestValidKeyNames_NonEmpty(t *testing.T) {
	names := ValidKeyNames()
	if len(names) == 0 {
		t.Fatal("expected non-empty key list")
	}
}

func TestValidKeyNames_Sorted(t *testing.T) {
	names := ValidKeyNames()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected sorted key names, got %v", names)
	}
}

func TestValidKeyNames_ContainsKnownKeys(t *testing.T) {
	expected := []string{"history", "log.level", "ui.prompt", "ui.height", "dmenu.encoding", "terminal.device"}
	names := ValidKeyNames()
	nameSet := make(map[string]bool, len(names))
	for _, n := range names {
		nameSet[n] = true
	}
	for _, want := range expected {
		if !nameSet[want] {
			t.Errorf("ValidKeyNames missing expected key %q", want)
		}
	}
}

func TestLookupKey_Known(t *testing.T) {
	entry, ok := LookupKey("ui.prompt")
	if !ok {
		t.Fatal("expected ui.prompt to be found")
	}
	if entry.Type != KeyTypeString {
		t.Fatalf("expected string type for ui.prompt, got %q", entry.Type)
	}
}

func TestLookupKey_Unknown(t *testing.T) {
	_, ok := LookupKey("not.a.real.key")
	if ok {
		t.Fatal("expected unknown key to return false")
	}
}

func TestParseBoolValue_TrueVariants(t *testing.T) {
	for _, v := range []string{"true", "1", "yes", "on", "TRUE", "YES", "On"} {
		b, err := ParseBoolValue(v)
		if err != nil {
			t.Errorf("ParseBoolValue(%q): unexpected error: %v", v, err)
		}
		if !b {
			t.Errorf("ParseBoolValue(%q): expected true", v)
		}
	}
}

func TestParseBoolValue_FalseVariants(t *testing.T) {
	for _, v := range []string{"false", "0", "no", "off", "FALSE", "NO", "Off"} {
		b, err := ParseBoolValue(v)
		if err != nil {
			t.Errorf("ParseBoolValue(%q): unexpected error: %v", v, err)
		}
		if b {
			t.Errorf("ParseBoolValue(%q): expected false", v)
		}
	}
}

func TestParseBoolValue_Invalid(t *testing.T) {
	for _, v := range []string{"maybe", "yep", "nope", "", "2", "tru"} {
		_, err := ParseBoolValue(v)
		if err == nil {
			t.Errorf("ParseBoolValue(%q): expected error for invalid bool", v)
		}
	}
}

func TestSetGetUnset_StringKey(t *testing.T) {
	cfg := &Config{}
	entry, ok := LookupKey("ui.prompt")
	if !ok {
		t.Fatal("ui.prompt not found in registry")
	}

	if err := entry.Set(cfg, "run: "); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := entry.Get(cfg); got != "run: " {
		t.Fatalf("Get: expected 'run: ', got %q", got)
	}

	entry.Unset(cfg)
	if got := entry.Get(cfg); got != DefaultPrompt {
		t.Fatalf("Unset: expected %q, got %q", DefaultPrompt, got)
	}
}

func TestSetGetUnset_BoolKey(t *testing.T) {
	cfg := &Config{History: HistoryConfig{Enabled: BoolPtr(true)}}
	entry, ok := LookupKey("history")
	if !ok {
		t.Fatal("history not found in registry")
	}

	if err := entry.Set(cfg, "false"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := entry.Get(cfg); got != "false" {
		t.Fatalf("Get: expected 'false', got %q", got)
	}

	entry.Unset(cfg)
	if got := entry.Get(cfg); got != "true" {
		t.Fatalf("Unset: expected 'true', got %q", got)
	}
}

func TestSet_BoolInvalidType(t *testing.T) {
	cfg := &Config{}
	entry, ok := LookupKey("history")
	if !ok {
		t.Fatal("history not found in registry")
	}

	err := entry.Set(cfg, "notabool")
	if err == nil {
		t.Fatal("expected error for invalid bool value")
	}
}

func TestSetGetUnset_IntKey(t *testing.T) {
	cfg := defaultConfig()
	entry, ok := LookupKey("ui.height")
	if !ok {
		t.Fatal("ui.height not found in registry")
	}

	if err := entry.Set(cfg, "15"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.UI.Height != 15 {
		t.Fatalf("expected height 15, got %d", cfg.UI.Height)
	}
	for _, bad := range []string{"-1", "tall", ""} {
		if err := entry.Set(cfg, bad); err == nil {
			t.Errorf("Set(%q) should fail", bad)
		}
	}

	entry.Unset(cfg)
	if cfg.UI.Height != DefaultHeight {
		t.Fatalf("Unset: expected %d, got %d", DefaultHeight, cfg.UI.Height)
	}
}

func TestSet_LogLevel(t *testing.T) {
	cfg := defaultConfig()
	entry, _ := LookupKey("log.level")

	if err := entry.Set(cfg, "DEBUG"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected normalized level 'debug', got %q", cfg.Log.Level)
	}
	if err := entry.Set(cfg, "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestAllSchemaKeys_GetSetUnsetDoNotPanic(t *testing.T) {
	cfg := defaultConfig()
	for key, entry := range SchemaKeys {
		// Verify Get doesn't panic.
		_ = entry.Get(cfg)

		// Verify Unset doesn't panic.
		entry.Unset(cfg)

		// Verify Get after Unset doesn't panic.
		_ = entry.Get(cfg)

		// Verify Set with the default doesn't fail.
		if entry.Type != KeyTypeBool {
			if err := entry.Set(cfg, entry.DefaultStr); err != nil {
				t.Errorf("key %q: Set with default value %q failed: %v", key, entry.DefaultStr, err)
			}
		}
	}
}

func TestAllSchemaKeys_HaveDesc(t *testing.T) {
	for key, entry := range SchemaKeys {
		if entry.Desc == "" {
			t.Errorf("key %q has empty Desc", key)
		}
	}
}

func TestAllSchemaKeys_HaveValidType(t *testing.T) {
	for key, entry := range SchemaKeys {
		switch entry.Type {
		case KeyTypeString, KeyTypeInt, KeyTypeBool:
			// valid
		default:
			t.Errorf("key %q has invalid Type %q", key, entry.Type)
		}
	}
}

func TestKeyEntry_DotNotation(t *testing.T) {
	// Verify all known keys use dot-notation or are at the top level.
	for key := range SchemaKeys {
		if key == "" {
			t.Error("found empty key in SchemaKeys")
		}
	}
}

func TestRoundTrip_Device(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("XDG_CACHE_HOME", tmpDir+"/cache")
	t.Setenv("XDG_STATE_HOME", tmpDir+"/state")

	entry, ok := LookupKey("terminal.device")
	if !ok {
		t.Fatal("terminal.device not found")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := entry.Set(cfg, "/dev/pts/7"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}

	if got := entry.Get(loaded); got != "/dev/pts/7" {
		t.Fatalf("round-trip failed: expected '/dev/pts/7', got %q", got)
	}
}

func TestSet_DmenuEncoding(t *testing.T) {
	cfg := defaultConfig()
	entry, ok := LookupKey("dmenu.encoding")
	if !ok {
		t.Fatal("dmenu.encoding not found in registry")
	}

	if got := entry.Get(cfg); got != "" {
		t.Fatalf("default encoding should be empty (utf-8), got %q", got)
	}
	for _, label := range []string{"latin1", " shift_jis ", "UTF-8"} {
		if err := entry.Set(cfg, label); err != nil {
			t.Errorf("Set(%q): %v", label, err)
		}
	}
	if got := entry.Get(cfg); got != "UTF-8" {
		t.Fatalf("Get: expected 'UTF-8', got %q", got)
	}

	if err := entry.Set(cfg, "klingon"); err == nil {
		t.Fatal("expected error for unknown encoding label")
	}
	if got := entry.Get(cfg); got != "UTF-8" {
		t.Fatalf("rejected label must not change the value, got %q", got)
	}

	if err := entry.Set(cfg, ""); err != nil {
		t.Fatalf("empty label should reset to utf-8: %v", err)
	}
	entry.Set(cfg, "latin1")
	entry.Unset(cfg)
	if got := entry.Get(cfg); got != "" {
		t.Fatalf("Unset: expected empty encoding, got %q", got)
	}
}

func TestSet_TerminalDevice(t *testing.T) {
	cfg := defaultConfig()
	entry, _ := LookupKey("terminal.device")

	if got := entry.Get(cfg); got != DefaultDevice {
		t.Fatalf("default device should be %q, got %q", DefaultDevice, got)
	}
	if err := entry.Set(cfg, "/dev/pts/3"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.Terminal.Device != "/dev/pts/3" {
		t.Fatalf("expected /dev/pts/3, got %q", cfg.Terminal.Device)
	}
	entry.Unset(cfg)
	if cfg.Terminal.Device != DefaultDevice {
		t.Fatalf("Unset: expected %q, got %q", DefaultDevice, cfg.Terminal.Device)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBind != "127.0.0.1:8274" {
		t.Fatalf("APIBind = %q", cfg.APIBind)
	}
	if cfg.PrefsPath != "" {
		t.Fatalf("PrefsPath = %q, want empty", cfg.PrefsPath)
	}
}

func TestLoadParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "api_bind = \"0.0.0.0:9100\"\nprefs_path = \"/tmp/funnel-prefs.db\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBind != "0.0.0.0:9100" {
		t.Fatalf("APIBind = %q", cfg.APIBind)
	}
	if cfg.PrefsPath != "/tmp/funnel-prefs.db" {
		t.Fatalf("PrefsPath = %q", cfg.PrefsPath)
	}
}

func TestLoadBlankBindFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_bind = \"   \"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBind != "127.0.0.1:8274" {
		t.Fatalf("APIBind = %q, want default", cfg.APIBind)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_bind = [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FOLIO_URL", "")
	t.Setenv("FOLIO_ADMIN_KEY", "")
	t.Setenv("FOLIO_PROFILE", "")
	FlagURL, FlagKey, FlagProfile = "", "", ""
	return home
}

func writeConfig(t *testing.T, home, body string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "folio")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFromFileDefaultProfile(t *testing.T) {
	home := setupHome(t)
	writeConfig(t, home, `default: personal
sites:
  personal:
    url: https://me.example.com
    key: aa:bb
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.URL != "https://me.example.com" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Key != "aa:bb" {
		t.Errorf("Key = %q", cfg.Key)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := setupHome(t)
	writeConfig(t, home, `default: personal
sites:
  personal:
    url: https://file.example.com
    key: file:key
`)
	t.Setenv("FOLIO_URL", "https://env.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.URL != "https://env.example.com" {
		t.Errorf("URL = %q, env var should win over the file", cfg.URL)
	}
	if cfg.Key != "file:key" {
		t.Errorf("Key = %q, file value should survive", cfg.Key)
	}
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	setupHome(t)
	t.Setenv("FOLIO_URL", "https://env.example.com")
	t.Setenv("FOLIO_ADMIN_KEY", "env:key")
	FlagURL = "https://flag.example.com"
	defer func() { FlagURL = "" }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.URL != "https://flag.example.com" {
		t.Errorf("URL = %q, flag should win over env", cfg.URL)
	}
}

func TestLoadMissingConfig(t *testing.T) {
	setupHome(t)

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded with nothing configured, want error")
	}
}

func TestLoadLegacySingleSite(t *testing.T) {
	home := setupHome(t)
	writeConfig(t, home, "url: https://legacy.example.com\nkey: old:key\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.URL != "https://legacy.example.com" || cfg.Key != "old:key" {
		t.Errorf("cfg = %+v, want legacy fields", cfg)
	}
}

func TestSaveSiteRoundTrip(t *testing.T) {
	home := setupHome(t)

	if err := SaveSite("work", Config{URL: "https://work.example.com", Key: "w:k"}, true); err != nil {
		t.Fatalf("SaveSite() error = %v", err)
	}

	names, def, err := ListSites()
	if err != nil {
		t.Fatalf("ListSites() error = %v", err)
	}
	if len(names) != 1 || names[0] != "work" {
		t.Errorf("names = %v, want [work]", names)
	}
	if def != "work" {
		t.Errorf("default = %q, want work", def)
	}

	if _, err := os.Stat(filepath.Join(home, ".config", "folio", "config.yaml")); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

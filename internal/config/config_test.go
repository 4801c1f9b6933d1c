package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultServerConfig()
	if cfg != want {
		t.Errorf("cfg = %+v\nwant %+v", cfg, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should be tolerated: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Addr)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insadmin.yaml")
	data := []byte(`addr: ":9090"
api_base_url: https://remote.example/api
session_ttl: 2h
cache_ttl: 30s
secure_cookies: true
locale: ar
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INSADMIN_ADDR", ":7070")
	t.Setenv("INSADMIN_REQUEST_TIMEOUT", "5s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("env should override file: addr = %q", cfg.Addr)
	}
	if cfg.APIBaseURL != "https://remote.example/api" || cfg.Locale != "ar" || !cfg.SecureCookies {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.SessionTTL != 2*time.Hour || cfg.CacheTTL != 30*time.Second || cfg.RequestTimeout != 5*time.Second {
		t.Errorf("durations = %v %v %v", cfg.SessionTTL, cfg.CacheTTL, cfg.RequestTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("unset key should keep default, got %q", cfg.LogLevel)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("addr: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{"defaults", func(*ServerConfig) {}, false},
		{"relative url", func(c *ServerConfig) { c.APIBaseURL = "/api" }, true},
		{"bad scheme", func(c *ServerConfig) { c.APIBaseURL = "ftp://x/api" }, true},
		{"zero ttl", func(c *ServerConfig) { c.SessionTTL = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing .env: %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("INSADMIN_LOCALE=fr\nINSADMIN_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INSADMIN_LOG_LEVEL", "warn")
	// Registers cleanup so the variable does not leak into other tests.
	t.Setenv("INSADMIN_LOCALE", "")
	os.Unsetenv("INSADMIN_LOCALE")

	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("INSADMIN_LOCALE"); got != "fr" {
		t.Errorf("INSADMIN_LOCALE = %q", got)
	}
	if got := os.Getenv("INSADMIN_LOG_LEVEL"); got != "warn" {
		t.Errorf("existing variable overridden: %q", got)
	}
}

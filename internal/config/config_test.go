package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/me/prodview/pkg/model"
)

// isolate points HOME at an empty directory so a developer's own config
// file does not leak into the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultViewerConfig(t *testing.T) {
	cfg := DefaultViewerConfig()
	if cfg.BaseURL != "https://dummyjson.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.PageSize)
	}
	if cfg.PaginationMode() != model.ModePaged {
		t.Errorf("PaginationMode() = %q, want paged", cfg.PaginationMode())
	}
	if cfg.Debounce != 500*time.Millisecond {
		t.Errorf("Debounce = %v, want 500ms", cfg.Debounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultViewerConfig() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing explicit config")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
base_url: http://localhost:9000
page_size: 20
mode: infinite
debounce: 250ms
timeout: 3s
log_level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.PageSize != 20 {
		t.Errorf("PageSize = %d, want 20", cfg.PageSize)
	}
	if cfg.PaginationMode() != model.ModeInfinite {
		t.Errorf("PaginationMode() = %q, want infinite", cfg.PaginationMode())
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v, want 250ms", cfg.Debounce)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	// Unset keys keep their defaults.
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_DefaultPathPickedUp(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".prodview", "config.yaml"), "page_size: 5\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PageSize != 5 {
		t.Errorf("PageSize = %d, want 5", cfg.PageSize)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "base_url: http://from-file\npage_size: 20\nrate_burst: 2\n")

	t.Setenv("PRODVIEW_BASE_URL", "http://from-env")
	t.Setenv("PRODVIEW_PAGE_SIZE", "30")
	t.Setenv("PRODVIEW_DEBOUNCE", "1s")
	t.Setenv("PRODVIEW_RATE_LIMIT", "2.5")
	t.Setenv("PRODVIEW_RATE_BURST", "8")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://from-env" {
		t.Errorf("BaseURL = %q, want env value", cfg.BaseURL)
	}
	if cfg.PageSize != 30 {
		t.Errorf("PageSize = %d, want 30", cfg.PageSize)
	}
	if cfg.Debounce != time.Second {
		t.Errorf("Debounce = %v, want 1s", cfg.Debounce)
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("RateLimit = %v, want 2.5", cfg.RateLimit)
	}
	if cfg.RateBurst != 8 {
		t.Errorf("RateBurst = %d, want 8", cfg.RateBurst)
	}
	if cc := cfg.ClientConfig(); cc.Burst != 8 {
		t.Errorf("ClientConfig().Burst = %d, want 8", cc.Burst)
	}
}

func TestLoad_BadEnv(t *testing.T) {
	tests := []struct{ key, value string }{
		{"PRODVIEW_PAGE_SIZE", "ten"},
		{"PRODVIEW_DEBOUNCE", "soon"},
		{"PRODVIEW_RATE_LIMIT", "fast"},
		{"PRODVIEW_RATE_BURST", "many"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(""); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "page_size: [1, 2\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ViewerConfig)
	}{
		{"empty base url", func(c *ViewerConfig) { c.BaseURL = "" }},
		{"relative base url", func(c *ViewerConfig) { c.BaseURL = "dummyjson" }},
		{"zero page size", func(c *ViewerConfig) { c.PageSize = 0 }},
		{"page size too large", func(c *ViewerConfig) { c.PageSize = 101 }},
		{"unknown mode", func(c *ViewerConfig) { c.Mode = "scroll" }},
		{"zero timeout", func(c *ViewerConfig) { c.Timeout = 0 }},
		{"negative rate", func(c *ViewerConfig) { c.RateLimit = -1 }},
		{"negative burst", func(c *ViewerConfig) { c.RateBurst = -1 }},
		{"unknown log format", func(c *ViewerConfig) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultViewerConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestClientConfig(t *testing.T) {
	cfg := DefaultViewerConfig()
	cfg.BaseURL = "http://example.test"
	cfg.RateLimit = 0
	cc := cfg.ClientConfig()
	if cc.BaseURL != "http://example.test" {
		t.Errorf("BaseURL = %q", cc.BaseURL)
	}
	if cc.Timeout != cfg.Timeout {
		t.Errorf("Timeout = %v, want %v", cc.Timeout, cfg.Timeout)
	}
	if cc.RequestsPerSecond != 0 {
		t.Errorf("RequestsPerSecond = %v, want 0", cc.RequestsPerSecond)
	}
}

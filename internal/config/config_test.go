package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, info, err := LoadConfigFrom(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if info.Found || info.PortSpecified {
		t.Fatalf("unexpected info %+v", info)
	}
	def := DefaultConfig()
	if cfg.Server.Port != def.Server.Port || cfg.Cache.Backend != BackendFile || cfg.Source.Kind != SourceHTTP {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfigFrom_TomlAndDotenv(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, FileName, `
[server]
port = 9000

[source]
kind = "http"
sheet_param = "sheetName"
timeout_seconds = 10

[cache]
backend = "sqlite"
max_age_seconds = 300
`)
	writeFile(t, dir, ".env", "HRCONSOLE_SOURCE_URL=https://script.example.com/exec\nLOG_LEVEL=debug\n")

	cfg, info, err := LoadConfigFrom(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !info.Found || !info.PortSpecified {
		t.Fatalf("unexpected info %+v", info)
	}
	if cfg.Server.Port != 9000 {
		t.Fatalf("port want 9000 got %d", cfg.Server.Port)
	}
	if cfg.Source.SheetParam != "sheetName" || cfg.Source.TimeoutSeconds != 10 {
		t.Fatalf("source section not applied: %+v", cfg.Source)
	}
	if cfg.Cache.Backend != BackendSQLite || cfg.Cache.MaxAgeSeconds != 300 {
		t.Fatalf("cache section not applied: %+v", cfg.Cache)
	}
	// untouched keys keep defaults
	if cfg.Cache.FileName != "hr-data-store.json" {
		t.Fatalf("file name default lost: %q", cfg.Cache.FileName)
	}
	if cfg.Source.BaseURL != "https://script.example.com/exec" {
		t.Fatalf(".env not applied: %q", cfg.Source.BaseURL)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadConfigFrom_InvalidToml(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, FileName, "[server\nport = ")
	if _, _, err := LoadConfigFrom(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"HRCONSOLE_WORKBOOK":      "/srv/hr.xlsx",
		"HRCONSOLE_DATA_DIR":      "/var/lib/hrconsole",
		"HRCONSOLE_CACHE_BACKEND": "SQLite",
	}
	cfg := DefaultConfig()
	ApplyEnv(cfg, func(k string) string { return env[k] })

	if cfg.Source.Kind != SourceWorkbook || cfg.Source.WorkbookPath != "/srv/hr.xlsx" {
		t.Fatalf("workbook override not applied: %+v", cfg.Source)
	}
	if cfg.Cache.Backend != BackendSQLite {
		t.Fatalf("backend want sqlite got %q", cfg.Cache.Backend)
	}
	if got := ResolveDataDir(cfg, "/opt/hr"); got != "/var/lib/hrconsole" {
		t.Fatalf("absolute data dir should win, got %s", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*AppConfig)
		ok     bool
	}{
		{"http without url", func(c *AppConfig) {}, false},
		{"http with url", func(c *AppConfig) { c.Source.BaseURL = "https://x" }, true},
		{"workbook without path", func(c *AppConfig) { c.Source.Kind = SourceWorkbook }, false},
		{"unknown kind", func(c *AppConfig) { c.Source.Kind = "ftp" }, false},
		{"unknown backend", func(c *AppConfig) { c.Source.BaseURL = "https://x"; c.Cache.Backend = "redis" }, false},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		err := cfg.Validate()
		if (err == nil) != tc.ok {
			t.Fatalf("%s: ok=%v err=%v", tc.name, tc.ok, err)
		}
	}
}

func TestEnsureDataDir(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	cfg := DefaultConfig()
	dir, err := EnsureDataDir(cfg, base)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if dir != filepath.Join(base, "data") {
		t.Fatalf("unexpected dir %s", dir)
	}
	if _, err := os.Stat(filepath.Join(dir, "exports")); err != nil {
		t.Fatalf("exports dir missing: %v", err)
	}
}

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	t.Setenv("PROJECTID", "unisync-dev")
	t.Setenv("CORSORIGINS", "https://portal.example.com,http://localhost:3000")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.ProjectID != "unisync-dev" || cfg.Port != "8080" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	want := []string{"https://portal.example.com", "http://localhost:3000"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Fatalf("expected origins %v, got %v", want, cfg.CORSOrigins)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
	}
}

func TestNewCLI(t *testing.T) {
	t.Setenv("OVERVIEW_VIEWPORT_WIDTH", "900")
	t.Setenv("OVERVIEW_ROLES", "dcf_requestor,manhours_staff")

	cfg, err := NewCLI()
	if err != nil {
		t.Fatalf("NewCLI: %v", err)
	}
	if cfg.ViewportWidth != 900 || cfg.Timeout != 15*time.Second {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.Roles) != 2 {
		t.Fatalf("unexpected roles %v", cfg.Roles)
	}
}

func TestNewCLIInvalidWidth(t *testing.T) {
	t.Setenv("OVERVIEW_VIEWPORT_WIDTH", "wide")
	if _, err := NewCLI(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("OVERVIEW_TOKEN=from-file\nOVERVIEW_API_URL=http://file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OVERVIEW_API_URL", "http://env")
	t.Setenv("OVERVIEW_TOKEN", "")
	os.Unsetenv("OVERVIEW_TOKEN")

	n, err := LoadEnv(filepath.Join(dir, "missing.env"), path)
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 file loaded, got %d", n)
	}

	cfg, err := NewCLI()
	if err != nil {
		t.Fatalf("NewCLI: %v", err)
	}
	if cfg.Token != "from-file" {
		t.Fatalf("expected token from file, got %q", cfg.Token)
	}
	if cfg.APIURL != "http://env" {
		t.Fatalf("environment should win, got %q", cfg.APIURL)
	}
}

func TestLoadEnvNoFiles(t *testing.T) {
	n, err := LoadEnv(filepath.Join(t.TempDir(), "nope"))
	if err != nil || n != 0 {
		t.Fatalf("expected 0, nil; got %d, %v", n, err)
	}
}

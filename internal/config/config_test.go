package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dstrand/wander/internal/config"
)

// chtemp switches to an empty temp directory so stray config.json or .env
// files in the working tree cannot leak into a test.
func chtemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chtemp(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != config.DefaultBaseURL {
		t.Errorf("BaseURL: got %q", cfg.BaseURL)
	}
	if cfg.Format != "table" {
		t.Errorf("Format: got %q", cfg.Format)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Timeout: got %v", cfg.Timeout)
	}
	if cfg.Rate != 5.0 {
		t.Errorf("Rate: got %g", cfg.Rate)
	}
	if cfg.DBPath == "" {
		t.Error("DBPath default not set")
	}
	if cfg.ConfigPath != "" {
		t.Errorf("ConfigPath set with no config.json: %q", cfg.ConfigPath)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := chtemp(t)

	err := config.WriteFile(filepath.Join(dir, "config.json"), config.File{
		BaseURL:       "http://backend:9000",
		DefaultFormat: "json",
		Timeout:       "30s",
		Rate:          2.5,
		DBPath:        "/tmp/custom.db",
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "http://backend:9000" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL)
	}
	if cfg.Format != "json" || cfg.Timeout != 30*time.Second || cfg.Rate != 2.5 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath: got %q", cfg.DBPath)
	}
	if cfg.ConfigPath == "" {
		t.Error("ConfigPath not recorded")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := chtemp(t)

	err := config.WriteFile(filepath.Join(dir, "config.json"), config.File{BaseURL: "http://from-file:8000"})
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvBaseURL, "http://from-env:8000")
	t.Setenv(config.EnvTimeout, "45s")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "http://from-env:8000" {
		t.Errorf("env should override file: got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout from env: got %v", cfg.Timeout)
	}
}

func TestFlagOverridesEverything(t *testing.T) {
	chtemp(t)
	t.Setenv(config.EnvBaseURL, "http://from-env:8000")

	cfg, err := config.Load("http://from-flag:8000")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "http://from-flag:8000" {
		t.Errorf("flag should win: got %q", cfg.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	good := &config.Config{BaseURL: "http://localhost:8000"}
	if err := good.Validate(); err != nil {
		t.Errorf("valid base URL rejected: %v", err)
	}

	for _, bad := range []string{"", "localhost:8000", "not a url", "/just/a/path"} {
		cfg := &config.Config{BaseURL: bad}
		if err := cfg.Validate(); err == nil {
			t.Errorf("base URL %q accepted", bad)
		}
	}
}

func TestBadTimeoutIgnored(t *testing.T) {
	dir := chtemp(t)

	err := config.WriteFile(filepath.Join(dir, "config.json"), config.File{Timeout: "soonish"})
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Timeout != config.DefaultTimeout {
		t.Errorf("unparseable timeout should fall back to default, got %v", cfg.Timeout)
	}
}

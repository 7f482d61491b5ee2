package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesDefaultsAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: 9999
providers:
  guardian:
    api_key: test-guardian-key
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want override 9999", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q, want default", cfg.Server.Host)
	}
	if cfg.Providers.Guardian.APIKey != "test-guardian-key" {
		t.Errorf("guardian api key = %q", cfg.Providers.Guardian.APIKey)
	}
	if cfg.Providers.Guardian.Endpoint != "https://content.guardianapis.com/search" {
		t.Errorf("guardian endpoint = %q, want default", cfg.Providers.Guardian.Endpoint)
	}
	if cfg.Providers.NYT.Timeout != 30*time.Second {
		t.Errorf("nyt timeout = %v, want default 30s", cfg.Providers.NYT.Timeout)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Errorf("max open conns = %d, want default 25", cfg.Database.MaxOpenConns)
	}
}

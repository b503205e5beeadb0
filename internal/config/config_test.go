package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Download.OutputDir != "downloads" {
		t.Errorf("default output dir = %q", cfg.Download.OutputDir)
	}
	if cfg.Download.APIURL == "" {
		t.Error("default API URL should be set")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
telegram:
  token: "123:abc"
  webhook_host: "https://bot.example.com"
server:
  port: 9090
download:
  output_dir: "media"
  api_url: "http://localhost:9000/"
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("token = %q", cfg.Telegram.Token)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Download.APIURL != "http://localhost:9000/" {
		t.Errorf("api url = %q", cfg.Download.APIURL)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("telegram:\n  token: \"from-file\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("PORT", "3000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Telegram.Token != "from-env" {
		t.Errorf("token = %q, env should win over the file", cfg.Telegram.Token)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("port = %d, want 3000", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate should fail without a token")
	}

	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.WebhookHost = "https://bot.example.com"
	cfg.Download.OutputDir = filepath.Join(t.TempDir(), "media")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if _, err := os.Stat(cfg.Download.OutputDir); err != nil {
		t.Errorf("Validate should create the output dir: %v", err)
	}
}

// Package config loads bot settings from config.yaml with environment
// overrides. The file is optional; the token and webhook host are not.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram struct {
		Token       string `yaml:"token"`
		WebhookHost string `yaml:"webhook_host"`
	} `yaml:"telegram"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Download struct {
		OutputDir      string `yaml:"output_dir"`
		APIURL         string `yaml:"api_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"download"`
}

// Load reads path if it exists, applies environment overrides, and fills in
// defaults. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("WEBHOOK_HOST"); v != "" {
		cfg.Telegram.WebhookHost = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("COBALT_API_URL"); v != "" {
		cfg.Download.APIURL = v
	}
	if v := os.Getenv("DOWNLOAD_DIR"); v != "" {
		cfg.Download.OutputDir = v
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Download.OutputDir == "" {
		cfg.Download.OutputDir = "downloads"
	}
	if cfg.Download.APIURL == "" {
		cfg.Download.APIURL = "https://api.cobalt.tools/"
	}
	if cfg.Download.TimeoutSeconds == 0 {
		cfg.Download.TimeoutSeconds = 300
	}

	return &cfg, nil
}

// Validate reports missing required settings and prepares the download
// directory.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return errors.New("telegram token not configured")
	}
	if c.Telegram.WebhookHost == "" {
		return errors.New("webhook host not configured")
	}
	if err := os.MkdirAll(c.Download.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating downloads dir: %w", err)
	}
	return nil
}

func (c *Config) DownloadTimeout() time.Duration {
	return time.Duration(c.Download.TimeoutSeconds) * time.Second
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields careerlog needs to reach its backend.
type Config struct {
	BaseURL        string
	RequestTimeout int // seconds, applied to the shared http.Client
	PollSeconds    int
	LogPath        string
}

const (
	defaultConfigPath     = "~/.config/careerlog/config.toml"
	defaultBaseURL        = "http://127.0.0.1:8000"
	defaultRequestTimeout = 10
	defaultPollSeconds    = 30
	defaultLogPath        = "~/.local/state/careerlog/careerlog.log"
)

// Load locates and parses the careerlog config, falling back to defaults
// when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:        defaultBaseURL,
		RequestTimeout: defaultRequestTimeout,
		PollSeconds:    defaultPollSeconds,
		LogPath:        mustExpand(defaultLogPath),
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL               string `toml:"base_url"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
		PollSeconds           int    `toml:"poll_seconds"`
		LogPath               string `toml:"log_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(raw.BaseURL); base != "" {
		cfg.BaseURL = base
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = raw.RequestTimeoutSeconds
	}
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	if logPath := strings.TrimSpace(raw.LogPath); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

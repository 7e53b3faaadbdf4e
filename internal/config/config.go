// Package config loads the writing assistant configuration from an optional
// YAML file with environment variable overrides. Environment values always
// win, so a deployment can run with no config file at all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all writing assistant configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	LanguageTool LanguageToolConfig `yaml:"languagetool"`
	OpenAI       OpenAIConfig       `yaml:"openai"`
	Logging      LoggingConfig      `yaml:"logging"`

	// TraceDBPath enables the sqlite archive of service lifecycle traces
	// when non-empty. Analysis results are never stored.
	TraceDBPath string `yaml:"trace_db_path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// APIToken protects every /api route. Requests present it via the
	// X-Local-Auth header or an Authorization bearer token.
	APIToken string `yaml:"api_token"`
}

// LanguageToolConfig configures the grammar checking collaborator.
type LanguageToolConfig struct {
	URL            string `yaml:"url"`
	Language       string `yaml:"language"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`

	// JarPath is the fallback LanguageTool jar used when no server binary
	// is on PATH and the configured endpoint is not already running.
	JarPath string `yaml:"jar_path"`

	// Managed controls whether the lifecycle manager may start a local
	// LanguageTool process when the endpoint is down.
	Managed bool `yaml:"managed"`
}

// OpenAIConfig configures the optional AI rewriter. The service falls back
// to the rule-based rewriter when no API key is set.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// Default returns the stock configuration before file and env layering.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8001,
		},
		LanguageTool: LanguageToolConfig{
			URL:            "http://localhost:8010/v2/check",
			Language:       "en-US",
			TimeoutSeconds: 45,
			Managed:        true,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (ignored when path is empty or the file does not exist), then
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Config file is optional.
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Host = getenv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getenvInt("SERVER_PORT", cfg.Server.Port)
	cfg.Server.APIToken = getenv("LOCAL_API_TOKEN", cfg.Server.APIToken)

	cfg.LanguageTool.URL = getenv("LANGUAGETOOL_URL", cfg.LanguageTool.URL)
	cfg.LanguageTool.Language = getenv("LT_LANGUAGE", cfg.LanguageTool.Language)
	cfg.LanguageTool.JarPath = getenv("LANGUAGETOOL_JAR", cfg.LanguageTool.JarPath)

	cfg.OpenAI.APIKey = getenv("OPENAI_API_KEY", cfg.OpenAI.APIKey)
	cfg.OpenAI.Model = getenv("OPENAI_MODEL", cfg.OpenAI.Model)
	cfg.OpenAI.BaseURL = getenv("OPENAI_BASE_URL", cfg.OpenAI.BaseURL)

	cfg.Logging.Level = getenv("LOG_LEVEL", cfg.Logging.Level)
	cfg.TraceDBPath = getenv("TRACE_DB_PATH", cfg.TraceDBPath)
}

// Addr returns the host:port the HTTP server binds.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

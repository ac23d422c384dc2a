package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config aggregates every runtime setting of the service.
type Config struct {
	Server   ServerConfig
	Chat     ChatConfig
	Analyzer AnalyzerConfig
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// ChatConfig describes conversation defaults.
type ChatConfig struct {
	DefaultConversation string `env:"CHAT_DEFAULT_CONVERSATION" envDefault:"support"`
	TranscriptLimit     int    `env:"CHAT_TRANSCRIPT_LIMIT" envDefault:"10000"`
}

// AnalyzerConfig describes the optional external sentiment analyzer.
type AnalyzerConfig struct {
	URL     string        `env:"SENTIMENT_ANALYZER_URL"`
	Timeout time.Duration `env:"SENTIMENT_ANALYZER_TIMEOUT" envDefault:"5s"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if strings.Contains(cfg.Server.Port, " ") {
		return nil, fmt.Errorf("invalid PORT value: %q", cfg.Server.Port)
	}
	if cfg.Chat.TranscriptLimit < 0 {
		return nil, fmt.Errorf("invalid CHAT_TRANSCRIPT_LIMIT: must not be negative")
	}

	return &cfg, nil
}

// Addr returns the listen address. PORT may be a bare port, ":8080" or a full
// host:port pair.
func (c ServerConfig) Addr() string {
	port := strings.TrimSpace(c.Port)
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}

// Enabled reports whether a remote analyzer is configured.
func (c AnalyzerConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

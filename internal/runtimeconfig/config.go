package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrMarkdownContentDirRequired = errors.New("pages config: markdown content directory is required when imports are enabled")
var ErrCommandsTimeoutInvalid = errors.New("pages config: command timeout must be zero or positive")
var ErrLoggingProviderRequired = errors.New("pages config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("pages config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("pages config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("pages config: logging format is invalid")
var ErrRetentionLimitInvalid = errors.New("pages config: revision retention limit must be zero or positive")
var ErrAdvancedCacheRequiresEnabledCache = errors.New("pages config: advanced cache feature requires cache to be enabled")

// Config aggregates feature flags and adapter bindings for the pages module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool
	Storage   StorageConfig
	Cache     CacheConfig
	Markdown  MarkdownConfig
	Logging   LoggingConfig
	Features  Features
	Commands  CommandsConfig
	Retention RetentionConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// MarkdownConfig captures filesystem and renderer behaviour for Markdown
// ingestion and display.
type MarkdownConfig struct {
	ImportsEnabled bool
	ContentDir     string
	Pattern        string
	Recursive      bool
	Renderer       RendererConfig
}

// RendererConfig mirrors the markdown renderer options for runtime configuration.
type RendererConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Collections   bool
	Attachments   bool
	AdvancedCache bool
	Logger        bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// RetentionConfig caps how many revisions are kept per document. Zero keeps
// everything.
type RetentionConfig struct {
	Revisions int
}

// DefaultConfig returns opinionated defaults for an embedded deployment.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Features: Features{
			Collections: true,
			Attachments: true,
		},
		Commands:  CommandsConfig{},
		Retention: RetentionConfig{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Markdown.ImportsEnabled {
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandsTimeoutInvalid
	}
	if cfg.Retention.Revisions < 0 {
		return ErrRetentionLimitInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

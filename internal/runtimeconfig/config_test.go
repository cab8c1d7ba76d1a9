package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/runtimeconfig"
)

func TestConfigValidate_AllowsDefaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresContentDirWhenImportsEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.ImportsEnabled = true
	cfg.Markdown.ContentDir = " "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrMarkdownContentDirRequired) {
		t.Fatalf("expected ErrMarkdownContentDirRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeRetention(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Retention.Revisions = -1

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrRetentionLimitInvalid) {
		t.Fatalf("expected ErrRetentionLimitInvalid, got %v", err)
	}
}

func TestConfigValidate_AdvancedCacheNeedsCache(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.AdvancedCache = true
	cfg.Cache.Enabled = false

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrAdvancedCacheRequiresEnabledCache) {
		t.Fatalf("expected ErrAdvancedCacheRequiresEnabledCache, got %v", err)
	}
}

package pages

import "github.com/Breezeware-OS/dynamo-pages-template/internal/runtimeconfig"

var (
	ErrMarkdownContentDirRequired        = runtimeconfig.ErrMarkdownContentDirRequired
	ErrCommandsTimeoutInvalid            = runtimeconfig.ErrCommandsTimeoutInvalid
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
	ErrRetentionLimitInvalid             = runtimeconfig.ErrRetentionLimitInvalid
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
)

type (
	Config          = runtimeconfig.Config
	StorageConfig   = runtimeconfig.StorageConfig
	CacheConfig     = runtimeconfig.CacheConfig
	MarkdownConfig  = runtimeconfig.MarkdownConfig
	RendererConfig  = runtimeconfig.RendererConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	Features        = runtimeconfig.Features
	CommandsConfig  = runtimeconfig.CommandsConfig
	RetentionConfig = runtimeconfig.RetentionConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

package bootstrap

import (
	"fmt"
	"strings"

	pages "github.com/Breezeware-OS/dynamo-pages-template"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/di"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/identity"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/logging"
	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

// Options captures configuration for pages CLI bootstraps.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	UserID         string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the pages module and the services the CLIs need.
type Module struct {
	Module      *pages.Module
	Documents   pages.DocumentService
	Collections pages.CollectionService
	Importer    *pages.Importer
	Logger      interfaces.Logger
}

// BuildModule constructs a pages module configured for import operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := pages.DefaultConfig()
	cfg.Markdown.ImportsEnabled = true
	cfg.Markdown.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.Markdown.ContentDir == "" {
		cfg.Markdown.ContentDir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Markdown.Pattern = trimmed
	}
	cfg.Markdown.Recursive = opts.Recursive

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}
	if trimmed := strings.TrimSpace(opts.UserID); trimmed != "" {
		diOpts = append(diOpts, di.WithIdentityProvider(identity.StaticProvider{UserID: trimmed}))
	}

	module, err := pages.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise pages module: %w", err)
	}

	var logger interfaces.Logger = logging.NoOp()
	if provider := module.Container().LoggerProvider(); provider != nil {
		logger = logging.ModuleLogger(provider, "pages.commands")
	}

	return &Module{
		Module:      module,
		Documents:   module.Documents(),
		Collections: module.Collections(),
		Importer:    module.MarkdownImporter(),
		Logger:      logger,
	}, nil
}

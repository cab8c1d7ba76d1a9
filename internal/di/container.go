package di

import (
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/collections"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/commands"
	collectionscmd "github.com/Breezeware-OS/dynamo-pages-template/internal/commands/collections"
	documentscmd "github.com/Breezeware-OS/dynamo-pages-template/internal/commands/documents"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/documents"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/identity"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/logging/console"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/logging/gologger"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/markdown"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/runtimeconfig"
	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

// Container wires module dependencies. Without a bun database it falls back
// to in-memory repositories so the module stays usable in tests and demos.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	identityProvider interfaces.IdentityProvider
	loggerProvider   interfaces.LoggerProvider

	documentRepo   documents.DocumentRepository
	revisionRepo   documents.RevisionRepository
	attachmentRepo documents.AttachmentRepository
	collectionRepo collections.CollectionRepository

	renderer *markdown.Renderer
	forks    *documents.ForkLedger
	importer *markdown.Importer

	documentSvc   documents.Service
	collectionSvc collections.Service

	commandHandlers *CommandHandlers
}

// CommandHandlers groups the message handlers the module exposes for command
// bus integration. Collection handlers are nil when the collections feature is
// disabled.
type CommandHandlers struct {
	PublishDocument  *documentscmd.PublishDocumentHandler
	ArchiveDocument  *documentscmd.ArchiveDocumentHandler
	DeleteDocument   *documentscmd.DeleteDocumentHandler
	DiscardFork      *documentscmd.DiscardForkHandler
	ImportDocument   *documentscmd.ImportDocumentHandler
	CreateCollection *collectionscmd.CreateCollectionHandler
	DeleteCollection *collectionscmd.DeleteCollectionHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB provides the database connection used to build bun repositories.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithIdentityProvider overrides how the acting user is resolved.
func WithIdentityProvider(provider interfaces.IdentityProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.identityProvider = provider
		}
	}
}

// WithLoggerProvider overrides the logger provider built from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithDocumentService overrides the document service assembly.
func WithDocumentService(svc documents.Service) Option {
	return func(c *Container) {
		c.documentSvc = svc
	}
}

// WithCollectionService overrides the collection service assembly.
func WithCollectionService(svc collections.Service) Option {
	return func(c *Container) {
		c.collectionSvc = svc
	}
}

// WithRenderer overrides the Markdown renderer.
func WithRenderer(renderer *markdown.Renderer) Option {
	return func(c *Container) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// NewContainer builds the dependency graph described by cfg.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:           cfg,
		cacheTTL:         cacheTTL,
		identityProvider: identity.ContextProvider{},
		documentRepo:     documents.NewMemoryDocumentRepository(),
		revisionRepo:     documents.NewMemoryRevisionRepository(),
		attachmentRepo:   documents.NewMemoryAttachmentRepository(),
		collectionRepo:   collections.NewMemoryCollectionRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.renderer == nil {
		c.renderer = markdown.NewRenderer(markdown.Options{
			Extensions: cfg.Markdown.Renderer.Extensions,
			HardWraps:  cfg.Markdown.Renderer.HardWraps,
			SafeMode:   cfg.Markdown.Renderer.SafeMode,
		})
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}

	c.configureCacheDefaults()
	c.configureRepositories()

	c.forks = documents.NewForkLedger(c.revisionRepo, nil, nil)

	if c.documentSvc == nil {
		docOpts := []documents.ServiceOption{
			documents.WithAttachments(cfg.Features.Attachments),
			documents.WithRevisionRetention(cfg.Retention.Revisions),
		}
		if cfg.Features.Collections {
			docOpts = append(docOpts, documents.WithCollectionResolver(collections.NewResolver(c.collectionRepo)))
		}
		if c.loggerProvider != nil {
			docOpts = append(docOpts, documents.WithLoggerProvider(c.loggerProvider))
		}
		c.documentSvc = documents.NewService(
			c.documentRepo,
			c.revisionRepo,
			c.attachmentRepo,
			c.renderer,
			docOpts...,
		)
	}

	if c.collectionSvc == nil && cfg.Features.Collections {
		colOpts := []collections.ServiceOption{}
		if c.loggerProvider != nil {
			colOpts = append(colOpts, collections.WithLoggerProvider(c.loggerProvider))
		}
		c.collectionSvc = collections.NewService(
			c.collectionRepo,
			c.documentRepo,
			c.forks,
			c.renderer,
			colOpts...,
		)
	}

	c.importer = markdown.NewImporter(markdown.ImporterConfig{
		Documents: c.documentSvc,
		Renderer:  c.renderer,
		Logger:    c.moduleLogger("pages.markdown"),
	})

	if cfg.Commands.Enabled {
		c.configureCommandHandlers()
	}

	return c, nil
}

func (c *Container) configureCommandHandlers() {
	logger := c.moduleLogger("pages.commands")

	timeout := c.Config.Commands.Timeout
	if timeout <= 0 {
		timeout = commands.DefaultCommandTimeout
	}

	handlers := &CommandHandlers{
		PublishDocument: documentscmd.NewPublishDocumentHandler(c.documentSvc, logger,
			commands.WithTimeout[documentscmd.PublishDocumentCommand](timeout)),
		ArchiveDocument: documentscmd.NewArchiveDocumentHandler(c.documentSvc, logger,
			commands.WithTimeout[documentscmd.ArchiveDocumentCommand](timeout)),
		DeleteDocument: documentscmd.NewDeleteDocumentHandler(c.documentSvc, logger,
			commands.WithTimeout[documentscmd.DeleteDocumentCommand](timeout)),
		DiscardFork: documentscmd.NewDiscardForkHandler(c.documentSvc, logger,
			commands.WithTimeout[documentscmd.DiscardForkCommand](timeout)),
		ImportDocument: documentscmd.NewImportDocumentHandler(c.documentSvc, logger,
			commands.WithTimeout[documentscmd.ImportDocumentCommand](timeout)),
	}

	if c.collectionSvc != nil {
		handlers.CreateCollection = collectionscmd.NewCreateCollectionHandler(c.collectionSvc, logger,
			commands.WithTimeout[collectionscmd.CreateCollectionCommand](timeout))
		handlers.DeleteCollection = collectionscmd.NewDeleteCollectionHandler(c.collectionSvc, logger,
			commands.WithTimeout[collectionscmd.DeleteCollectionCommand](timeout))
	}

	c.commandHandlers = handlers
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.documentRepo = documents.NewBunDocumentRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.revisionRepo = documents.NewBunRevisionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.attachmentRepo = documents.NewBunAttachmentRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.collectionRepo = collections.NewBunCollectionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) moduleLogger(module string) interfaces.Logger {
	if c.loggerProvider == nil {
		return nil
	}
	return c.loggerProvider.GetLogger(module)
}

// IdentityProvider returns the configured identity provider.
func (c *Container) IdentityProvider() interfaces.IdentityProvider {
	return c.identityProvider
}

// LoggerProvider returns the configured logger provider, which may be nil when
// the logging feature is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DocumentRepository returns the active document repository.
func (c *Container) DocumentRepository() documents.DocumentRepository {
	return c.documentRepo
}

// RevisionRepository returns the active revision repository.
func (c *Container) RevisionRepository() documents.RevisionRepository {
	return c.revisionRepo
}

// AttachmentRepository returns the active attachment repository.
func (c *Container) AttachmentRepository() documents.AttachmentRepository {
	return c.attachmentRepo
}

// CollectionRepository returns the active collection repository.
func (c *Container) CollectionRepository() collections.CollectionRepository {
	return c.collectionRepo
}

// Renderer returns the shared Markdown renderer.
func (c *Container) Renderer() *markdown.Renderer {
	return c.renderer
}

// Importer returns the Markdown file importer.
func (c *Container) Importer() *markdown.Importer {
	return c.importer
}

// DocumentService returns the configured document service.
func (c *Container) DocumentService() documents.Service {
	return c.documentSvc
}

// CollectionService returns the configured collection service. It is nil when
// the collections feature is disabled.
func (c *Container) CollectionService() collections.Service {
	return c.collectionSvc
}

// CommandHandlers returns the module's command handlers, or nil when the
// commands feature is disabled.
func (c *Container) CommandHandlers() *CommandHandlers {
	return c.commandHandlers
}

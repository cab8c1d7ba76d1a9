package pages

import (
	"github.com/Breezeware-OS/dynamo-pages-template/internal/collections"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/di"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/documents"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/markdown"
	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

// DocumentService exports the document service contract for consumers of the
// pages package.
type DocumentService = documents.Service

// CollectionService exports the collection service contract.
type CollectionService = collections.Service

// Document exports the document record type.
type Document = documents.Document

// Revision exports the revision record type.
type Revision = documents.Revision

// Attachment exports the attachment record type.
type Attachment = documents.Attachment

// DocumentNode exports the assembled tree node type.
type DocumentNode = documents.DocumentNode

// EditSession exports the edit session DTO.
type EditSession = documents.EditSession

// Collection exports the collection record type.
type Collection = collections.Collection

// CollectionView exports the collection listing DTO.
type CollectionView = collections.CollectionView

// Importer exports the Markdown file importer.
type Importer = markdown.Importer

// Renderer exports the Markdown renderer.
type Renderer = markdown.Renderer

// IdentityProvider exports the identity resolution contract.
type IdentityProvider = interfaces.IdentityProvider

// CommandHandlers exports the command bus handler bundle.
type CommandHandlers = di.CommandHandlers

// Module represents the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a pages module using the provided configuration and optional
// DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Documents returns the configured document service.
func (m *Module) Documents() DocumentService {
	return m.container.DocumentService()
}

// Collections returns the configured collection service. It is nil when the
// collections feature is disabled.
func (m *Module) Collections() CollectionService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CollectionService()
}

// MarkdownImporter returns the file importer bound to the document service.
func (m *Module) MarkdownImporter() *Importer {
	return m.container.Importer()
}

// MarkdownRenderer returns the shared Markdown renderer.
func (m *Module) MarkdownRenderer() *Renderer {
	return m.container.Renderer()
}

// Commands returns the module's command handlers, or nil when the commands
// feature is disabled.
func (m *Module) Commands() *CommandHandlers {
	return m.container.CommandHandlers()
}

// Identity returns the configured identity provider.
func (m *Module) Identity() IdentityProvider {
	return m.container.IdentityProvider()
}

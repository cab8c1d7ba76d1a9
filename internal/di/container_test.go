package di_test

import (
	"context"
	"errors"
	"testing"

	documentscmd "github.com/Breezeware-OS/dynamo-pages-template/internal/commands/documents"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/di"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/documents"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/domain"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/runtimeconfig"
)

func TestNewContainerDefaultsToMemoryRepositories(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	if container.DocumentService() == nil {
		t.Fatal("expected document service")
	}
	if container.CollectionService() == nil {
		t.Fatal("expected collection service")
	}
	if container.Importer() == nil {
		t.Fatal("expected importer")
	}
	if container.Renderer() == nil {
		t.Fatal("expected renderer")
	}
	if container.LoggerProvider() == nil {
		t.Fatal("expected logger provider")
	}

	// Repositories run in memory until a database is wired in.
	doc, err := container.DocumentService().Create(context.Background(), documents.CreateDocumentRequest{
		Title:   "Smoke",
		Content: "body",
		UserID:  "alice",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := container.DocumentRepository().GetByID(context.Background(), doc.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	if _, err := di.NewContainer(cfg); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestNewContainerBuildsCommandHandlers(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Commands.Enabled = true

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	handlers := container.CommandHandlers()
	if handlers == nil {
		t.Fatal("expected command handlers")
	}
	if handlers.PublishDocument == nil || handlers.DiscardFork == nil || handlers.ImportDocument == nil {
		t.Fatal("document handlers missing")
	}
	if handlers.CreateCollection == nil || handlers.DeleteCollection == nil {
		t.Fatal("collection handlers missing")
	}

	svc := container.DocumentService()
	doc, err := svc.Create(context.Background(), documents.CreateDocumentRequest{
		Title:   "Guide",
		Content: "body",
		UserID:  "alice",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := handlers.PublishDocument.Execute(context.Background(), documentscmd.PublishDocumentCommand{
		DocumentID: doc.ID,
		Title:      "Guide",
		Content:    "body",
		UserID:     "alice",
	}); err != nil {
		t.Fatalf("publish command: %v", err)
	}

	published, err := svc.Get(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if published.Status != domain.DocumentPublished {
		t.Fatalf("expected published document, got %s", published.Status)
	}
}

func TestNewContainerDisablesCollectionsFeature(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Collections = false

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	if container.CollectionService() != nil {
		t.Fatal("collection service should be off when the feature is disabled")
	}
	if container.DocumentService() == nil {
		t.Fatal("document service should still be available")
	}
}

func TestNewContainerDisablesAttachmentsFeature(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Attachments = false

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	doc, err := container.DocumentService().Create(context.Background(), documents.CreateDocumentRequest{
		Title:   "Smoke",
		Content: "body",
		UserID:  "alice",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := container.DocumentService().AddAttachment(context.Background(), documents.AddAttachmentRequest{
		DocumentID: doc.ID,
		Name:       "diagram.png",
		Key:        "attachments/diagram.png",
		UserID:     "alice",
	}); !errors.Is(err, documents.ErrAttachmentsDisabled) {
		t.Fatalf("expected ErrAttachmentsDisabled, got %v", err)
	}
}

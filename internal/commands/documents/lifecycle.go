package documentscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/commands"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/documents"
	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

const (
	archiveDocumentMessageType = "pages.document.archive"
	deleteDocumentMessageType  = "pages.document.delete"
	discardForkMessageType     = "pages.document.discard_fork"
)

// ArchiveDocumentCommand archives a document and every descendant under it.
type ArchiveDocumentCommand struct {
	DocumentID uuid.UUID `json:"document_id"`
	UserID     string    `json:"user_id"`
}

// Type implements command.Message.
func (ArchiveDocumentCommand) Type() string { return archiveDocumentMessageType }

func (m ArchiveDocumentCommand) Validate() error {
	errs := validation.Errors{}
	if m.DocumentID == uuid.Nil {
		errs["document_id"] = validation.NewError("pages.document.archive.document_id_required", "document_id is required")
	}
	if err := validation.Validate(m.UserID, validation.Required); err != nil {
		errs["user_id"] = validation.NewError("pages.document.archive.user_id_required", "user_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ArchiveDocumentHandler archives subtrees via the document service.
type ArchiveDocumentHandler struct {
	inner *commands.Handler[ArchiveDocumentCommand]
}

func NewArchiveDocumentHandler(service documents.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ArchiveDocumentCommand]) *ArchiveDocumentHandler {
	exec := func(ctx context.Context, msg ArchiveDocumentCommand) error {
		return service.Archive(ctx, documents.ArchiveDocumentRequest{
			DocumentID: msg.DocumentID,
			UserID:     msg.UserID,
		})
	}

	handlerOpts := []commands.HandlerOption[ArchiveDocumentCommand]{
		commands.WithLogger[ArchiveDocumentCommand](logger),
		commands.WithOperation[ArchiveDocumentCommand]("document.archive"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ArchiveDocumentHandler{
		inner: commands.NewHandler[ArchiveDocumentCommand](exec, handlerOpts...),
	}
}

func (h *ArchiveDocumentHandler) Execute(ctx context.Context, msg ArchiveDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteDocumentCommand soft-deletes a document subtree, or removes a single
// document permanently when Permanent is set.
type DeleteDocumentCommand struct {
	DocumentID uuid.UUID `json:"document_id"`
	UserID     string    `json:"user_id"`
	Permanent  bool      `json:"permanent,omitempty"`
}

// Type implements command.Message.
func (DeleteDocumentCommand) Type() string { return deleteDocumentMessageType }

func (m DeleteDocumentCommand) Validate() error {
	errs := validation.Errors{}
	if m.DocumentID == uuid.Nil {
		errs["document_id"] = validation.NewError("pages.document.delete.document_id_required", "document_id is required")
	}
	if err := validation.Validate(m.UserID, validation.Required); err != nil {
		errs["user_id"] = validation.NewError("pages.document.delete.user_id_required", "user_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteDocumentHandler deletes documents via the document service.
type DeleteDocumentHandler struct {
	inner *commands.Handler[DeleteDocumentCommand]
}

func NewDeleteDocumentHandler(service documents.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteDocumentCommand]) *DeleteDocumentHandler {
	exec := func(ctx context.Context, msg DeleteDocumentCommand) error {
		return service.Delete(ctx, documents.DeleteDocumentRequest{
			DocumentID: msg.DocumentID,
			UserID:     msg.UserID,
			Permanent:  msg.Permanent,
		})
	}

	handlerOpts := []commands.HandlerOption[DeleteDocumentCommand]{
		commands.WithLogger[DeleteDocumentCommand](logger),
		commands.WithOperation[DeleteDocumentCommand]("document.delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteDocumentHandler{
		inner: commands.NewHandler[DeleteDocumentCommand](exec, handlerOpts...),
	}
}

func (h *DeleteDocumentHandler) Execute(ctx context.Context, msg DeleteDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DiscardForkCommand abandons a document's in-flight edit, freeing the lock.
type DiscardForkCommand struct {
	DocumentID uuid.UUID `json:"document_id"`
	UserID     string    `json:"user_id"`
}

// Type implements command.Message.
func (DiscardForkCommand) Type() string { return discardForkMessageType }

func (m DiscardForkCommand) Validate() error {
	errs := validation.Errors{}
	if m.DocumentID == uuid.Nil {
		errs["document_id"] = validation.NewError("pages.document.discard_fork.document_id_required", "document_id is required")
	}
	if err := validation.Validate(m.UserID, validation.Required); err != nil {
		errs["user_id"] = validation.NewError("pages.document.discard_fork.user_id_required", "user_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DiscardForkHandler releases forks via the document service.
type DiscardForkHandler struct {
	inner *commands.Handler[DiscardForkCommand]
}

func NewDiscardForkHandler(service documents.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DiscardForkCommand]) *DiscardForkHandler {
	exec := func(ctx context.Context, msg DiscardForkCommand) error {
		return service.DiscardFork(ctx, documents.DiscardForkRequest{
			DocumentID: msg.DocumentID,
			UserID:     msg.UserID,
		})
	}

	handlerOpts := []commands.HandlerOption[DiscardForkCommand]{
		commands.WithLogger[DiscardForkCommand](logger),
		commands.WithOperation[DiscardForkCommand]("document.discard_fork"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DiscardForkHandler{
		inner: commands.NewHandler[DiscardForkCommand](exec, handlerOpts...),
	}
}

func (h *DiscardForkHandler) Execute(ctx context.Context, msg DiscardForkCommand) error {
	return h.inner.Execute(ctx, msg)
}

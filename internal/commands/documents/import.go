package documentscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/commands"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/documents"
	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

const importDocumentMessageType = "pages.document.import"

// ImportDocumentCommand creates a published document from externally sourced
// Markdown, as produced by the file importer.
type ImportDocumentCommand struct {
	CollectionID *uuid.UUID `json:"collection_id,omitempty"`
	ParentID     *uuid.UUID `json:"parent_id,omitempty"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	UserID       string     `json:"user_id"`
}

// Type implements command.Message.
func (ImportDocumentCommand) Type() string { return importDocumentMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m ImportDocumentCommand) Validate() error {
	errs := validation.Errors{}
	if err := validation.Validate(m.Title, validation.Required, validation.Length(1, 99)); err != nil {
		errs["title"] = validation.NewError("pages.document.import.title_invalid", "title is required and must stay under 100 characters")
	}
	if err := validation.Validate(m.UserID, validation.Required); err != nil {
		errs["user_id"] = validation.NewError("pages.document.import.user_id_required", "user_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportDocumentHandler persists imports via the document service.
type ImportDocumentHandler struct {
	inner *commands.Handler[ImportDocumentCommand]
}

// NewImportDocumentHandler constructs a handler wired to the provided document service.
func NewImportDocumentHandler(service documents.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ImportDocumentCommand]) *ImportDocumentHandler {
	exec := func(ctx context.Context, msg ImportDocumentCommand) error {
		_, err := service.Import(ctx, documents.ImportDocumentRequest{
			CollectionID: msg.CollectionID,
			ParentID:     msg.ParentID,
			Title:        msg.Title,
			Content:      msg.Content,
			UserID:       msg.UserID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[ImportDocumentCommand]{
		commands.WithLogger[ImportDocumentCommand](logger),
		commands.WithOperation[ImportDocumentCommand]("document.import"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDocumentHandler{
		inner: commands.NewHandler[ImportDocumentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportDocumentCommand].Execute.
func (h *ImportDocumentHandler) Execute(ctx context.Context, msg ImportDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

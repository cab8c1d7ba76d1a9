package documentscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/commands"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/documents"
	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

const publishDocumentMessageType = "pages.document.publish"

// PublishDocumentCommand requests publication of a document, releasing the
// caller's fork when one is active.
type PublishDocumentCommand struct {
	DocumentID uuid.UUID `json:"document_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	UserID     string    `json:"user_id"`
}

// Type implements command.Message.
func (PublishDocumentCommand) Type() string { return publishDocumentMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m PublishDocumentCommand) Validate() error {
	errs := validation.Errors{}
	if m.DocumentID == uuid.Nil {
		errs["document_id"] = validation.NewError("pages.document.publish.document_id_required", "document_id is required")
	}
	if err := validation.Validate(m.Title, validation.Required); err != nil {
		errs["title"] = validation.NewError("pages.document.publish.title_required", "title is required")
	}
	if err := validation.Validate(m.UserID, validation.Required); err != nil {
		errs["user_id"] = validation.NewError("pages.document.publish.user_id_required", "user_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PublishDocumentHandler publishes documents via the document service using
// the shared command handler foundation.
type PublishDocumentHandler struct {
	inner *commands.Handler[PublishDocumentCommand]
}

// NewPublishDocumentHandler constructs a handler wired to the provided document service.
func NewPublishDocumentHandler(service documents.Service, logger interfaces.Logger, opts ...commands.HandlerOption[PublishDocumentCommand]) *PublishDocumentHandler {
	exec := func(ctx context.Context, msg PublishDocumentCommand) error {
		_, err := service.Publish(ctx, documents.PublishDocumentRequest{
			DocumentID: msg.DocumentID,
			Title:      msg.Title,
			Content:    msg.Content,
			UserID:     msg.UserID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishDocumentCommand]{
		commands.WithLogger[PublishDocumentCommand](logger),
		commands.WithOperation[PublishDocumentCommand]("document.publish"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishDocumentHandler{
		inner: commands.NewHandler[PublishDocumentCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishDocumentCommand].Execute.
func (h *PublishDocumentHandler) Execute(ctx context.Context, msg PublishDocumentCommand) error {
	return h.inner.Execute(ctx, msg)
}

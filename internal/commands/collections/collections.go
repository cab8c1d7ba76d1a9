package collectionscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/collections"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/commands"
	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

const (
	createCollectionMessageType = "pages.collection.create"
	deleteCollectionMessageType = "pages.collection.delete"
)

// CreateCollectionCommand creates a collection owned by UserID.
type CreateCollectionCommand struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Permission  string `json:"permission,omitempty"`
	UserID      string `json:"user_id"`
}

// Type implements command.Message.
func (CreateCollectionCommand) Type() string { return createCollectionMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m CreateCollectionCommand) Validate() error {
	errs := validation.Errors{}
	if err := validation.Validate(m.Name, validation.Required); err != nil {
		errs["name"] = validation.NewError("pages.collection.create.name_required", "name is required")
	}
	if err := validation.Validate(m.UserID, validation.Required); err != nil {
		errs["user_id"] = validation.NewError("pages.collection.create.user_id_required", "user_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateCollectionHandler creates collections via the collection service.
type CreateCollectionHandler struct {
	inner *commands.Handler[CreateCollectionCommand]
}

// NewCreateCollectionHandler constructs a handler wired to the provided collection service.
func NewCreateCollectionHandler(service collections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateCollectionCommand]) *CreateCollectionHandler {
	exec := func(ctx context.Context, msg CreateCollectionCommand) error {
		_, err := service.Create(ctx, collections.CreateCollectionRequest{
			Name:        msg.Name,
			Description: msg.Description,
			Permission:  msg.Permission,
			UserID:      msg.UserID,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[CreateCollectionCommand]{
		commands.WithLogger[CreateCollectionCommand](logger),
		commands.WithOperation[CreateCollectionCommand]("collection.create"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreateCollectionHandler{
		inner: commands.NewHandler[CreateCollectionCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CreateCollectionCommand].Execute.
func (h *CreateCollectionHandler) Execute(ctx context.Context, msg CreateCollectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteCollectionCommand removes a collection, soft-deleting its members.
type DeleteCollectionCommand struct {
	CollectionID uuid.UUID `json:"collection_id"`
	UserID       string    `json:"user_id"`
}

// Type implements command.Message.
func (DeleteCollectionCommand) Type() string { return deleteCollectionMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m DeleteCollectionCommand) Validate() error {
	errs := validation.Errors{}
	if m.CollectionID == uuid.Nil {
		errs["collection_id"] = validation.NewError("pages.collection.delete.collection_id_required", "collection_id is required")
	}
	if err := validation.Validate(m.UserID, validation.Required); err != nil {
		errs["user_id"] = validation.NewError("pages.collection.delete.user_id_required", "user_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteCollectionHandler deletes collections via the collection service.
type DeleteCollectionHandler struct {
	inner *commands.Handler[DeleteCollectionCommand]
}

// NewDeleteCollectionHandler constructs a handler wired to the provided collection service.
func NewDeleteCollectionHandler(service collections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteCollectionCommand]) *DeleteCollectionHandler {
	exec := func(ctx context.Context, msg DeleteCollectionCommand) error {
		return service.Delete(ctx, collections.DeleteCollectionRequest{
			CollectionID: msg.CollectionID,
			UserID:       msg.UserID,
		})
	}

	handlerOpts := []commands.HandlerOption[DeleteCollectionCommand]{
		commands.WithLogger[DeleteCollectionCommand](logger),
		commands.WithOperation[DeleteCollectionCommand]("collection.delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteCollectionHandler{
		inner: commands.NewHandler[DeleteCollectionCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteCollectionCommand].Execute.
func (h *DeleteCollectionHandler) Execute(ctx context.Context, msg DeleteCollectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

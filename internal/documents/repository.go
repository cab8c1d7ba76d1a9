package documents

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewDocumentRepository(db *bun.DB) repository.Repository[*Document] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Document]{
		NewRecord: func() *Document { return &Document{} },
		GetID: func(d *Document) uuid.UUID {
			return d.ID
		},
		SetID: func(d *Document, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(d *Document) string {
			if d == nil {
				return ""
			}
			return d.ID.String()
		},
	})
}

func NewRevisionRepository(db *bun.DB) repository.Repository[*Revision] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Revision]{
		NewRecord: func() *Revision { return &Revision{} },
		GetID: func(r *Revision) uuid.UUID {
			return r.ID
		},
		SetID: func(r *Revision, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *Revision) string {
			if r == nil {
				return ""
			}
			return r.ID.String()
		},
	})
}

func NewAttachmentRepository(db *bun.DB) repository.Repository[*Attachment] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Attachment]{
		NewRecord: func() *Attachment { return &Attachment{} },
		GetID: func(a *Attachment) uuid.UUID {
			return a.ID
		},
		SetID: func(a *Attachment, id uuid.UUID) {
			a.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(a *Attachment) string {
			if a == nil {
				return ""
			}
			return a.Key
		},
	})
}

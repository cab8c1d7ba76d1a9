package collections

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewCollectionRepository(db *bun.DB) repository.Repository[*Collection] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Collection]{
		NewRecord: func() *Collection { return &Collection{} },
		GetID: func(c *Collection) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Collection, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(c *Collection) string {
			if c == nil {
				return ""
			}
			return c.Slug
		},
	})
}

package collections

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/documents"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/domain"
)

// Collection groups documents under a shared permission level. Permission
// applies to every user except the creator, who always has full access.
type Collection struct {
	bun.BaseModel `bun:"table:collections,alias:c"`

	ID          uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	Name        string            `bun:"name,notnull" json:"name"`
	Description string            `bun:"description" json:"description,omitempty"`
	Slug        string            `bun:"slug,notnull,unique" json:"slug"`
	Permission  domain.Permission `bun:"permission,notnull,default:'read_write'" json:"permission"`
	CreatedBy   string            `bun:"created_by,notnull" json:"created_by"`
	CreatedAt   time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// CollectionView pairs a collection with the published document tree its
// members form.
type CollectionView struct {
	Collection *Collection               `json:"collection"`
	Documents  []*documents.DocumentNode `json:"documents,omitempty"`
}

package documents

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/domain"
)

// Document is the canonical record for a Markdown page. Content always holds
// the last published (or initial draft) Markdown; in-flight edits of a
// published document live on a forked Revision until they are published back.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID           uuid.UUID             `bun:",pk,type:uuid" json:"id"`
	CollectionID *uuid.UUID            `bun:"collection_id,type:uuid,nullzero" json:"collection_id,omitempty"`
	ParentID     *uuid.UUID            `bun:"parent_id,type:uuid,nullzero" json:"parent_id,omitempty"`
	Title        string                `bun:"title,notnull" json:"title"`
	Content      string                `bun:"content" json:"content"`
	Version      int64                 `bun:"version,notnull,default:1" json:"version"`
	Status       domain.DocumentStatus `bun:"status,notnull,default:'drafted'" json:"status"`
	CreatedBy    string                `bun:"created_by,notnull" json:"created_by"`
	PublishedOn  *time.Time            `bun:"published_on,nullzero" json:"published_on,omitempty"`
	ArchivedOn   *time.Time            `bun:"archived_on,nullzero" json:"archived_on,omitempty"`
	DeletedOn    *time.Time            `bun:"deleted_on,nullzero" json:"deleted_on,omitempty"`
	CreatedAt    time.Time             `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time             `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Revision captures one numbered edit of a document. A revision with status
// forked is the document's single in-flight edit and doubles as its edit lock.
type Revision struct {
	bun.BaseModel `bun:"table:document_revisions,alias:r"`

	ID         uuid.UUID             `bun:",pk,type:uuid" json:"id"`
	DocumentID uuid.UUID             `bun:"document_id,notnull,type:uuid" json:"document_id"`
	Title      string                `bun:"title,notnull" json:"title"`
	Content    string                `bun:"content" json:"content"`
	Version    int64                 `bun:"version,notnull" json:"version"`
	Status     domain.RevisionStatus `bun:"status,notnull" json:"status"`
	EditedBy   string                `bun:"edited_by,notnull" json:"edited_by"`
	EditedOn   time.Time             `bun:"edited_on,nullzero" json:"edited_on"`
	CreatedAt  time.Time             `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Attachment records metadata for a file linked to a document. The bytes
// themselves live in external storage under Key.
type Attachment struct {
	bun.BaseModel `bun:"table:document_attachments,alias:a"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	DocumentID uuid.UUID `bun:"document_id,notnull,type:uuid" json:"document_id"`
	Name       string    `bun:"name,notnull" json:"name"`
	Key        string    `bun:"key,notnull" json:"key"`
	Type       string    `bun:"type" json:"type,omitempty"`
	Size       int64     `bun:"size" json:"size"`
	CreatedBy  string    `bun:"created_by,notnull" json:"created_by"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// DocumentNode is one entry in an assembled document tree. Title, Content and
// Version reflect the caller's view: when the caller owns the document's
// active fork they see the fork's working copy instead of the published one.
type DocumentNode struct {
	Document *Document       `json:"document"`
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	HTML     string          `json:"html,omitempty"`
	Version  int64           `json:"version"`
	Forked   bool            `json:"forked"`
	Children []*DocumentNode `json:"children,omitempty"`
}

// EditSession is the result of opening a document for editing. Editable is
// false when another user's fork holds the edit lock; the session then carries
// that fork's content for read-only display.
type EditSession struct {
	Document *Document `json:"document"`
	Revision *Revision `json:"revision,omitempty"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Version  int64     `json:"version"`
	Editable bool      `json:"editable"`
}

// RevisionView pairs a revision with its rendered HTML for history displays.
type RevisionView struct {
	Revision *Revision `json:"revision"`
	HTML     string    `json:"html"`
}

// ExportResult carries a document serialized back to a standalone Markdown file.
type ExportResult struct {
	Filename string `json:"filename"`
	Markdown string `json:"markdown"`
}

package documents

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/domain"
)

type BunDocumentRepository struct {
	db   *bun.DB
	repo repository.Repository[*Document]
}

func NewBunDocumentRepository(db *bun.DB) *BunDocumentRepository {
	return NewBunDocumentRepositoryWithCache(db, nil, nil)
}

// NewBunDocumentRepositoryWithCache constructs a DocumentRepository backed by
// bun with optional caching.
func NewBunDocumentRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunDocumentRepository {
	base := NewDocumentRepository(db)
	return &BunDocumentRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunDocumentRepository) Create(ctx context.Context, record *Document) (*Document, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "document", id.String())
	}
	return result, nil
}

func (r *BunDocumentRepository) Update(ctx context.Context, record *Document) (*Document, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"collection_id",
			"parent_id",
			"title",
			"content",
			"version",
			"status",
			"published_on",
			"archived_on",
			"deleted_on",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "document", record.ID.String())
	}
	return updated, nil
}

func (r *BunDocumentRepository) List(ctx context.Context, filter ListFilter) ([]*Document, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return applyDocumentFilter(q, filter)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at ASC")
		}),
	)
	return records, err
}

func (r *BunDocumentRepository) ListChildren(ctx context.Context, parentID uuid.UUID) ([]*Document, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.parent_id = ?", parentID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at ASC")
		}),
	)
	return records, err
}

func (r *BunDocumentRepository) ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]*Document, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.collection_id = ?", collectionID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at ASC")
		}),
	)
	return records, err
}

func (r *BunDocumentRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("document repository: database not configured")
	}

	result, err := r.db.NewDelete().
		Model((*Document)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("document delete rows affected: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Resource: "document", Key: id.String()}
	}
	return nil
}

func applyDocumentFilter(q *bun.SelectQuery, filter ListFilter) *bun.SelectQuery {
	if q == nil {
		return q
	}
	if filter.DocumentID != nil {
		q = q.Where("?TableAlias.id = ?", *filter.DocumentID)
	}
	if len(filter.CollectionIDs) > 0 {
		q = q.Where("?TableAlias.collection_id IN (?)", bun.In(filter.CollectionIDs))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		q = q.Where("?TableAlias.status IN (?)", bun.In(statuses))
	}
	if filter.CreatedBy != "" {
		q = q.Where("?TableAlias.created_by = ?", filter.CreatedBy)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("(LOWER(?TableAlias.title) LIKE ? OR LOWER(?TableAlias.content) LIKE ?)", pattern, pattern)
	}
	return q
}

type BunRevisionRepository struct {
	db   *bun.DB
	repo repository.Repository[*Revision]
}

func NewBunRevisionRepository(db *bun.DB) *BunRevisionRepository {
	return NewBunRevisionRepositoryWithCache(db, nil, nil)
}

// NewBunRevisionRepositoryWithCache constructs a RevisionRepository backed by
// bun with optional caching.
func NewBunRevisionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRevisionRepository {
	base := NewRevisionRepository(db)
	return &BunRevisionRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunRevisionRepository) Create(ctx context.Context, record *Revision) (*Revision, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateFork inserts the document's forked revision. The schema carries a
// partial unique index on (document_id) WHERE status = 'forked', so a second
// concurrent fork loses the race at the database and surfaces as ConflictError.
func (r *BunRevisionRepository) CreateFork(ctx context.Context, record *Revision) (*Revision, error) {
	if r.db == nil {
		return nil, fmt.Errorf("revision repository: database not configured")
	}

	record.Status = domain.RevisionForked

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*Revision)(nil)).
			Where("?TableAlias.document_id = ?", record.DocumentID).
			Where("?TableAlias.status = ?", string(domain.RevisionForked)).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("check fork slot: %w", err)
		}
		if exists {
			return &ConflictError{Resource: "document", Key: record.DocumentID.String()}
		}

		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			if isUniqueViolation(err) {
				return &ConflictError{Resource: "document", Key: record.DocumentID.String()}
			}
			return fmt.Errorf("insert fork: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunRevisionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Revision, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "revision", id.String())
	}
	return result, nil
}

func (r *BunRevisionRepository) GetFork(ctx context.Context, documentID uuid.UUID) (*Revision, error) {
	return r.getByStatus(ctx, documentID, domain.RevisionForked, "fork")
}

func (r *BunRevisionRepository) GetWorkingDraft(ctx context.Context, documentID uuid.UUID) (*Revision, error) {
	return r.getByStatus(ctx, documentID, domain.RevisionDrafted, "drafted revision")
}

func (r *BunRevisionRepository) getByStatus(ctx context.Context, documentID uuid.UUID, status domain.RevisionStatus, resource string) (*Revision, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.document_id = ?", documentID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.status = ?", string(status))
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.version DESC")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, resource, documentID.String())
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: resource, Key: documentID.String()}
	}
	return records[0], nil
}

func (r *BunRevisionRepository) Update(ctx context.Context, record *Revision) (*Revision, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"title",
			"content",
			"version",
			"status",
			"edited_by",
			"edited_on",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "revision", record.ID.String())
	}
	return updated, nil
}

func (r *BunRevisionRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*Revision, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.document_id = ?", documentID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.version ASC, ?TableAlias.created_at ASC")
		}),
	)
	return records, err
}

func (r *BunRevisionRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("revision repository: database not configured")
	}

	result, err := r.db.NewDelete().
		Model((*Revision)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete revision: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("revision delete rows affected: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Resource: "revision", Key: id.String()}
	}
	return nil
}

func (r *BunRevisionRepository) HardDeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("revision repository: database not configured")
	}

	if _, err := r.db.NewDelete().
		Model((*Revision)(nil)).
		Where("?TableAlias.document_id = ?", documentID).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete document revisions: %w", err)
	}
	return nil
}

type BunAttachmentRepository struct {
	db   *bun.DB
	repo repository.Repository[*Attachment]
}

func NewBunAttachmentRepository(db *bun.DB) *BunAttachmentRepository {
	return NewBunAttachmentRepositoryWithCache(db, nil, nil)
}

func NewBunAttachmentRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunAttachmentRepository {
	base := NewAttachmentRepository(db)
	return &BunAttachmentRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunAttachmentRepository) Create(ctx context.Context, record *Attachment) (*Attachment, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunAttachmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*Attachment, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "attachment", id.String())
	}
	return result, nil
}

func (r *BunAttachmentRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*Attachment, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.document_id = ?", documentID)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at ASC")
		}),
	)
	return records, err
}

func (r *BunAttachmentRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("attachment repository: database not configured")
	}

	result, err := r.db.NewDelete().
		Model((*Attachment)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("attachment delete rows affected: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Resource: "attachment", Key: id.String()}
	}
	return nil
}

func (r *BunAttachmentRepository) HardDeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("attachment repository: database not configured")
	}

	if _, err := r.db.NewDelete().
		Model((*Attachment)(nil)).
		Where("?TableAlias.document_id = ?", documentID).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete document attachments: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

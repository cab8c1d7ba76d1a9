package collections

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/documents"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/domain"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/identity"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/logging"
	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

// Service exposes collection management operations.
type Service interface {
	Create(ctx context.Context, req CreateCollectionRequest) (*Collection, error)
	Get(ctx context.Context, req GetCollectionRequest) (*Collection, error)
	List(ctx context.Context, req ListCollectionsRequest) ([]*CollectionView, error)
	Update(ctx context.Context, req UpdateCollectionRequest) (*Collection, error)
	Delete(ctx context.Context, req DeleteCollectionRequest) error
}

// CreateCollectionRequest creates a new collection owned by UserID.
type CreateCollectionRequest struct {
	Name        string
	Description string
	Permission  string
	UserID      string
}

// GetCollectionRequest fetches a single collection the user can see.
type GetCollectionRequest struct {
	CollectionID uuid.UUID
	UserID       string
}

// ListCollectionsRequest filters the collection listing. When
// IncludeDocuments is set each view carries the collection's published
// document tree.
type ListCollectionsRequest struct {
	UserID           string
	Search           string
	IncludeDocuments bool
}

// UpdateCollectionRequest changes collection metadata. Empty fields keep
// their current values.
type UpdateCollectionRequest struct {
	CollectionID uuid.UUID
	UserID       string
	Name         string
	Description  string
	Permission   string
}

// DeleteCollectionRequest removes a collection and soft-deletes its members.
type DeleteCollectionRequest struct {
	CollectionID uuid.UUID
	UserID       string
}

// CollectionRepository abstracts storage operations for collections.
type CollectionRepository interface {
	Create(ctx context.Context, record *Collection) (*Collection, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Collection, error)
	GetBySlug(ctx context.Context, slug string) (*Collection, error)
	Update(ctx context.Context, record *Collection) (*Collection, error)
	List(ctx context.Context) ([]*Collection, error)
	HardDelete(ctx context.Context, id uuid.UUID) error
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLoggerProvider wires the collections module logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) ServiceOption {
	return func(s *service) {
		s.logger = logging.CollectionsLogger(provider)
	}
}

type service struct {
	collections CollectionRepository
	documents   documents.DocumentRepository
	forks       *documents.ForkLedger
	renderer    interfaces.ContentRenderer
	logger      interfaces.Logger
	now         func() time.Time
}

// NewService constructs a collection service. The document repository and
// fork ledger are needed to assemble member trees and to run the delete
// cascade.
func NewService(repo CollectionRepository, docs documents.DocumentRepository, forks *documents.ForkLedger, renderer interfaces.ContentRenderer, opts ...ServiceOption) Service {
	s := &service{
		collections: repo,
		documents:   docs,
		forks:       forks,
		renderer:    renderer,
		logger:      logging.NoOp(),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *service) Create(ctx context.Context, req CreateCollectionRequest) (*Collection, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	permission := domain.PermissionReadWrite
	if trimmed := strings.TrimSpace(req.Permission); trimmed != "" {
		parsed, ok := domain.ParsePermission(trimmed)
		if !ok {
			return nil, &ValidationError{Field: "permission", Err: ErrPermissionInvalid}
		}
		permission = parsed
	}

	normalized, err := slug.Normalize(name)
	if err != nil {
		return nil, &ValidationError{Field: "name", Err: err}
	}

	if existing, err := s.collections.GetBySlug(ctx, normalized); err == nil && existing != nil {
		return nil, ErrSlugExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now()
	record := &Collection{
		ID:          identity.CollectionUUID(normalized),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Slug:        normalized,
		Permission:  permission,
		CreatedBy:   req.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.collections.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("collection.created", "collection_id", created.ID, "user_id", req.UserID)
	return created, nil
}

func (s *service) Get(ctx context.Context, req GetCollectionRequest) (*Collection, error) {
	if req.CollectionID == uuid.Nil {
		return nil, ErrCollectionIDRequired
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}

	record, err := s.collections.GetByID(ctx, req.CollectionID)
	if err != nil {
		return nil, err
	}
	if !visibleTo(record, req.UserID) {
		return nil, &ForbiddenError{Resource: "collection", Key: record.ID.String(), UserID: req.UserID}
	}
	return record, nil
}

func (s *service) List(ctx context.Context, req ListCollectionsRequest) ([]*CollectionView, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}

	records, err := s.collections.List(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(req.Search))

	views := make([]*CollectionView, 0, len(records))
	for _, record := range records {
		if !visibleTo(record, req.UserID) {
			continue
		}
		nameMatch := search == "" ||
			strings.Contains(strings.ToLower(record.Name), search) ||
			strings.Contains(strings.ToLower(record.Description), search)

		// When the collection itself does not match, it can still surface
		// through member documents whose title or content match. A matching
		// collection keeps its full tree.
		memberSearch := ""
		if !nameMatch {
			memberSearch = search
		}

		var nodes []*documents.DocumentNode
		if req.IncludeDocuments || !nameMatch {
			var err error
			nodes, err = s.memberTree(ctx, record.ID, req.UserID, memberSearch)
			if err != nil {
				return nil, err
			}
		}
		if !nameMatch && len(nodes) == 0 {
			continue
		}

		view := &CollectionView{Collection: record}
		if req.IncludeDocuments {
			view.Documents = nodes
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *service) Update(ctx context.Context, req UpdateCollectionRequest) (*Collection, error) {
	if req.CollectionID == uuid.Nil {
		return nil, ErrCollectionIDRequired
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}

	record, err := s.collections.GetByID(ctx, req.CollectionID)
	if err != nil {
		return nil, err
	}
	if record.CreatedBy != req.UserID {
		return nil, &ForbiddenError{Resource: "collection", Key: record.ID.String(), UserID: req.UserID}
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		record.Name = name
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		record.Description = description
	}
	if trimmed := strings.TrimSpace(req.Permission); trimmed != "" {
		parsed, ok := domain.ParsePermission(trimmed)
		if !ok {
			return nil, &ValidationError{Field: "permission", Err: ErrPermissionInvalid}
		}
		record.Permission = parsed
	}
	record.UpdatedAt = s.now()

	updated, err := s.collections.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("collection.updated", "collection_id", updated.ID, "user_id", req.UserID)
	return updated, nil
}

// Delete removes a collection after soft-deleting every member document.
// Active forks are released to deleted and attributed to the deleting user so
// abandoned edits do not keep the lock alive.
func (s *service) Delete(ctx context.Context, req DeleteCollectionRequest) error {
	if req.CollectionID == uuid.Nil {
		return ErrCollectionIDRequired
	}
	if strings.TrimSpace(req.UserID) == "" {
		return ErrUserRequired
	}

	record, err := s.collections.GetByID(ctx, req.CollectionID)
	if err != nil {
		return err
	}
	if record.CreatedBy != req.UserID {
		return &ForbiddenError{Resource: "collection", Key: record.ID.String(), UserID: req.UserID}
	}

	members, err := s.documents.ListByCollection(ctx, record.ID)
	if err != nil {
		return err
	}

	for _, doc := range members {
		fork, err := s.forks.ActiveFork(ctx, doc.ID)
		if err != nil {
			return err
		}
		if fork != nil {
			if _, err := s.forks.Release(ctx, fork, domain.RevisionDeleted, req.UserID); err != nil {
				return err
			}
		}

		now := s.now()
		doc.Status = domain.DocumentDeleted
		doc.DeletedOn = &now
		doc.CollectionID = nil
		doc.UpdatedAt = now
		if _, err := s.documents.Update(ctx, doc); err != nil {
			return err
		}
	}

	if err := s.collections.HardDelete(ctx, record.ID); err != nil {
		return err
	}

	s.logger.Info("collection.deleted", "collection_id", record.ID, "user_id", req.UserID, "members", len(members))
	return nil
}

func (s *service) memberTree(ctx context.Context, collectionID uuid.UUID, userID, search string) ([]*documents.DocumentNode, error) {
	members, err := s.documents.ListByCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	published := make([]*documents.Document, 0, len(members))
	for _, doc := range members {
		if doc.Status != domain.DocumentPublished {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(doc.Title), search) &&
			!strings.Contains(strings.ToLower(doc.Content), search) {
			continue
		}
		published = append(published, doc)
	}

	assembler := documents.NewTreeAssembler(s.forks, s.renderer)
	return assembler.Build(ctx, published, userID)
}

// visibleTo reports whether userID can see the collection. Creators always
// can; everyone else is shut out of no-access collections.
func visibleTo(record *Collection, userID string) bool {
	return record.CreatedBy == userID || record.Permission != domain.PermissionNoAccess
}

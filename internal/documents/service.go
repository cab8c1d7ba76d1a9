package documents

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/domain"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/logging"
	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

// Service exposes document management use-cases.
type Service interface {
	Create(ctx context.Context, req CreateDocumentRequest) (*Document, error)
	Get(ctx context.Context, id uuid.UUID) (*Document, error)
	List(ctx context.Context, req ListDocumentsRequest) ([]*DocumentNode, error)
	Edit(ctx context.Context, req EditDocumentRequest) (*EditSession, error)
	Update(ctx context.Context, req UpdateDocumentRequest) (*EditSession, error)
	Publish(ctx context.Context, req PublishDocumentRequest) (*Document, error)
	Archive(ctx context.Context, req ArchiveDocumentRequest) error
	Delete(ctx context.Context, req DeleteDocumentRequest) error
	DiscardFork(ctx context.Context, req DiscardForkRequest) error
	Revisions(ctx context.Context, req ListRevisionsRequest) ([]*RevisionView, error)
	Export(ctx context.Context, req ExportDocumentRequest) (*ExportResult, error)
	Import(ctx context.Context, req ImportDocumentRequest) (*Document, error)
	AddAttachment(ctx context.Context, req AddAttachmentRequest) (*Attachment, error)
	Attachments(ctx context.Context, documentID uuid.UUID) ([]*Attachment, error)
	RemoveAttachment(ctx context.Context, req RemoveAttachmentRequest) error
}

// CreateDocumentRequest captures the information required to create a draft.
type CreateDocumentRequest struct {
	CollectionID *uuid.UUID
	ParentID     *uuid.UUID
	Title        string
	Content      string
	UserID       string
}

// ListDocumentsRequest filters the assembled document forest.
type ListDocumentsRequest struct {
	CollectionIDs []uuid.UUID
	DocumentID    *uuid.UUID
	Status        string
	Search        string
	UserID        string
}

// EditDocumentRequest opens a document for editing on behalf of a user.
type EditDocumentRequest struct {
	DocumentID uuid.UUID
	UserID     string
}

// UpdateDocumentRequest carries the working copy changes to persist. ParentID
// moves the document under a new parent when set; it only applies to the
// creator-updates-draft path.
type UpdateDocumentRequest struct {
	DocumentID uuid.UUID
	Title      string
	Content    string
	ParentID   *uuid.UUID
	UserID     string
}

// PublishDocumentRequest promotes the working copy to the published document.
type PublishDocumentRequest struct {
	DocumentID uuid.UUID
	Title      string
	Content    string
	UserID     string
}

// ArchiveDocumentRequest archives a document and its descendants.
type ArchiveDocumentRequest struct {
	DocumentID uuid.UUID
	UserID     string
}

// DeleteDocumentRequest soft-deletes a document subtree, or permanently
// removes a single document and its revision history when Permanent is set.
type DeleteDocumentRequest struct {
	DocumentID uuid.UUID
	Permanent  bool
	UserID     string
}

// DiscardForkRequest abandons an in-flight edit, releasing the edit lock
// without touching the published document.
type DiscardForkRequest struct {
	DocumentID uuid.UUID
	UserID     string
}

// ListRevisionsRequest filters a document's revision history.
type ListRevisionsRequest struct {
	DocumentID uuid.UUID
	RevisionID *uuid.UUID
	EditedOn   *time.Time
}

// ExportDocumentRequest serializes a document back to Markdown.
type ExportDocumentRequest struct {
	DocumentID uuid.UUID
	UserID     string
}

// ImportDocumentRequest creates a document directly in the published state,
// used for Markdown file uploads.
type ImportDocumentRequest struct {
	CollectionID *uuid.UUID
	ParentID     *uuid.UUID
	Title        string
	Content      string
	UserID       string
}

// AddAttachmentRequest records file metadata against a document.
type AddAttachmentRequest struct {
	DocumentID uuid.UUID
	Name       string
	Key        string
	Type       string
	Size       int64
	UserID     string
}

// RemoveAttachmentRequest deletes an attachment record.
type RemoveAttachmentRequest struct {
	AttachmentID uuid.UUID
	UserID       string
}

// ListFilter narrows repository document listings.
type ListFilter struct {
	CollectionIDs []uuid.UUID
	DocumentID    *uuid.UUID
	Statuses      []domain.DocumentStatus
	CreatedBy     string
	Search        string
}

// DocumentRepository abstracts storage operations for documents.
type DocumentRepository interface {
	Create(ctx context.Context, record *Document) (*Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	Update(ctx context.Context, record *Document) (*Document, error)
	List(ctx context.Context, filter ListFilter) ([]*Document, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]*Document, error)
	ListByCollection(ctx context.Context, collectionID uuid.UUID) ([]*Document, error)
	HardDelete(ctx context.Context, id uuid.UUID) error
}

// RevisionRepository abstracts storage operations for revisions. CreateFork
// must guarantee at most one forked revision per document and return a
// ConflictError when the slot is taken.
type RevisionRepository interface {
	Create(ctx context.Context, record *Revision) (*Revision, error)
	CreateFork(ctx context.Context, record *Revision) (*Revision, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Revision, error)
	GetFork(ctx context.Context, documentID uuid.UUID) (*Revision, error)
	GetWorkingDraft(ctx context.Context, documentID uuid.UUID) (*Revision, error)
	Update(ctx context.Context, record *Revision) (*Revision, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*Revision, error)
	HardDelete(ctx context.Context, id uuid.UUID) error
	HardDeleteByDocument(ctx context.Context, documentID uuid.UUID) error
}

// AttachmentRepository abstracts storage operations for attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, record *Attachment) (*Attachment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Attachment, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]*Attachment, error)
	HardDelete(ctx context.Context, id uuid.UUID) error
	HardDeleteByDocument(ctx context.Context, documentID uuid.UUID) error
}

// CollectionInfo is the slice of collection state document listings need for
// visibility decisions.
type CollectionInfo struct {
	ID         uuid.UUID
	Permission domain.Permission
	CreatedBy  string
}

// CollectionResolver lets the documents service consult collection visibility
// without depending on the collections package.
type CollectionResolver interface {
	Resolve(ctx context.Context, id uuid.UUID) (*CollectionInfo, error)
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

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

// WithIDGenerator overrides how new record ids are minted.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithCollectionResolver enables collection visibility filtering on listings.
func WithCollectionResolver(resolver CollectionResolver) ServiceOption {
	return func(s *service) {
		s.collections = resolver
	}
}

// WithLoggerProvider wires the documents module logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) ServiceOption {
	return func(s *service) {
		s.logger = logging.DocumentsLogger(provider)
	}
}

// WithRevisionRetention caps how many revisions a document keeps. Publishing
// prunes the oldest revisions over the cap; zero or negative keeps everything.
func WithRevisionRetention(limit int) ServiceOption {
	return func(s *service) {
		s.retention = limit
	}
}

// WithAttachments toggles the attachment operations. When disabled they fail
// with ErrAttachmentsDisabled instead of touching storage.
func WithAttachments(enabled bool) ServiceOption {
	return func(s *service) {
		s.attachmentsDisabled = !enabled
	}
}

// service implements Service.
type service struct {
	documents   DocumentRepository
	revisions   RevisionRepository
	attachments AttachmentRepository
	renderer    interfaces.ContentRenderer
	collections CollectionResolver
	forks       *ForkLedger
	logger      interfaces.Logger
	now         func() time.Time
	id          IDGenerator

	retention           int
	attachmentsDisabled bool
}

// NewService constructs a document service with the required dependencies.
func NewService(docs DocumentRepository, revisions RevisionRepository, attachments AttachmentRepository, renderer interfaces.ContentRenderer, opts ...ServiceOption) Service {
	s := &service{
		documents:   docs,
		revisions:   revisions,
		attachments: attachments,
		renderer:    renderer,
		logger:      logging.NoOp(),
		now:         time.Now,
		id:          uuid.New,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.forks = NewForkLedger(revisions, s.now, s.id)

	return s
}

func (s *service) Create(ctx context.Context, req CreateDocumentRequest) (*Document, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if err := s.checkCollection(ctx, req.CollectionID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.documents.GetByID(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	doc := &Document{
		ID:           s.id(),
		CollectionID: req.CollectionID,
		ParentID:     req.ParentID,
		Title:        title,
		Content:      req.Content,
		Version:      1,
		Status:       domain.DocumentDrafted,
		CreatedBy:    req.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.documents.Create(ctx, doc)
	if err != nil {
		return nil, err
	}

	if _, err := s.revisions.Create(ctx, s.revisionFrom(created, domain.RevisionDrafted, req.UserID)); err != nil {
		return nil, err
	}

	s.logger.Info("document.created", "document_id", created.ID, "user_id", req.UserID)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	if id == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}
	return s.documents.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, req ListDocumentsRequest) ([]*DocumentNode, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}

	filter := ListFilter{
		CollectionIDs: req.CollectionIDs,
		DocumentID:    req.DocumentID,
		Search:        strings.TrimSpace(req.Search),
	}

	if trimmed := strings.TrimSpace(req.Status); trimmed != "" {
		status, ok := domain.ParseDocumentStatus(trimmed)
		if !ok {
			return nil, &ValidationError{Field: "status", Err: ErrStatusInvalid}
		}
		filter.Statuses = []domain.DocumentStatus{status}
		// Unpublished drafts stay private to their author.
		if status == domain.DocumentDrafted {
			filter.CreatedBy = req.UserID
		}
	}

	docs, err := s.documents.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	visible, err := s.filterByCollectionAccess(ctx, docs, req.UserID)
	if err != nil {
		return nil, err
	}

	assembler := NewTreeAssembler(s.forks, s.renderer)
	return assembler.Build(ctx, visible, req.UserID)
}

func (s *service) Edit(ctx context.Context, req EditDocumentRequest) (*EditSession, error) {
	if req.DocumentID == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}

	doc, err := s.documents.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	fork, err := s.forks.ActiveFork(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	if fork != nil {
		// An edit is already in flight: the owner resumes it, everyone else
		// gets a read-only view of the working copy.
		return &EditSession{
			Document: doc,
			Revision: fork,
			Title:    fork.Title,
			Content:  fork.Content,
			Version:  fork.Version,
			Editable: fork.EditedBy == req.UserID,
		}, nil
	}

	if doc.Status != domain.DocumentPublished {
		return nil, &NotFoundError{Resource: "published document", Key: doc.ID.String()}
	}

	doc.Version++
	doc.UpdatedAt = s.now()
	doc, err = s.documents.Update(ctx, doc)
	if err != nil {
		return nil, err
	}

	fork, err = s.forks.Acquire(ctx, doc, req.UserID)
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return s.loseForkRace(ctx, doc, req.UserID)
		}
		return nil, err
	}

	s.logger.Info("document.fork_acquired", "document_id", doc.ID, "user_id", req.UserID)
	return &EditSession{
		Document: doc,
		Revision: fork,
		Title:    fork.Title,
		Content:  fork.Content,
		Version:  fork.Version,
		Editable: true,
	}, nil
}

// loseForkRace handles a concurrent editor winning the fork slot between the
// version bump and the fork insert. The bump is rolled back so the document
// version tracks the winner's fork, and the caller gets the same read-only
// session any later editor would see.
func (s *service) loseForkRace(ctx context.Context, doc *Document, userID string) (*EditSession, error) {
	doc.Version--
	doc.UpdatedAt = s.now()
	doc, err := s.documents.Update(ctx, doc)
	if err != nil {
		return nil, err
	}

	winner, err := s.forks.ActiveFork(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if winner == nil {
		// The winning fork vanished before we could read it.
		return nil, &ConflictError{Resource: "document", Key: doc.ID.String()}
	}

	s.logger.Info("document.fork_race_lost", "document_id", doc.ID, "user_id", userID, "holder", winner.EditedBy)
	return &EditSession{
		Document: doc,
		Revision: winner,
		Title:    winner.Title,
		Content:  winner.Content,
		Version:  winner.Version,
		Editable: winner.EditedBy == userID,
	}, nil
}

func (s *service) Update(ctx context.Context, req UpdateDocumentRequest) (*EditSession, error) {
	if req.DocumentID == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}

	doc, err := s.documents.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	fork, err := s.forks.ActiveFork(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	if fork != nil {
		if fork.EditedBy != req.UserID {
			return nil, &ForbiddenError{Resource: "document", Key: doc.ID.String(), UserID: req.UserID}
		}
		fork.Title = req.Title
		fork.Content = req.Content
		fork.EditedOn = s.now()
		fork, err = s.revisions.Update(ctx, fork)
		if err != nil {
			return nil, err
		}
		return &EditSession{
			Document: doc,
			Revision: fork,
			Title:    fork.Title,
			Content:  fork.Content,
			Version:  fork.Version,
			Editable: true,
		}, nil
	}

	if doc.CreatedBy != req.UserID {
		return nil, &ForbiddenError{Resource: "document", Key: doc.ID.String(), UserID: req.UserID}
	}

	if req.ParentID != nil {
		if err := s.checkParentMove(ctx, doc, *req.ParentID); err != nil {
			return nil, err
		}
		doc.ParentID = req.ParentID
	}

	doc.Title = req.Title
	doc.Content = req.Content
	doc.UpdatedAt = s.now()
	doc, err = s.documents.Update(ctx, doc)
	if err != nil {
		return nil, err
	}

	// The working draft mirrors the document until first publish.
	draft, err := s.revisions.GetWorkingDraft(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	draft.Title = doc.Title
	draft.Content = doc.Content
	draft.EditedOn = s.now()
	if _, err := s.revisions.Update(ctx, draft); err != nil {
		return nil, err
	}

	return &EditSession{
		Document: doc,
		Title:    doc.Title,
		Content:  doc.Content,
		Version:  doc.Version,
		Editable: true,
	}, nil
}

func (s *service) Publish(ctx context.Context, req PublishDocumentRequest) (*Document, error) {
	if req.DocumentID == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	doc, err := s.documents.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	if !domain.DocumentCanTransition(doc.Status, domain.DocumentPublished) {
		return nil, &ValidationError{Field: "status", Err: ErrStatusInvalid}
	}

	fork, err := s.forks.ActiveFork(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	if fork != nil {
		if fork.EditedBy != req.UserID {
			return nil, &ForbiddenError{Resource: "document", Key: doc.ID.String(), UserID: req.UserID}
		}
		fork.Title = req.Title
		fork.Content = req.Content
		released, err := s.forks.Release(ctx, fork, domain.RevisionPublished, req.UserID)
		if err != nil {
			return nil, err
		}

		doc.Title = released.Title
		doc.Content = released.Content
		doc.Status = domain.DocumentPublished
		doc.PublishedOn = &now
		doc.UpdatedAt = now
		doc, err = s.documents.Update(ctx, doc)
		if err != nil {
			return nil, err
		}
		if err := s.pruneRevisions(ctx, doc.ID); err != nil {
			return nil, err
		}
		s.logger.Info("document.published", "document_id", doc.ID, "user_id", req.UserID, "version", doc.Version)
		return doc, nil
	}

	doc.Title = req.Title
	doc.Content = req.Content
	doc.Status = domain.DocumentPublished
	doc.PublishedOn = &now
	doc.UpdatedAt = now
	doc, err = s.documents.Update(ctx, doc)
	if err != nil {
		return nil, err
	}

	draft, err := s.revisions.GetWorkingDraft(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	draft.Title = doc.Title
	draft.Content = doc.Content
	draft.Status = domain.RevisionPublished
	draft.EditedOn = now
	if _, err := s.revisions.Update(ctx, draft); err != nil {
		return nil, err
	}

	if err := s.pruneRevisions(ctx, doc.ID); err != nil {
		return nil, err
	}

	s.logger.Info("document.published", "document_id", doc.ID, "user_id", req.UserID, "version", doc.Version)
	return doc, nil
}

// pruneRevisions trims a document's history down to the configured retention
// cap, dropping the oldest revisions first. Forked revisions are never pruned
// since they carry an in-flight edit.
func (s *service) pruneRevisions(ctx context.Context, documentID uuid.UUID) error {
	if s.retention <= 0 {
		return nil
	}
	revs, err := s.revisions.ListByDocument(ctx, documentID)
	if err != nil {
		return err
	}
	excess := len(revs) - s.retention
	for _, rev := range revs {
		if excess <= 0 {
			break
		}
		if rev.Status == domain.RevisionForked {
			continue
		}
		if err := s.revisions.HardDelete(ctx, rev.ID); err != nil {
			return err
		}
		excess--
	}
	return nil
}

func (s *service) Archive(ctx context.Context, req ArchiveDocumentRequest) error {
	if req.DocumentID == uuid.Nil {
		return ErrDocumentIDRequired
	}

	doc, err := s.documents.GetByID(ctx, req.DocumentID)
	if err != nil {
		return err
	}

	if err := s.archiveSubtree(ctx, doc, req.UserID); err != nil {
		return err
	}

	s.logger.Info("document.archived", "document_id", doc.ID, "user_id", req.UserID)
	return nil
}

func (s *service) archiveSubtree(ctx context.Context, doc *Document, userID string) error {
	children, err := s.documents.ListChildren(ctx, doc.ID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.archiveSubtree(ctx, child, userID); err != nil {
			return err
		}
	}

	fork, err := s.forks.ActiveFork(ctx, doc.ID)
	if err != nil {
		return err
	}
	if fork != nil {
		if _, err := s.forks.Release(ctx, fork, domain.RevisionArchived, userID); err != nil {
			return err
		}
	}

	now := s.now()
	doc.Status = domain.DocumentArchived
	doc.ArchivedOn = &now
	doc.UpdatedAt = now
	_, err = s.documents.Update(ctx, doc)
	return err
}

func (s *service) Delete(ctx context.Context, req DeleteDocumentRequest) error {
	if req.DocumentID == uuid.Nil {
		return ErrDocumentIDRequired
	}

	doc, err := s.documents.GetByID(ctx, req.DocumentID)
	if err != nil {
		return err
	}

	if req.Permanent {
		if err := s.revisions.HardDeleteByDocument(ctx, doc.ID); err != nil {
			return err
		}
		if err := s.attachments.HardDeleteByDocument(ctx, doc.ID); err != nil {
			return err
		}
		if err := s.documents.HardDelete(ctx, doc.ID); err != nil {
			return err
		}
		s.logger.Info("document.deleted_permanently", "document_id", doc.ID, "user_id", req.UserID)
		return nil
	}

	if err := s.deleteSubtree(ctx, doc, req.UserID); err != nil {
		return err
	}

	s.logger.Info("document.deleted", "document_id", doc.ID, "user_id", req.UserID)
	return nil
}

func (s *service) deleteSubtree(ctx context.Context, doc *Document, userID string) error {
	children, err := s.documents.ListChildren(ctx, doc.ID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.deleteSubtree(ctx, child, userID); err != nil {
			return err
		}
	}

	fork, err := s.forks.ActiveFork(ctx, doc.ID)
	if err != nil {
		return err
	}
	if fork != nil {
		if _, err := s.forks.Release(ctx, fork, domain.RevisionDeleted, userID); err != nil {
			return err
		}
	}

	now := s.now()
	doc.Status = domain.DocumentDeleted
	doc.DeletedOn = &now
	doc.UpdatedAt = now
	_, err = s.documents.Update(ctx, doc)
	return err
}

func (s *service) DiscardFork(ctx context.Context, req DiscardForkRequest) error {
	if req.DocumentID == uuid.Nil {
		return ErrDocumentIDRequired
	}
	if strings.TrimSpace(req.UserID) == "" {
		return ErrUserRequired
	}

	doc, err := s.documents.GetByID(ctx, req.DocumentID)
	if err != nil {
		return err
	}

	fork, err := s.forks.ActiveFork(ctx, doc.ID)
	if err != nil {
		return err
	}
	if fork == nil {
		return &NotFoundError{Resource: "fork", Key: doc.ID.String()}
	}

	// The fork owner abandons their own edit; the document creator may also
	// clear a stale lock left by someone else.
	if fork.EditedBy != req.UserID && doc.CreatedBy != req.UserID {
		return &ForbiddenError{Resource: "fork", Key: doc.ID.String(), UserID: req.UserID}
	}

	if _, err := s.forks.Release(ctx, fork, domain.RevisionDeleted, req.UserID); err != nil {
		return err
	}

	s.logger.Info("document.fork_discarded", "document_id", doc.ID, "user_id", req.UserID)
	return nil
}

func (s *service) Revisions(ctx context.Context, req ListRevisionsRequest) ([]*RevisionView, error) {
	if req.DocumentID == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}

	doc, err := s.documents.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	revisions, err := s.revisions.ListByDocument(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	var dayStart, dayEnd time.Time
	if req.EditedOn != nil {
		dayStart = req.EditedOn.UTC().Truncate(24 * time.Hour)
		dayEnd = dayStart.Add(24 * time.Hour)
	}

	views := make([]*RevisionView, 0, len(revisions))
	for _, rev := range revisions {
		if req.RevisionID != nil && rev.ID != *req.RevisionID {
			continue
		}
		if req.EditedOn != nil {
			edited := rev.EditedOn.UTC()
			if edited.Before(dayStart) || !edited.Before(dayEnd) {
				continue
			}
		}

		html, err := s.renderer.RenderHTML(rev.Content)
		if err != nil {
			return nil, err
		}
		views = append(views, &RevisionView{Revision: rev, HTML: html})
	}

	return views, nil
}

func (s *service) Export(ctx context.Context, req ExportDocumentRequest) (*ExportResult, error) {
	if req.DocumentID == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}

	doc, err := s.documents.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	title := doc.Title
	content := doc.Content

	fork, err := s.forks.ActiveFork(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if fork != nil && fork.EditedBy == req.UserID {
		title = fork.Title
		content = fork.Content
	}

	name := strings.TrimSpace(title)
	if name == "" {
		name = "Untitled"
	}

	markdown := content
	if strings.TrimSpace(title) != "" {
		markdown = "# " + title + "\n\n" + content
	}

	return &ExportResult{
		Filename: name + ".md",
		Markdown: markdown,
	}, nil
}

func (s *service) Import(ctx context.Context, req ImportDocumentRequest) (*Document, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(title) >= 100 {
		return nil, ErrTitleTooLong
	}

	if err := s.checkCollection(ctx, req.CollectionID); err != nil {
		return nil, err
	}

	// A missing parent downgrades the upload to a root document rather than
	// failing the whole import.
	parentID := req.ParentID
	if parentID != nil {
		if _, err := s.documents.GetByID(ctx, *parentID); err != nil {
			var notFound *NotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
			parentID = nil
		}
	}

	now := s.now()
	doc := &Document{
		ID:           s.id(),
		CollectionID: req.CollectionID,
		ParentID:     parentID,
		Title:        title,
		Content:      req.Content,
		Version:      1,
		Status:       domain.DocumentPublished,
		CreatedBy:    req.UserID,
		PublishedOn:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.documents.Create(ctx, doc)
	if err != nil {
		return nil, err
	}

	if _, err := s.revisions.Create(ctx, s.revisionFrom(created, domain.RevisionPublished, req.UserID)); err != nil {
		return nil, err
	}

	s.logger.Info("document.imported", "document_id", created.ID, "user_id", req.UserID)
	return created, nil
}

func (s *service) AddAttachment(ctx context.Context, req AddAttachmentRequest) (*Attachment, error) {
	if s.attachmentsDisabled {
		return nil, ErrAttachmentsDisabled
	}
	if req.DocumentID == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrUserRequired
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Key) == "" {
		return nil, &ValidationError{Field: "attachment", Err: errors.New("name and key are required")}
	}

	doc, err := s.documents.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	record := &Attachment{
		ID:         s.id(),
		DocumentID: doc.ID,
		Name:       req.Name,
		Key:        req.Key,
		Type:       req.Type,
		Size:       req.Size,
		CreatedBy:  req.UserID,
		CreatedAt:  s.now(),
	}
	return s.attachments.Create(ctx, record)
}

func (s *service) Attachments(ctx context.Context, documentID uuid.UUID) ([]*Attachment, error) {
	if s.attachmentsDisabled {
		return nil, ErrAttachmentsDisabled
	}
	if documentID == uuid.Nil {
		return nil, ErrDocumentIDRequired
	}
	return s.attachments.ListByDocument(ctx, documentID)
}

func (s *service) RemoveAttachment(ctx context.Context, req RemoveAttachmentRequest) error {
	if s.attachmentsDisabled {
		return ErrAttachmentsDisabled
	}
	if req.AttachmentID == uuid.Nil {
		return &ValidationError{Field: "attachment_id", Err: errors.New("id required")}
	}
	if _, err := s.attachments.GetByID(ctx, req.AttachmentID); err != nil {
		return err
	}
	return s.attachments.HardDelete(ctx, req.AttachmentID)
}

func (s *service) revisionFrom(doc *Document, status domain.RevisionStatus, userID string) *Revision {
	now := s.now()
	return &Revision{
		ID:         s.id(),
		DocumentID: doc.ID,
		Title:      doc.Title,
		Content:    doc.Content,
		Version:    doc.Version,
		Status:     status,
		EditedBy:   userID,
		EditedOn:   now,
		CreatedAt:  now,
	}
}

func (s *service) checkCollection(ctx context.Context, collectionID *uuid.UUID) error {
	if collectionID == nil || s.collections == nil {
		return nil
	}
	_, err := s.collections.Resolve(ctx, *collectionID)
	return err
}

// checkParentMove rejects parent changes that would make the document its own
// ancestor.
func (s *service) checkParentMove(ctx context.Context, doc *Document, newParentID uuid.UUID) error {
	if newParentID == doc.ID {
		return ErrParentCycle
	}

	current := newParentID
	for current != uuid.Nil {
		parent, err := s.documents.GetByID(ctx, current)
		if err != nil {
			return err
		}
		if parent.ID == doc.ID {
			return ErrParentCycle
		}
		if parent.ParentID == nil {
			break
		}
		current = *parent.ParentID
	}
	return nil
}

func (s *service) filterByCollectionAccess(ctx context.Context, docs []*Document, userID string) ([]*Document, error) {
	if s.collections == nil {
		return docs, nil
	}

	resolved := map[uuid.UUID]*CollectionInfo{}
	visible := make([]*Document, 0, len(docs))

	for _, doc := range docs {
		if doc.CollectionID == nil {
			visible = append(visible, doc)
			continue
		}

		info, ok := resolved[*doc.CollectionID]
		if !ok {
			var err error
			info, err = s.collections.Resolve(ctx, *doc.CollectionID)
			if err != nil {
				var notFound *NotFoundError
				if errors.As(err, &notFound) {
					resolved[*doc.CollectionID] = nil
					visible = append(visible, doc)
					continue
				}
				return nil, err
			}
			resolved[*doc.CollectionID] = info
		}

		if info != nil && info.CreatedBy != userID && info.Permission == domain.PermissionNoAccess {
			continue
		}
		visible = append(visible, doc)
	}

	return visible, nil
}

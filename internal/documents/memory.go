package documents

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/domain"
)

// MemoryDocumentRepository is an in-memory implementation for scaffolding and
// tests. Listings preserve insertion order.
type MemoryDocumentRepository struct {
	mu        sync.RWMutex
	documents map[uuid.UUID]*Document
	order     []uuid.UUID
}

// NewMemoryDocumentRepository creates an empty in-memory document repository.
func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{
		documents: make(map[uuid.UUID]*Document),
	}
}

func (m *MemoryDocumentRepository) Create(_ context.Context, record *Document) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneDocument(record)
	m.documents[copied.ID] = copied
	m.order = append(m.order, copied.ID)
	return cloneDocument(copied), nil
}

func (m *MemoryDocumentRepository) GetByID(_ context.Context, id uuid.UUID) (*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.documents[id]
	if !ok {
		return nil, &NotFoundError{Resource: "document", Key: id.String()}
	}
	return cloneDocument(rec), nil
}

func (m *MemoryDocumentRepository) Update(_ context.Context, record *Document) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.documents[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "document", Key: record.ID.String()}
	}
	copied := cloneDocument(record)
	m.documents[copied.ID] = copied
	return cloneDocument(copied), nil
}

func (m *MemoryDocumentRepository) List(_ context.Context, filter ListFilter) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Document{}
	for _, id := range m.order {
		rec, ok := m.documents[id]
		if !ok || !matchesFilter(rec, filter) {
			continue
		}
		out = append(out, cloneDocument(rec))
	}
	return out, nil
}

func (m *MemoryDocumentRepository) ListChildren(_ context.Context, parentID uuid.UUID) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Document{}
	for _, id := range m.order {
		rec, ok := m.documents[id]
		if !ok || rec.ParentID == nil || *rec.ParentID != parentID {
			continue
		}
		out = append(out, cloneDocument(rec))
	}
	return out, nil
}

func (m *MemoryDocumentRepository) ListByCollection(_ context.Context, collectionID uuid.UUID) ([]*Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Document{}
	for _, id := range m.order {
		rec, ok := m.documents[id]
		if !ok || rec.CollectionID == nil || *rec.CollectionID != collectionID {
			continue
		}
		out = append(out, cloneDocument(rec))
	}
	return out, nil
}

func (m *MemoryDocumentRepository) HardDelete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.documents[id]; !ok {
		return &NotFoundError{Resource: "document", Key: id.String()}
	}
	delete(m.documents, id)
	for i, ordered := range m.order {
		if ordered == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func matchesFilter(doc *Document, filter ListFilter) bool {
	if filter.DocumentID != nil && doc.ID != *filter.DocumentID {
		return false
	}

	if len(filter.CollectionIDs) > 0 {
		if doc.CollectionID == nil {
			return false
		}
		found := false
		for _, id := range filter.CollectionIDs {
			if *doc.CollectionID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if doc.Status == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if filter.CreatedBy != "" && doc.CreatedBy != filter.CreatedBy {
		return false
	}

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(doc.Title), needle) &&
			!strings.Contains(strings.ToLower(doc.Content), needle) {
			return false
		}
	}

	return true
}

func cloneDocument(src *Document) *Document {
	if src == nil {
		return nil
	}
	copied := *src
	if src.CollectionID != nil {
		id := *src.CollectionID
		copied.CollectionID = &id
	}
	if src.ParentID != nil {
		id := *src.ParentID
		copied.ParentID = &id
	}
	return &copied
}

// MemoryRevisionRepository stores revisions in-memory. The forked-revision
// uniqueness contract is enforced under the repository mutex, mirroring the
// partial unique index used by the SQL schema.
type MemoryRevisionRepository struct {
	mu        sync.RWMutex
	revisions map[uuid.UUID]*Revision
	order     []uuid.UUID
}

// NewMemoryRevisionRepository creates an empty in-memory revision repository.
func NewMemoryRevisionRepository() *MemoryRevisionRepository {
	return &MemoryRevisionRepository{
		revisions: make(map[uuid.UUID]*Revision),
	}
}

func (m *MemoryRevisionRepository) Create(_ context.Context, record *Revision) (*Revision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneRevision(record)
	m.revisions[copied.ID] = copied
	m.order = append(m.order, copied.ID)
	return cloneRevision(copied), nil
}

func (m *MemoryRevisionRepository) CreateFork(_ context.Context, record *Revision) (*Revision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rev := range m.revisions {
		if rev.DocumentID == record.DocumentID && rev.Status == domain.RevisionForked {
			return nil, &ConflictError{Resource: "document", Key: record.DocumentID.String()}
		}
	}

	copied := cloneRevision(record)
	copied.Status = domain.RevisionForked
	m.revisions[copied.ID] = copied
	m.order = append(m.order, copied.ID)
	return cloneRevision(copied), nil
}

func (m *MemoryRevisionRepository) GetByID(_ context.Context, id uuid.UUID) (*Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.revisions[id]
	if !ok {
		return nil, &NotFoundError{Resource: "revision", Key: id.String()}
	}
	return cloneRevision(rec), nil
}

func (m *MemoryRevisionRepository) GetFork(_ context.Context, documentID uuid.UUID) (*Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		rec := m.revisions[id]
		if rec != nil && rec.DocumentID == documentID && rec.Status == domain.RevisionForked {
			return cloneRevision(rec), nil
		}
	}
	return nil, &NotFoundError{Resource: "fork", Key: documentID.String()}
}

func (m *MemoryRevisionRepository) GetWorkingDraft(_ context.Context, documentID uuid.UUID) (*Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		rec := m.revisions[id]
		if rec != nil && rec.DocumentID == documentID && rec.Status == domain.RevisionDrafted {
			return cloneRevision(rec), nil
		}
	}
	return nil, &NotFoundError{Resource: "drafted revision", Key: documentID.String()}
}

func (m *MemoryRevisionRepository) Update(_ context.Context, record *Revision) (*Revision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.revisions[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "revision", Key: record.ID.String()}
	}
	copied := cloneRevision(record)
	m.revisions[copied.ID] = copied
	return cloneRevision(copied), nil
}

func (m *MemoryRevisionRepository) ListByDocument(_ context.Context, documentID uuid.UUID) ([]*Revision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Revision{}
	for _, id := range m.order {
		rec := m.revisions[id]
		if rec != nil && rec.DocumentID == documentID {
			out = append(out, cloneRevision(rec))
		}
	}
	return out, nil
}

func (m *MemoryRevisionRepository) HardDelete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.revisions[id]; !ok {
		return &NotFoundError{Resource: "revision", Key: id.String()}
	}
	delete(m.revisions, id)
	kept := m.order[:0]
	for _, rid := range m.order {
		if rid != id {
			kept = append(kept, rid)
		}
	}
	m.order = kept
	return nil
}

func (m *MemoryRevisionRepository) HardDeleteByDocument(_ context.Context, documentID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.order[:0]
	for _, id := range m.order {
		rec := m.revisions[id]
		if rec != nil && rec.DocumentID == documentID {
			delete(m.revisions, id)
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
	return nil
}

func cloneRevision(src *Revision) *Revision {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}

// MemoryAttachmentRepository stores attachment metadata in-memory.
type MemoryAttachmentRepository struct {
	mu          sync.RWMutex
	attachments map[uuid.UUID]*Attachment
	order       []uuid.UUID
}

// NewMemoryAttachmentRepository creates an empty in-memory attachment repository.
func NewMemoryAttachmentRepository() *MemoryAttachmentRepository {
	return &MemoryAttachmentRepository{
		attachments: make(map[uuid.UUID]*Attachment),
	}
}

func (m *MemoryAttachmentRepository) Create(_ context.Context, record *Attachment) (*Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.attachments[copied.ID] = &copied
	m.order = append(m.order, copied.ID)
	out := copied
	return &out, nil
}

func (m *MemoryAttachmentRepository) GetByID(_ context.Context, id uuid.UUID) (*Attachment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.attachments[id]
	if !ok {
		return nil, &NotFoundError{Resource: "attachment", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

func (m *MemoryAttachmentRepository) ListByDocument(_ context.Context, documentID uuid.UUID) ([]*Attachment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Attachment{}
	for _, id := range m.order {
		rec := m.attachments[id]
		if rec != nil && rec.DocumentID == documentID {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MemoryAttachmentRepository) HardDelete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.attachments[id]; !ok {
		return &NotFoundError{Resource: "attachment", Key: id.String()}
	}
	delete(m.attachments, id)
	for i, ordered := range m.order {
		if ordered == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryAttachmentRepository) HardDeleteByDocument(_ context.Context, documentID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.order[:0]
	for _, id := range m.order {
		rec := m.attachments[id]
		if rec != nil && rec.DocumentID == documentID {
			delete(m.attachments, id)
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
	return nil
}

package documents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/domain"
)

// EffectiveContent is a document's content as seen by one user. When the user
// owns the document's active fork the working copy is substituted; anyone else
// keeps seeing the published content.
type EffectiveContent struct {
	Title    string
	Content  string
	Version  int64
	Forked   bool
	Editable bool
	Fork     *Revision
}

// ForkLedger manages the single in-flight edit of published documents. The
// fork revision is the edit lock: at most one revision per document carries
// status forked, enforced by the revision repository's CreateFork contract.
type ForkLedger struct {
	revisions RevisionRepository
	now       func() time.Time
	id        IDGenerator
}

// NewForkLedger constructs a ledger over the given revision repository.
func NewForkLedger(revisions RevisionRepository, now func() time.Time, id IDGenerator) *ForkLedger {
	if now == nil {
		now = time.Now
	}
	if id == nil {
		id = uuid.New
	}
	return &ForkLedger{revisions: revisions, now: now, id: id}
}

// ActiveFork returns the document's forked revision, or nil when no edit is
// in flight.
func (l *ForkLedger) ActiveFork(ctx context.Context, documentID uuid.UUID) (*Revision, error) {
	fork, err := l.revisions.GetFork(ctx, documentID)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return fork, nil
}

// Acquire creates the fork for a published document on behalf of userID. The
// new fork copies the document's title and content and takes the version the
// caller already bumped on the document. Losing a race to a concurrent editor
// surfaces as a ConflictError from the repository.
func (l *ForkLedger) Acquire(ctx context.Context, doc *Document, userID string) (*Revision, error) {
	now := l.now()
	fork := &Revision{
		ID:         l.id(),
		DocumentID: doc.ID,
		Title:      doc.Title,
		Content:    doc.Content,
		Version:    doc.Version,
		Status:     domain.RevisionForked,
		EditedBy:   userID,
		EditedOn:   now,
		CreatedAt:  now,
	}
	return l.revisions.CreateFork(ctx, fork)
}

// Effective resolves the content userID should see for the document.
func (l *ForkLedger) Effective(ctx context.Context, doc *Document, userID string) (EffectiveContent, error) {
	fork, err := l.ActiveFork(ctx, doc.ID)
	if err != nil {
		return EffectiveContent{}, err
	}

	if fork == nil {
		return EffectiveContent{
			Title:    doc.Title,
			Content:  doc.Content,
			Version:  doc.Version,
			Editable: true,
		}, nil
	}

	owned := fork.EditedBy == userID
	view := EffectiveContent{
		Title:    doc.Title,
		Content:  doc.Content,
		Version:  doc.Version,
		Forked:   owned,
		Editable: owned,
		Fork:     fork,
	}
	if owned {
		view.Title = fork.Title
		view.Content = fork.Content
		view.Version = fork.Version
	}
	return view, nil
}

// Release moves a fork out of the forked state, freeing the document for the
// next editor. Only published, archived and deleted are legal targets.
func (l *ForkLedger) Release(ctx context.Context, fork *Revision, to domain.RevisionStatus, userID string) (*Revision, error) {
	if !domain.CanRelease(fork.Status, to) {
		return nil, fmt.Errorf("documents: cannot release revision from %q to %q", fork.Status, to)
	}
	fork.Status = to
	if userID != "" {
		fork.EditedBy = userID
	}
	fork.EditedOn = l.now()
	return l.revisions.Update(ctx, fork)
}

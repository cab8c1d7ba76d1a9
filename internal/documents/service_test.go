package documents_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/documents"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/domain"
)

type stubRenderer struct{}

func (stubRenderer) RenderHTML(markdown string) (string, error) {
	return "<p>" + markdown + "</p>", nil
}

func (stubRenderer) ExtractLeadingHeading(markdown string) (string, string, bool) {
	return "", markdown, false
}

type fixture struct {
	svc         documents.Service
	docs        *documents.MemoryDocumentRepository
	revisions   *documents.MemoryRevisionRepository
	attachments *documents.MemoryAttachmentRepository
}

func newFixture(opts ...documents.ServiceOption) *fixture {
	docs := documents.NewMemoryDocumentRepository()
	revisions := documents.NewMemoryRevisionRepository()
	attachments := documents.NewMemoryAttachmentRepository()

	base := []documents.ServiceOption{
		documents.WithClock(func() time.Time {
			return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		}),
	}
	base = append(base, opts...)

	return &fixture{
		svc:         documents.NewService(docs, revisions, attachments, stubRenderer{}, base...),
		docs:        docs,
		revisions:   revisions,
		attachments: attachments,
	}
}

func mustCreate(t *testing.T, f *fixture, title, content, userID string) *documents.Document {
	t.Helper()
	doc, err := f.svc.Create(context.Background(), documents.CreateDocumentRequest{
		Title:   title,
		Content: content,
		UserID:  userID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return doc
}

func mustPublish(t *testing.T, f *fixture, doc *documents.Document, userID string) *documents.Document {
	t.Helper()
	published, err := f.svc.Publish(context.Background(), documents.PublishDocumentRequest{
		DocumentID: doc.ID,
		Title:      doc.Title,
		Content:    doc.Content,
		UserID:     userID,
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	return published
}

func TestServiceCreatePersistsDraftWithWorkingRevision(t *testing.T) {
	f := newFixture()

	doc := mustCreate(t, f, "Runbook", "restart the broker", "alice")

	if doc.Status != domain.DocumentDrafted {
		t.Fatalf("expected drafted status, got %s", doc.Status)
	}
	if doc.Version != 1 {
		t.Fatalf("expected version 1, got %d", doc.Version)
	}

	revs, err := f.revisions.ListByDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	if len(revs) != 1 {
		t.Fatalf("expected 1 revision, got %d", len(revs))
	}
	if revs[0].Status != domain.RevisionDrafted {
		t.Fatalf("expected drafted revision, got %s", revs[0].Status)
	}
	if revs[0].Content != doc.Content {
		t.Fatalf("revision content %q does not mirror document %q", revs[0].Content, doc.Content)
	}
}

func TestServiceCreateRequiresTitle(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), documents.CreateDocumentRequest{
		Title:  "   ",
		UserID: "alice",
	})
	if !errors.Is(err, documents.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestServiceEditRequiresPublishedDocument(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "Draft only", "body", "alice")

	_, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{
		DocumentID: doc.ID,
		UserID:     "alice",
	})

	var notFound *documents.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Resource != "published document" {
		t.Fatalf("expected published document resource, got %q", notFound.Resource)
	}
}

func TestServiceEditAcquiresForkAndBumpsVersion(t *testing.T) {
	f := newFixture()
	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "v1 body", "alice"), "alice")

	session, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{
		DocumentID: doc.ID,
		UserID:     "bob",
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	if !session.Editable {
		t.Fatal("expected editable session for fork owner")
	}
	if session.Version != 2 {
		t.Fatalf("expected fork version 2, got %d", session.Version)
	}
	if session.Document.Version != 2 {
		t.Fatalf("expected document version 2, got %d", session.Document.Version)
	}
	if session.Revision == nil || session.Revision.Status != domain.RevisionForked {
		t.Fatalf("expected forked revision, got %+v", session.Revision)
	}
}

func TestServiceEditResumesExistingFork(t *testing.T) {
	f := newFixture()
	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "v1 body", "alice"), "alice")

	first, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "bob"})
	if err != nil {
		t.Fatalf("first edit: %v", err)
	}

	second, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "bob"})
	if err != nil {
		t.Fatalf("second edit: %v", err)
	}

	if second.Revision.ID != first.Revision.ID {
		t.Fatalf("expected resumed fork %s, got %s", first.Revision.ID, second.Revision.ID)
	}
	if second.Document.Version != 2 {
		t.Fatalf("expected version to stay at 2, got %d", second.Document.Version)
	}
}

func TestServiceEditByOtherUserIsReadOnly(t *testing.T) {
	f := newFixture()
	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "v1 body", "alice"), "alice")

	if _, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "bob"}); err != nil {
		t.Fatalf("bob edit: %v", err)
	}

	session, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "carol"})
	if err != nil {
		t.Fatalf("carol edit: %v", err)
	}
	if session.Editable {
		t.Fatal("expected read-only session while another user's fork is active")
	}
}

// staleForkReads simulates a concurrent editor winning the fork slot after
// this service saw an empty one: the first GetFork misses, the insert then
// collides with the winner's fork.
type staleForkReads struct {
	*documents.MemoryRevisionRepository
	misses int
}

func (s *staleForkReads) GetFork(ctx context.Context, documentID uuid.UUID) (*documents.Revision, error) {
	if s.misses > 0 {
		s.misses--
		return nil, &documents.NotFoundError{Resource: "fork", Key: documentID.String()}
	}
	return s.MemoryRevisionRepository.GetFork(ctx, documentID)
}

func TestServiceEditLostForkRaceRollsBackVersion(t *testing.T) {
	f := newFixture()
	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "v1 body", "alice"), "alice")

	if _, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "bob"}); err != nil {
		t.Fatalf("bob edit: %v", err)
	}

	stale := &staleForkReads{MemoryRevisionRepository: f.revisions, misses: 1}
	racer := documents.NewService(f.docs, stale, f.attachments, stubRenderer{},
		documents.WithClock(func() time.Time {
			return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		}),
	)

	session, err := racer.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "carol"})
	if err != nil {
		t.Fatalf("raced edit: %v", err)
	}

	if session.Editable {
		t.Fatal("losing the race must yield a read-only session")
	}
	if session.Revision == nil || session.Revision.EditedBy != "bob" {
		t.Fatalf("expected the winner's fork, got %+v", session.Revision)
	}

	stored, err := f.docs.GetByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Version != 2 {
		t.Fatalf("version bump must be rolled back to match the fork, got %d", stored.Version)
	}
	if session.Version != 2 {
		t.Fatalf("session should carry the fork version, got %d", session.Version)
	}
}

func TestServiceUpdateForkOwnerOnly(t *testing.T) {
	f := newFixture()
	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "v1 body", "alice"), "alice")

	if _, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "bob"}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	_, err := f.svc.Update(context.Background(), documents.UpdateDocumentRequest{
		DocumentID: doc.ID,
		Title:      "Guide",
		Content:    "hijacked",
		UserID:     "carol",
	})

	var forbidden *documents.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestServiceUpdateForkKeepsDocumentUntouched(t *testing.T) {
	f := newFixture()
	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "v1 body", "alice"), "alice")

	if _, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "bob"}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	session, err := f.svc.Update(context.Background(), documents.UpdateDocumentRequest{
		DocumentID: doc.ID,
		Title:      "Guide",
		Content:    "v2 body in progress",
		UserID:     "bob",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if session.Content != "v2 body in progress" {
		t.Fatalf("unexpected session content %q", session.Content)
	}

	stored, err := f.docs.GetByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Content != "v1 body" {
		t.Fatalf("document content should stay published, got %q", stored.Content)
	}
}

func TestServiceUpdateDraftRestrictedToCreator(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "Draft", "body", "alice")

	_, err := f.svc.Update(context.Background(), documents.UpdateDocumentRequest{
		DocumentID: doc.ID,
		Title:      "Draft",
		Content:    "edited",
		UserID:     "bob",
	})

	var forbidden *documents.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestServicePublishReleasesFork(t *testing.T) {
	f := newFixture()
	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "v1 body", "alice"), "alice")

	if _, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "bob"}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	published, err := f.svc.Publish(context.Background(), documents.PublishDocumentRequest{
		DocumentID: doc.ID,
		Title:      "Guide v2",
		Content:    "v2 body",
		UserID:     "bob",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if published.Content != "v2 body" || published.Title != "Guide v2" {
		t.Fatalf("document did not absorb fork content: %+v", published)
	}
	if published.Version != 2 {
		t.Fatalf("expected version 2, got %d", published.Version)
	}

	if _, err := f.revisions.GetFork(context.Background(), doc.ID); err == nil {
		t.Fatal("expected fork slot to be free after publish")
	}
}

func TestServicePublishRequiresTitle(t *testing.T) {
	f := newFixture()
	doc := mustCreate(t, f, "Guide", "body", "alice")

	_, err := f.svc.Publish(context.Background(), documents.PublishDocumentRequest{
		DocumentID: doc.ID,
		Title:      " ",
		Content:    "body",
		UserID:     "alice",
	})
	if !errors.Is(err, documents.ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestServicePublishForkOwnerOnly(t *testing.T) {
	f := newFixture()
	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "v1 body", "alice"), "alice")

	if _, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "bob"}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	_, err := f.svc.Publish(context.Background(), documents.PublishDocumentRequest{
		DocumentID: doc.ID,
		Title:      "Guide",
		Content:    "stolen",
		UserID:     "carol",
	})

	var forbidden *documents.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestServiceArchiveCascadesToChildren(t *testing.T) {
	f := newFixture()
	parent := mustPublish(t, f, mustCreate(t, f, "Parent", "p", "alice"), "alice")

	child, err := f.svc.Create(context.Background(), documents.CreateDocumentRequest{
		ParentID: &parent.ID,
		Title:    "Child",
		Content:  "c",
		UserID:   "alice",
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	child = mustPublish(t, f, child, "alice")

	if _, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: child.ID, UserID: "bob"}); err != nil {
		t.Fatalf("edit child: %v", err)
	}

	if err := f.svc.Archive(context.Background(), documents.ArchiveDocumentRequest{DocumentID: parent.ID, UserID: "alice"}); err != nil {
		t.Fatalf("archive: %v", err)
	}

	for _, id := range []uuid.UUID{parent.ID, child.ID} {
		stored, err := f.docs.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("get %s: %v", id, err)
		}
		if stored.Status != domain.DocumentArchived {
			t.Fatalf("expected archived, got %s", stored.Status)
		}
		if stored.ArchivedOn == nil {
			t.Fatal("expected archived_on stamp")
		}
	}

	if _, err := f.revisions.GetFork(context.Background(), child.ID); err == nil {
		t.Fatal("expected child fork to be released")
	}
}

func TestServiceDeleteSoftCascades(t *testing.T) {
	f := newFixture()
	parent := mustPublish(t, f, mustCreate(t, f, "Parent", "p", "alice"), "alice")

	child, err := f.svc.Create(context.Background(), documents.CreateDocumentRequest{
		ParentID: &parent.ID,
		Title:    "Child",
		Content:  "c",
		UserID:   "alice",
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	if err := f.svc.Delete(context.Background(), documents.DeleteDocumentRequest{DocumentID: parent.ID, UserID: "alice"}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, id := range []uuid.UUID{parent.ID, child.ID} {
		stored, err := f.docs.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("get %s: %v", id, err)
		}
		if stored.Status != domain.DocumentDeleted {
			t.Fatalf("expected deleted, got %s", stored.Status)
		}
		if stored.DeletedOn == nil {
			t.Fatal("expected deleted_on stamp")
		}
	}
}

func TestServiceDeletePermanentRemovesEverything(t *testing.T) {
	f := newFixture()
	doc := mustPublish(t, f, mustCreate(t, f, "Gone", "body", "alice"), "alice")

	if _, err := f.svc.AddAttachment(context.Background(), documents.AddAttachmentRequest{
		DocumentID: doc.ID,
		Name:       "diagram.png",
		Key:        "attachments/diagram.png",
		UserID:     "alice",
	}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if err := f.svc.Delete(context.Background(), documents.DeleteDocumentRequest{
		DocumentID: doc.ID,
		UserID:     "alice",
		Permanent:  true,
	}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := f.docs.GetByID(context.Background(), doc.ID); err == nil {
		t.Fatal("expected document to be gone")
	}
	revs, err := f.revisions.ListByDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	if len(revs) != 0 {
		t.Fatalf("expected no revisions, got %d", len(revs))
	}
	atts, err := f.attachments.ListByDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("list attachments: %v", err)
	}
	if len(atts) != 0 {
		t.Fatalf("expected no attachments, got %d", len(atts))
	}
}

func TestServiceDiscardForkByDocumentCreator(t *testing.T) {
	f := newFixture()
	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "body", "alice"), "alice")

	if _, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "bob"}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	if err := f.svc.DiscardFork(context.Background(), documents.DiscardForkRequest{DocumentID: doc.ID, UserID: "alice"}); err != nil {
		t.Fatalf("discard: %v", err)
	}

	if _, err := f.revisions.GetFork(context.Background(), doc.ID); err == nil {
		t.Fatal("expected fork to be released")
	}
}

func TestServiceDiscardForkRejectsStrangers(t *testing.T) {
	f := newFixture()
	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "body", "alice"), "alice")

	if _, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "bob"}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	err := f.svc.DiscardFork(context.Background(), documents.DiscardForkRequest{DocumentID: doc.ID, UserID: "carol"})

	var forbidden *documents.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
}

func TestServiceExportPrefersOwnFork(t *testing.T) {
	f := newFixture()
	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "published body", "alice"), "alice")

	if _, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "bob"}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if _, err := f.svc.Update(context.Background(), documents.UpdateDocumentRequest{
		DocumentID: doc.ID,
		Title:      "Guide WIP",
		Content:    "working copy",
		UserID:     "bob",
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	own, err := f.svc.Export(context.Background(), documents.ExportDocumentRequest{DocumentID: doc.ID, UserID: "bob"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if own.Filename != "Guide WIP.md" {
		t.Fatalf("unexpected filename %q", own.Filename)
	}
	if !strings.HasPrefix(own.Markdown, "# Guide WIP\n\n") {
		t.Fatalf("expected title heading, got %q", own.Markdown)
	}
	if !strings.Contains(own.Markdown, "working copy") {
		t.Fatalf("expected fork content, got %q", own.Markdown)
	}

	other, err := f.svc.Export(context.Background(), documents.ExportDocumentRequest{DocumentID: doc.ID, UserID: "carol"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(other.Markdown, "published body") {
		t.Fatalf("expected published content for non-owner, got %q", other.Markdown)
	}
}

func TestServiceImportRejectsLongTitle(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Import(context.Background(), documents.ImportDocumentRequest{
		Title:  strings.Repeat("t", 100),
		UserID: "alice",
	})
	if !errors.Is(err, documents.ErrTitleTooLong) {
		t.Fatalf("expected ErrTitleTooLong, got %v", err)
	}
}

func TestServiceImportDowngradesMissingParent(t *testing.T) {
	f := newFixture()
	missing := uuid.New()

	doc, err := f.svc.Import(context.Background(), documents.ImportDocumentRequest{
		ParentID: &missing,
		Title:    "Orphan",
		Content:  "body",
		UserID:   "alice",
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if doc.ParentID != nil {
		t.Fatalf("expected root document, got parent %v", doc.ParentID)
	}
	if doc.Status != domain.DocumentPublished {
		t.Fatalf("imports publish immediately, got %s", doc.Status)
	}
}

func TestServiceListRestrictsDraftsToAuthor(t *testing.T) {
	f := newFixture()
	mustCreate(t, f, "Alice draft", "a", "alice")
	mustCreate(t, f, "Bob draft", "b", "bob")

	nodes, err := f.svc.List(context.Background(), documents.ListDocumentsRequest{
		Status: "drafted",
		UserID: "alice",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(nodes))
	}
	if nodes[0].Title != "Alice draft" {
		t.Fatalf("unexpected draft %q", nodes[0].Title)
	}
}

type stubResolver struct {
	infos map[uuid.UUID]*documents.CollectionInfo
}

func (r stubResolver) Resolve(_ context.Context, id uuid.UUID) (*documents.CollectionInfo, error) {
	info, ok := r.infos[id]
	if !ok {
		return nil, &documents.NotFoundError{Resource: "collection", Key: id.String()}
	}
	return info, nil
}

func TestServiceListHidesNoAccessCollections(t *testing.T) {
	private := uuid.New()
	shared := uuid.New()

	resolver := stubResolver{infos: map[uuid.UUID]*documents.CollectionInfo{
		private: {ID: private, Permission: domain.PermissionNoAccess, CreatedBy: "alice"},
		shared:  {ID: shared, Permission: domain.PermissionRead, CreatedBy: "alice"},
	}}

	f := newFixture(documents.WithCollectionResolver(resolver))

	for _, tc := range []struct {
		title      string
		collection uuid.UUID
	}{
		{"Secret", private},
		{"Shared", shared},
	} {
		if _, err := f.svc.Create(context.Background(), documents.CreateDocumentRequest{
			CollectionID: &tc.collection,
			Title:        tc.title,
			Content:      "body",
			UserID:       "alice",
		}); err != nil {
			t.Fatalf("create %s: %v", tc.title, err)
		}
	}

	nodes, err := f.svc.List(context.Background(), documents.ListDocumentsRequest{UserID: "bob"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Title != "Shared" {
		t.Fatalf("expected only the shared document, got %d nodes", len(nodes))
	}

	own, err := f.svc.List(context.Background(), documents.ListDocumentsRequest{UserID: "alice"})
	if err != nil {
		t.Fatalf("list own: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("creator should see both documents, got %d", len(own))
	}
}

func TestServiceRevisionsFiltersByDay(t *testing.T) {
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	current := day1
	f := newFixture(documents.WithClock(func() time.Time { return current }))

	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "v1", "alice"), "alice")

	current = day2
	if _, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{DocumentID: doc.ID, UserID: "bob"}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	views, err := f.svc.Revisions(context.Background(), documents.ListRevisionsRequest{
		DocumentID: doc.ID,
		EditedOn:   &day2,
	})
	if err != nil {
		t.Fatalf("revisions: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 revision on day 2, got %d", len(views))
	}
	if views[0].HTML == "" {
		t.Fatal("expected rendered HTML alongside revision")
	}
}

func TestMemoryRevisionRepositoryCreateForkConflict(t *testing.T) {
	repo := documents.NewMemoryRevisionRepository()
	docID := uuid.New()

	if _, err := repo.CreateFork(context.Background(), &documents.Revision{
		ID:         uuid.New(),
		DocumentID: docID,
		Title:      "first",
		Version:    2,
		EditedBy:   "bob",
	}); err != nil {
		t.Fatalf("first fork: %v", err)
	}

	_, err := repo.CreateFork(context.Background(), &documents.Revision{
		ID:         uuid.New(),
		DocumentID: docID,
		Title:      "second",
		Version:    2,
		EditedBy:   "carol",
	})

	var conflict *documents.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestServicePublishPrunesOldRevisions(t *testing.T) {
	f := newFixture(documents.WithRevisionRetention(2))
	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "v1", "alice"), "alice")

	for _, content := range []string{"v2", "v3"} {
		if _, err := f.svc.Edit(context.Background(), documents.EditDocumentRequest{
			DocumentID: doc.ID,
			UserID:     "alice",
		}); err != nil {
			t.Fatalf("edit %s: %v", content, err)
		}
		if _, err := f.svc.Publish(context.Background(), documents.PublishDocumentRequest{
			DocumentID: doc.ID,
			Title:      "Guide",
			Content:    content,
			UserID:     "alice",
		}); err != nil {
			t.Fatalf("publish %s: %v", content, err)
		}
	}

	revs, err := f.revisions.ListByDocument(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	if len(revs) != 2 {
		t.Fatalf("expected 2 retained revisions, got %d", len(revs))
	}
	if revs[0].Content != "v2" || revs[1].Content != "v3" {
		t.Fatalf("expected oldest revision pruned, got %q and %q", revs[0].Content, revs[1].Content)
	}
}

func TestServiceAttachmentOpsDisabled(t *testing.T) {
	f := newFixture(documents.WithAttachments(false))
	doc := mustCreate(t, f, "Guide", "v1", "alice")

	if _, err := f.svc.AddAttachment(context.Background(), documents.AddAttachmentRequest{
		DocumentID: doc.ID,
		Name:       "diagram.png",
		Key:        "attachments/diagram.png",
		UserID:     "alice",
	}); !errors.Is(err, documents.ErrAttachmentsDisabled) {
		t.Fatalf("expected ErrAttachmentsDisabled from add, got %v", err)
	}
	if _, err := f.svc.Attachments(context.Background(), doc.ID); !errors.Is(err, documents.ErrAttachmentsDisabled) {
		t.Fatalf("expected ErrAttachmentsDisabled from list, got %v", err)
	}
	if err := f.svc.RemoveAttachment(context.Background(), documents.RemoveAttachmentRequest{
		AttachmentID: uuid.New(),
		UserID:       "alice",
	}); !errors.Is(err, documents.ErrAttachmentsDisabled) {
		t.Fatalf("expected ErrAttachmentsDisabled from remove, got %v", err)
	}
}

func TestServicePublishRejectsArchivedDocument(t *testing.T) {
	f := newFixture()
	doc := mustPublish(t, f, mustCreate(t, f, "Guide", "v1", "alice"), "alice")

	if err := f.svc.Archive(context.Background(), documents.ArchiveDocumentRequest{
		DocumentID: doc.ID,
		UserID:     "alice",
	}); err != nil {
		t.Fatalf("archive: %v", err)
	}

	_, err := f.svc.Publish(context.Background(), documents.PublishDocumentRequest{
		DocumentID: doc.ID,
		Title:      "Guide",
		Content:    "v2",
		UserID:     "alice",
	})
	if !errors.Is(err, documents.ErrStatusInvalid) {
		t.Fatalf("expected ErrStatusInvalid, got %v", err)
	}
}

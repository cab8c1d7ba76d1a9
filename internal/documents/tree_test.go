package documents_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/documents"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/domain"
)

func newAssembler() (*documents.TreeAssembler, *documents.MemoryRevisionRepository) {
	revisions := documents.NewMemoryRevisionRepository()
	forks := documents.NewForkLedger(revisions, func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}, nil)
	return documents.NewTreeAssembler(forks, stubRenderer{}), revisions
}

func publishedDoc(title string, parent *uuid.UUID) *documents.Document {
	return &documents.Document{
		ID:       uuid.New(),
		ParentID: parent,
		Title:    title,
		Content:  title + " body",
		Version:  1,
		Status:   domain.DocumentPublished,
	}
}

func TestTreeAssemblerNestsChildrenInListingOrder(t *testing.T) {
	assembler, _ := newAssembler()

	root := publishedDoc("Root", nil)
	first := publishedDoc("First", &root.ID)
	second := publishedDoc("Second", &root.ID)
	grandchild := publishedDoc("Grandchild", &first.ID)

	nodes, err := assembler.Build(context.Background(), []*documents.Document{root, first, second, grandchild}, "alice")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(nodes) != 1 {
		t.Fatalf("expected 1 root, got %d", len(nodes))
	}
	children := nodes[0].Children
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if children[0].Title != "First" || children[1].Title != "Second" {
		t.Fatalf("children out of order: %q, %q", children[0].Title, children[1].Title)
	}
	if len(children[0].Children) != 1 || children[0].Children[0].Title != "Grandchild" {
		t.Fatalf("expected grandchild under first, got %+v", children[0].Children)
	}
}

func TestTreeAssemblerKeepsUnpublishedChildrenAsTopLevelEntries(t *testing.T) {
	assembler, _ := newAssembler()

	root := publishedDoc("Root", nil)
	draft := publishedDoc("Draft child", &root.ID)
	draft.Status = domain.DocumentDrafted

	nodes, err := assembler.Build(context.Background(), []*documents.Document{root, draft}, "alice")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// Every listed document stays in the forest; only nesting is restricted
	// to published children.
	if len(nodes) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(nodes))
	}
	if len(nodes[0].Children) != 0 {
		t.Fatalf("draft should not nest under its parent, got %d children", len(nodes[0].Children))
	}
	if nodes[1].Title != "Draft child" {
		t.Fatalf("expected the draft as its own entry, got %q", nodes[1].Title)
	}
}

func TestTreeAssemblerPromotesOrphansToRoots(t *testing.T) {
	assembler, _ := newAssembler()

	outside := uuid.New()
	orphan := publishedDoc("Orphan", &outside)

	nodes, err := assembler.Build(context.Background(), []*documents.Document{orphan}, "alice")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Title != "Orphan" {
		t.Fatalf("expected orphan promoted to root, got %+v", nodes)
	}
}

func TestTreeAssemblerSubstitutesOwnFork(t *testing.T) {
	assembler, revisions := newAssembler()

	doc := publishedDoc("Guide", nil)
	doc.Version = 2

	if _, err := revisions.CreateFork(context.Background(), &documents.Revision{
		ID:         uuid.New(),
		DocumentID: doc.ID,
		Title:      "Guide WIP",
		Content:    "working copy",
		Version:    2,
		EditedBy:   "bob",
	}); err != nil {
		t.Fatalf("fork: %v", err)
	}

	owner, err := assembler.Build(context.Background(), []*documents.Document{doc}, "bob")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if owner[0].Title != "Guide WIP" || owner[0].Content != "working copy" {
		t.Fatalf("owner should see the working copy, got %q / %q", owner[0].Title, owner[0].Content)
	}
	if !owner[0].Forked {
		t.Fatal("owner node should be marked forked")
	}

	other, err := assembler.Build(context.Background(), []*documents.Document{doc}, "carol")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if other[0].Title != "Guide" || other[0].Content != "Guide body" {
		t.Fatalf("others should see published content, got %q / %q", other[0].Title, other[0].Content)
	}
	if other[0].Forked {
		t.Fatal("other users should not see the node as forked")
	}
}

func TestTreeAssemblerRendersHTML(t *testing.T) {
	assembler, _ := newAssembler()

	doc := publishedDoc("Page", nil)
	nodes, err := assembler.Build(context.Background(), []*documents.Document{doc}, "alice")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if nodes[0].HTML != "<p>Page body</p>" {
		t.Fatalf("unexpected html %q", nodes[0].HTML)
	}
}

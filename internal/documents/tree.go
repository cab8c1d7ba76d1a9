package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/domain"
	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

// TreeAssembler nests a flat document listing into parent/child forests,
// resolving each node's content through the fork ledger so editors see their
// working copies in place.
type TreeAssembler struct {
	forks    *ForkLedger
	renderer interfaces.ContentRenderer
}

// NewTreeAssembler constructs an assembler sharing the given ledger and renderer.
func NewTreeAssembler(forks *ForkLedger, renderer interfaces.ContentRenderer) *TreeAssembler {
	return &TreeAssembler{forks: forks, renderer: renderer}
}

// Build assembles the forest for userID. Every listed document appears in the
// output: roots are documents without a parent (or whose parent is outside
// the listing), children attach in listing order, and only published children
// nest under their parent. Unpublished documents with a listed parent still
// surface as their own top-level entries so drafts stay reachable.
func (t *TreeAssembler) Build(ctx context.Context, docs []*Document, userID string) ([]*DocumentNode, error) {
	if len(docs) == 0 {
		return []*DocumentNode{}, nil
	}

	nodes := make(map[uuid.UUID]*DocumentNode, len(docs))
	order := make([]*DocumentNode, 0, len(docs))

	for _, doc := range docs {
		node, err := t.buildNode(ctx, doc, userID)
		if err != nil {
			return nil, err
		}
		nodes[doc.ID] = node
		order = append(order, node)
	}

	roots := make([]*DocumentNode, 0, len(order))
	for _, node := range order {
		parentID := node.Document.ParentID
		if parentID == nil {
			roots = append(roots, node)
			continue
		}

		parent, ok := nodes[*parentID]
		if !ok {
			roots = append(roots, node)
			continue
		}

		if node.Document.Status != domain.DocumentPublished {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots, nil
}

func (t *TreeAssembler) buildNode(ctx context.Context, doc *Document, userID string) (*DocumentNode, error) {
	view, err := t.forks.Effective(ctx, doc, userID)
	if err != nil {
		return nil, err
	}

	node := &DocumentNode{
		Document: doc,
		Title:    view.Title,
		Content:  view.Content,
		Version:  view.Version,
		Forked:   view.Forked,
	}

	if t.renderer != nil {
		html, err := t.renderer.RenderHTML(view.Content)
		if err != nil {
			return nil, err
		}
		node.HTML = html
	}

	return node, nil
}

package markdown

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/documents"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/logging"
	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

// ImportOptions target an import at a collection and optional parent document.
type ImportOptions struct {
	CollectionID *uuid.UUID
	ParentID     *uuid.UUID
	UserID       string
}

// ImportReport summarizes a batch import.
type ImportReport struct {
	Imported []*documents.Document
	Failed   map[string]error
}

// ImporterConfig encapsulates the dependencies needed to persist Markdown files.
type ImporterConfig struct {
	Documents documents.Service
	Renderer  *Renderer
	Logger    interfaces.Logger
}

// Importer turns Markdown files into published documents. The document title
// comes from frontmatter when present, then from a leading level-1 heading
// (which is stripped from the body), then from the filename.
type Importer struct {
	documents documents.Service
	renderer  *Renderer
	logger    interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = NewRenderer(Options{})
	}
	return &Importer{
		documents: cfg.Documents,
		renderer:  renderer,
		logger:    logger,
	}
}

// ImportFile persists a single loaded file as a published document.
func (i *Importer) ImportFile(ctx context.Context, file *File, opts ImportOptions) (*documents.Document, error) {
	title, content, err := i.prepare(file)
	if err != nil {
		return nil, err
	}

	doc, err := i.documents.Import(ctx, documents.ImportDocumentRequest{
		CollectionID: opts.CollectionID,
		ParentID:     opts.ParentID,
		Title:        title,
		Content:      content,
		UserID:       opts.UserID,
	})
	if err != nil {
		return nil, err
	}

	i.logger.Info("markdown.imported", "import_path", file.Path, "document_id", doc.ID)
	return doc, nil
}

// ImportFiles persists a batch of loaded files, collecting per-file failures
// instead of aborting the run.
func (i *Importer) ImportFiles(ctx context.Context, files []*File, opts ImportOptions) (*ImportReport, error) {
	report := &ImportReport{
		Failed: map[string]error{},
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		doc, err := i.ImportFile(ctx, file, opts)
		if err != nil {
			i.logger.Warn("markdown.import_failed", "import_path", file.Path, "error", err)
			report.Failed[file.Path] = err
			continue
		}
		report.Imported = append(report.Imported, doc)
	}

	return report, nil
}

// prepare resolves the document title and body from a raw file.
func (i *Importer) prepare(file *File) (string, string, error) {
	matter, body, err := ParseFrontMatter(file.Data)
	if err != nil {
		return "", "", err
	}

	content := string(body)

	if strings.TrimSpace(matter.Title) != "" {
		return strings.TrimSpace(matter.Title), content, nil
	}

	if title, remainder, ok := i.renderer.ExtractLeadingHeading(content); ok {
		return title, remainder, nil
	}

	return file.Name, content, nil
}

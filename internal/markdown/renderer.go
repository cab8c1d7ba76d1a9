package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

// Renderer converts Markdown into the HTML stored alongside documents and
// revisions. The renderer is intentionally stateless so callers can reuse a
// single instance across requests without additional locking.
type Renderer struct {
	engine goldmark.Markdown
}

var _ interfaces.ContentRenderer = (*Renderer)(nil)

// Options customises Markdown rendering behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type Options struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// NewRenderer constructs a renderer with sensible defaults (GFM extensions,
// hard wraps disabled, unsafe HTML allowed). Fenced code blocks are replaced
// with a copy-button envelope during rendering.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{engine: newGoldmarkEngine(opts)}
}

// RenderHTML satisfies interfaces.ContentRenderer. The Markdown is parsed once,
// every fenced code block is swapped for its copyable envelope, and the
// rewritten tree is rendered to HTML.
func (r *Renderer) RenderHTML(markdown string) (string, error) {
	source := []byte(markdown)
	doc := r.engine.Parser().Parse(text.NewReader(source))
	DecorateCodeBlocks(doc, source)

	var buf bytes.Buffer
	if err := r.engine.Renderer().Render(&buf, source, doc); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

// Parse exposes the underlying goldmark parse step for callers that need the
// AST before rendering.
func (r *Renderer) Parse(markdown string) ast.Node {
	return r.engine.Parser().Parse(text.NewReader([]byte(markdown)))
}

// newGoldmarkEngine builds a goldmark.Markdown configured from the supplied
// options. The mapping is intentionally conservative; unsupported extension
// names are ignored.
func newGoldmarkEngine(opts Options) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{
		renderer.WithNodeRenderers(
			util.Prioritized(newCopyableBlockRenderer(), 500),
		),
	}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithRendererOptions(rendererOptions...),
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}

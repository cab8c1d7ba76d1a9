package markdown_test

import (
	"strings"
	"testing"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/markdown"
)

func TestRendererWrapsCodeBlocksWithCopyButton(t *testing.T) {
	r := markdown.NewRenderer(markdown.Options{})

	html, err := r.RenderHTML("```go\nfmt.Println(\"hi\")\n```")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(html, "<pre><button>copy</button><code>") {
		t.Fatalf("missing copy envelope: %q", html)
	}
	if !strings.Contains(html, "fmt.Println(&quot;hi&quot;)") {
		t.Fatalf("code content not escaped: %q", html)
	}
}

func TestRendererEscapesMarkupInsideCode(t *testing.T) {
	r := markdown.NewRenderer(markdown.Options{})

	html, err := r.RenderHTML("```\n<script>alert(1)</script>\n```")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if strings.Contains(html, "<script>") {
		t.Fatalf("raw markup leaked out of code block: %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup, got %q", html)
	}
}

func TestRendererAppliesGFMByDefault(t *testing.T) {
	r := markdown.NewRenderer(markdown.Options{})

	html, err := r.RenderHTML("| a | b |\n| --- | --- |\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Fatalf("expected table output, got %q", html)
	}

	html, err = r.RenderHTML("~~gone~~")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<del>") {
		t.Fatalf("expected strikethrough, got %q", html)
	}
}

func TestRendererIgnoresUnknownExtensions(t *testing.T) {
	r := markdown.NewRenderer(markdown.Options{Extensions: []string{"table", "bogus"}})

	html, err := r.RenderHTML("| a |\n| --- |\n| 1 |")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Fatalf("expected table extension to apply, got %q", html)
	}
}

func TestRendererSafeModeStripsRawHTML(t *testing.T) {
	r := markdown.NewRenderer(markdown.Options{SafeMode: true})

	html, err := r.RenderHTML("before\n\n<div>raw</div>\n\nafter")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<div>raw</div>") {
		t.Fatalf("raw HTML should be suppressed in safe mode: %q", html)
	}
}

func TestExtractLeadingHeading(t *testing.T) {
	r := markdown.NewRenderer(markdown.Options{})

	title, remainder, ok := r.ExtractLeadingHeading("# Getting Started\n\nFirst steps.")
	if !ok {
		t.Fatal("expected a title")
	}
	if title != "Getting Started" {
		t.Fatalf("unexpected title %q", title)
	}
	if strings.Contains(remainder, "# Getting Started") {
		t.Fatalf("heading should be stripped from body: %q", remainder)
	}
	if !strings.Contains(remainder, "First steps.") {
		t.Fatalf("body lost content: %q", remainder)
	}
}

func TestExtractLeadingHeadingStopsAtSubsection(t *testing.T) {
	r := markdown.NewRenderer(markdown.Options{})

	source := "## Setup\n\n# Late Title\n\nbody"
	title, remainder, ok := r.ExtractLeadingHeading(source)
	if ok {
		t.Fatalf("subsection-first document should yield no title, got %q", title)
	}
	if remainder != source {
		t.Fatalf("body should be untouched, got %q", remainder)
	}
}

func TestExtractLeadingHeadingNoHeading(t *testing.T) {
	r := markdown.NewRenderer(markdown.Options{})

	source := "just a paragraph"
	if title, remainder, ok := r.ExtractLeadingHeading(source); ok || title != "" || remainder != source {
		t.Fatalf("expected untouched passthrough, got %q / %q / %v", title, remainder, ok)
	}
}

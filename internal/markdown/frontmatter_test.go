package markdown_test

import (
	"strings"
	"testing"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/markdown"
)

func TestParseFrontMatterExtractsMetadataAndBody(t *testing.T) {
	source := []byte("---\ntitle: Runbook\nauthor: alice\ntags: [ops, broker]\nteam: platform\n---\nbody text")

	matter, body, err := markdown.ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if matter.Title != "Runbook" || matter.Author != "alice" {
		t.Fatalf("unexpected metadata %+v", matter)
	}
	if len(matter.Tags) != 2 {
		t.Fatalf("unexpected tags %v", matter.Tags)
	}
	if matter.Custom["team"] != "platform" {
		t.Fatalf("custom keys should be preserved, got %v", matter.Custom)
	}
	if strings.TrimSpace(string(body)) != "body text" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestParseFrontMatterPassesThroughPlainMarkdown(t *testing.T) {
	source := []byte("# Plain\n\nno envelope")

	matter, body, err := markdown.ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if matter.Title != "" {
		t.Fatalf("expected empty envelope, got %+v", matter)
	}
	if string(body) != string(source) {
		t.Fatalf("body should be unchanged, got %q", body)
	}
}

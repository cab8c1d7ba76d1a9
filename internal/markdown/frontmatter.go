package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter models the optional metadata envelope accepted on uploaded
// Markdown files. Unknown keys are preserved in Custom so callers can layer
// their own conventions without schema changes here.
type FrontMatter struct {
	Title  string         `yaml:"title"`
	Status string         `yaml:"status"`
	Author string         `yaml:"author"`
	Tags   []string       `yaml:"tags"`
	Custom map[string]any `yaml:",inline"`
}

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured frontmatter, the Markdown
// body without delimiters, and any error encountered. Sources without a
// frontmatter block come back unchanged with an empty envelope.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}

	return meta, body, nil
}

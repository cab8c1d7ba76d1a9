package markdown

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var leadingHeadingPattern = regexp.MustCompile(`(?m)^# .+`)

// ExtractLeadingHeading satisfies interfaces.ContentRenderer. It locates the
// document's first heading in reading order; a level-1 heading yields the
// title and the Markdown with that heading line removed. A heading of any
// other level ends the search without a title, so documents that open with a
// subsection keep their content untouched.
func (r *Renderer) ExtractLeadingHeading(markdown string) (string, string, bool) {
	source := []byte(markdown)
	doc := r.engine.Parser().Parse(text.NewReader(source))

	heading := findLeadingHeading(doc)
	if heading == nil {
		return "", markdown, false
	}

	title := strings.TrimSpace(headingText(heading, source))
	if title == "" {
		return "", markdown, false
	}

	return title, removeLeadingHeading(markdown), true
}

// findLeadingHeading scans the node's children in reading order for a level-1
// heading. A heading of any other level ends the scan for that branch without
// a match, so a document opening with a subsection never yields a title.
func findLeadingHeading(node ast.Node) *ast.Heading {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if heading, ok := child.(*ast.Heading); ok {
			if heading.Level == 1 {
				return heading
			}
			return nil
		}
		if found := findLeadingHeading(child); found != nil {
			return found
		}
	}
	return nil
}

func headingText(heading *ast.Heading, source []byte) string {
	for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			return string(textNode.Segment.Value(source))
		}
	}
	return ""
}

// removeLeadingHeading strips the first "# ..." line from the Markdown,
// leaving the rest of the document byte for byte intact.
func removeLeadingHeading(markdown string) string {
	loc := leadingHeadingPattern.FindStringIndex(markdown)
	if loc == nil {
		return markdown
	}
	return markdown[:loc[0]] + markdown[loc[1]:]
}

package interfaces

// ContentRenderer converts Markdown into the HTML served alongside documents
// and revisions. Implementations decorate fenced code blocks with a copy
// affordance before rendering.
type ContentRenderer interface {
	// RenderHTML converts Markdown into HTML with decorated code blocks.
	RenderHTML(markdown string) (string, error)
	// ExtractLeadingHeading returns the title found in the document's first
	// level-1 heading and the Markdown with that heading line removed. ok is
	// false when the document does not open with a level-1 heading.
	ExtractLeadingHeading(markdown string) (title string, remainder string, ok bool)
}

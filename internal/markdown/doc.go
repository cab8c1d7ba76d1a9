// Package markdown renders document content to HTML and handles Markdown file
// ingestion. Rendering decorates fenced code blocks with a copy affordance;
// ingestion extracts the leading heading as the document title and hands off
// to the documents service.
package markdown

package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrNotMarkdown   = errors.New("markdown: file is not a markdown document")
	ErrEmptyDocument = errors.New("markdown: document is empty")
)

// File is a Markdown source file read from disk, prior to import.
type File struct {
	// Path is the file's slash-separated path relative to the loader root.
	Path string
	// Name is the base filename without the .md extension.
	Name string
	// Data holds the raw file bytes.
	Data []byte
}

// LoaderConfig configures how Markdown files are discovered within a base
// directory.
type LoaderConfig struct {
	// BasePath is the root directory where Markdown documents live.
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob
	// (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into Markdown files ready for import.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadFile reads a single Markdown file. Non-markdown extensions and empty
// files are rejected before any parsing happens.
func (l *Loader) LoadFile(ctx context.Context, path string) (*File, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	if !strings.EqualFold(filepath.Ext(rel), ".md") {
		return nil, fmt.Errorf("%w: %s", ErrNotMarkdown, rel)
	}

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, rel)
	}

	base := filepath.Base(rel)
	return &File{
		Path: rel,
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
		Data: data,
	}, nil
}

// LoadDirectory discovers Markdown files under dir, sorted by path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*File, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.Clean(root)

	var results []*File

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.shouldRecurse(root, path) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.matchesPattern(rel) {
			return nil
		}

		file, err := l.LoadFile(ctx, rel)
		if err != nil {
			return err
		}
		results = append(results, file)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	return results, nil
}

func (l *Loader) shouldRecurse(root, current string) bool {
	if l.recursive {
		return true
	}
	// If recursion is disabled, only walk the root directory.
	return filepath.Clean(root) == filepath.Clean(current)
}

func (l *Loader) matchesPattern(path string) bool {
	// Normalise to slash as fs.WalkDir returns slash-separated paths for DirFS.
	pattern := filepath.ToSlash(l.pattern)
	if strings.Contains(pattern, "**") {
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	var target string
	if strings.Contains(pattern, "/") {
		target = path
	} else {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown loader: make relative %s: %w", path, err)
	}
	return rel, nil
}

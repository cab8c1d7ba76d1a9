package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/cmd/pages/internal/bootstrap"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/collections"
	"github.com/Breezeware-OS/dynamo-pages-template/internal/markdown"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("pages import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("pages-import", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := fs.String("directory", ".", "Directory to import, relative to the content root")
	file := fs.String("file", "", "Single file to import instead of a directory")
	collectionName := fs.String("collection", "", "Collection to import into, created when missing")
	parent := fs.String("parent", "", "Parent document id for imported documents")
	user := fs.String("user", "", "User id recorded on imported documents")
	recursive := fs.Bool("recursive", true, "Traverse sub-directories when importing a directory")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*user) == "" {
		return fmt.Errorf("a -user id is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  *recursive,
		UserID:     *user,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()

	opts := markdown.ImportOptions{UserID: *user}

	if trimmed := strings.TrimSpace(*collectionName); trimmed != "" {
		collectionID, err := resolveCollection(ctx, module, trimmed, *user)
		if err != nil {
			return err
		}
		opts.CollectionID = &collectionID
	}

	if trimmed := strings.TrimSpace(*parent); trimmed != "" {
		parentID, err := uuid.Parse(trimmed)
		if err != nil {
			return fmt.Errorf("invalid -parent id: %w", err)
		}
		opts.ParentID = &parentID
	}

	loader := markdown.NewLoader(os.DirFS(*contentDir), markdown.LoaderConfig{
		BasePath:  *contentDir,
		Pattern:   *pattern,
		Recursive: *recursive,
	})

	if trimmed := strings.TrimSpace(*file); trimmed != "" {
		loaded, err := loader.LoadFile(ctx, trimmed)
		if err != nil {
			return err
		}
		doc, err := module.Importer.ImportFile(ctx, loaded, opts)
		if err != nil {
			return err
		}
		fmt.Printf("imported %s as %s (%s)\n", loaded.Path, doc.Title, doc.ID)
		return nil
	}

	files, err := loader.LoadDirectory(ctx, *directory)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("no markdown files found")
		return nil
	}

	report, err := module.Importer.ImportFiles(ctx, files, opts)
	if err != nil {
		return err
	}

	for _, doc := range report.Imported {
		fmt.Printf("imported %s (%s)\n", doc.Title, doc.ID)
	}
	for path, importErr := range report.Failed {
		fmt.Fprintf(os.Stderr, "failed %s: %v\n", path, importErr)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d of %d files failed to import", len(report.Failed), len(files))
	}
	return nil
}

// resolveCollection finds the named collection or creates it on first use.
func resolveCollection(ctx context.Context, module *bootstrap.Module, name, userID string) (uuid.UUID, error) {
	if module.Collections == nil {
		return uuid.Nil, fmt.Errorf("collections feature is disabled")
	}

	created, err := module.Collections.Create(ctx, collections.CreateCollectionRequest{
		Name:   name,
		UserID: userID,
	})
	if err == nil {
		return created.ID, nil
	}
	if !errors.Is(err, collections.ErrSlugExists) {
		return uuid.Nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	views, err := module.Collections.List(ctx, collections.ListCollectionsRequest{
		UserID: userID,
		Search: name,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve collection %q: %w", name, err)
	}
	for _, view := range views {
		if strings.EqualFold(view.Collection.Name, name) {
			return view.Collection.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("collection %q exists but is not visible to user %q", name, userID)
}

package collections

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/documents"
)

// Resolver adapts a CollectionRepository to the documents package's
// CollectionResolver, translating not-found errors into the documents
// package's own type so callers there can match on it.
type Resolver struct {
	repo CollectionRepository
}

// NewResolver wraps repo for use by the documents service.
func NewResolver(repo CollectionRepository) *Resolver {
	return &Resolver{repo: repo}
}

func (r *Resolver) Resolve(ctx context.Context, id uuid.UUID) (*documents.CollectionInfo, error) {
	record, err := r.repo.GetByID(ctx, id)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, &documents.NotFoundError{Resource: notFound.Resource, Key: notFound.Key}
		}
		return nil, err
	}
	return &documents.CollectionInfo{
		ID:         record.ID,
		Permission: record.Permission,
		CreatedBy:  record.CreatedBy,
	}, nil
}

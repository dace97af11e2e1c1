package ports

import (
	"context"
	"designer-finder-service/internal/domain"
)

// Port: durable storage for designer records.
// List returns designers in insertion order. Remove returns domain.ErrNotFound
// when no designer has the given id.
type DesignerStore interface {
	List(ctx context.Context) ([]domain.Designer, error)
	Add(ctx context.Context, d domain.NewDesigner) (domain.Designer, error)
	Remove(ctx context.Context, id string) error
}

package repository

import (
	"context"

	"docsign/internal/domain/entity"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	// FindByID returns nil without error when no document exists.
	FindByID(ctx context.Context, id string) (*entity.Document, error)
	// Update persists the full document row, including the signature block
	// list (replace-by-list, not a patch).
	Update(ctx context.Context, doc *entity.Document) error
	Delete(ctx context.Context, id string) error
	IncrementViewCount(ctx context.Context, id string) error
}

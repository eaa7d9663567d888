package repository

import (
	"context"

	"docsign/internal/domain/entity"
)

type SignatureRepository interface {
	Save(ctx context.Context, sig *entity.Signature) error
	// ListByDocument returns signatures ordered by signing time.
	ListByDocument(ctx context.Context, documentID string) ([]entity.Signature, error)
	ExistsForBlock(ctx context.Context, documentID, blockID string) (bool, error)
	DeleteByDocument(ctx context.Context, documentID string) error
}

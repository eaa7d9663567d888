package repository

import (
	"context"

	"docsign/internal/domain/entity"
)

type OperationLogRepository interface {
	Save(ctx context.Context, log *entity.OperationLog) error
	List(ctx context.Context, limit, offset int) ([]entity.OperationLog, error)
	// Search filters by document ID or operation name.
	Search(ctx context.Context, query string, limit int) ([]entity.OperationLog, error)
}

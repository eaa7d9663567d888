package usecase

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"docsign/internal/domain/entity"
	"docsign/internal/infrastructure/redis"
)

// cacheMapping mirrors the document's current PDF pointer and signing
// progress in redis. Best effort, a cache failure never fails the request.
func cacheMapping(ctx context.Context, client *redis.RedisClient, logger *zap.Logger, doc *entity.Document) {
	signed := 0
	for _, b := range doc.SignatureBlocks {
		if b.IsSigned {
			signed++
		}
	}

	mapping := DocumentMapping{
		CurrentPdf:   filepath.Base(doc.PdfURL),
		Status:       doc.Status,
		SignedBlocks: signed,
		TotalBlocks:  len(doc.SignatureBlocks),
		UpdatedAt:    time.Now(),
	}

	if err := client.SetJSON(ctx, documentKeyPrefix+doc.ID, mapping, 0); err != nil {
		logger.Warn("Failed to save document mapping to redis",
			zap.String("document_id", doc.ID),
			zap.Error(err),
		)
	}
}

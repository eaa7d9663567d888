package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"docsign/internal/domain/entity"
	"docsign/internal/domain/repository"
)

// recordOperation writes one audit entry for a PDF processing operation.
// Audit persistence is best effort: a failure here never blocks the primary
// operation's response.
func recordOperation(ctx context.Context, repo repository.OperationLogRepository, logger *zap.Logger,
	documentID, operation string, start time.Time, opErr error) {

	outcome := "success"
	detail := ""
	if opErr != nil {
		outcome = "error"
		detail = opErr.Error()
	}

	entry := &entity.OperationLog{
		DocumentID: documentID,
		Operation:  operation,
		Outcome:    outcome,
		Detail:     detail,
		Duration:   time.Since(start).Milliseconds(),
		CreatedAt:  time.Now(),
	}

	if err := repo.Save(ctx, entry); err != nil {
		logger.Warn("Failed to record operation log",
			zap.String("document_id", documentID),
			zap.String("operation", operation),
			zap.Error(err),
		)
	}
}

package usecase

import (
	"context"

	"go.uber.org/zap"

	"docsign/internal/domain/entity"
	"docsign/internal/domain/repository"
)

type AuditUsecase interface {
	GetLogs(ctx context.Context, limit, offset int) ([]entity.OperationLog, error)
	SearchLogs(ctx context.Context, query string, limit int) ([]entity.OperationLog, error)
}

type auditUsecase struct {
	opLogRepo repository.OperationLogRepository
	logger    *zap.Logger
}

func NewAuditUsecase(opLogRepo repository.OperationLogRepository, logger *zap.Logger) AuditUsecase {
	return &auditUsecase{
		opLogRepo: opLogRepo,
		logger:    logger,
	}
}

func (u *auditUsecase) GetLogs(ctx context.Context, limit, offset int) ([]entity.OperationLog, error) {
	logs, err := u.opLogRepo.List(ctx, limit, offset)
	if err != nil {
		u.logger.Error("Failed to list operation logs", zap.Error(err))
		return nil, err
	}
	return logs, nil
}

func (u *auditUsecase) SearchLogs(ctx context.Context, query string, limit int) ([]entity.OperationLog, error) {
	logs, err := u.opLogRepo.Search(ctx, query, limit)
	if err != nil {
		u.logger.Error("Failed to search operation logs",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, err
	}
	return logs, nil
}

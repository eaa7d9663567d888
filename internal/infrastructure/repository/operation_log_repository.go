package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"docsign/internal/domain/entity"
	"docsign/internal/domain/repository"
	"docsign/internal/infrastructure/database"
)

type operationLogRepository struct {
	db     *database.Database
	logger *zap.Logger
}

func NewOperationLogRepository(db *database.Database, logger *zap.Logger) repository.OperationLogRepository {
	return &operationLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *operationLogRepository) Save(ctx context.Context, log *entity.OperationLog) error {
	query := `
		INSERT INTO operation_logs (document_id, operation, outcome, detail, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		log.DocumentID,
		log.Operation,
		log.Outcome,
		log.Detail,
		log.Duration,
		log.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save operation log",
			zap.String("document_id", log.DocumentID),
			zap.String("operation", log.Operation),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save operation log: %w", err)
	}

	return nil
}

func (r *operationLogRepository) List(ctx context.Context, limit, offset int) ([]entity.OperationLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, document_id, operation, outcome, detail, duration_ms, created_at
		FROM operation_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.scanLogs(r.db.DB.QueryContext(ctx, query, limit, offset))
}

func (r *operationLogRepository) Search(ctx context.Context, q string, limit int) ([]entity.OperationLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT id, document_id, operation, outcome, detail, duration_ms, created_at
		FROM operation_logs
		WHERE document_id = $1 OR operation = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	return r.scanLogs(r.db.DB.QueryContext(ctx, query, q, limit))
}

func (r *operationLogRepository) scanLogs(rows *sql.Rows, err error) ([]entity.OperationLog, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to query operation logs: %w", err)
	}
	defer rows.Close()

	var logs []entity.OperationLog
	for rows.Next() {
		var log entity.OperationLog
		if err := rows.Scan(
			&log.ID,
			&log.DocumentID,
			&log.Operation,
			&log.Outcome,
			&log.Detail,
			&log.Duration,
			&log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan operation log: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read operation logs: %w", err)
	}
	return logs, nil
}

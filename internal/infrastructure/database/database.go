package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"docsign/internal/config"
)

type Database struct {
	DB     *sql.DB
	logger *zap.Logger
}

func NewDatabase(cfg *config.Config, logger *zap.Logger) (*Database, error) {
	// Build PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	db, err := sql.Open(cfg.Database.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connected successfully",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("dbname", cfg.Database.DBName),
	)

	database := &Database{
		DB:     db,
		logger: logger,
	}

	// Run migrations
	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return database, nil
}

func (d *Database) migrate() error {
	statements := []string{
		// Signature block placements live in a JSON text blob on the document
		// row; see entity.SignatureBlock for the tolerated key casings.
		`CREATE TABLE IF NOT EXISTS documents (
			id VARCHAR(64) PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			doc_type VARCHAR(32) NOT NULL,
			status VARCHAR(32) NOT NULL DEFAULT 'draft',
			pdf_url TEXT NOT NULL DEFAULT '',
			signature_blocks TEXT NOT NULL DEFAULT '[]',
			location TEXT NOT NULL DEFAULT '',
			view_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS signatures (
			id VARCHAR(64) PRIMARY KEY,
			document_id VARCHAR(64) NOT NULL,
			signer_id VARCHAR(64) NOT NULL,
			signer_role TEXT NOT NULL DEFAULT '',
			signer_name TEXT NOT NULL DEFAULT '',
			signer_email TEXT NOT NULL DEFAULT '',
			signature_type VARCHAR(16) NOT NULL DEFAULT 'draw',
			signature_data TEXT NOT NULL DEFAULT '',
			color VARCHAR(16) NOT NULL DEFAULT '',
			font_family TEXT NOT NULL DEFAULT '',
			ip_address VARCHAR(64) NOT NULL DEFAULT '',
			user_agent TEXT NOT NULL DEFAULT '',
			signed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (document_id, signer_id)
		);`,

		`CREATE TABLE IF NOT EXISTS operation_logs (
			id SERIAL PRIMARY KEY,
			document_id VARCHAR(64) NOT NULL,
			operation VARCHAR(32) NOT NULL,
			outcome VARCHAR(32) NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			duration_ms BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE INDEX IF NOT EXISTS idx_signatures_document_id ON signatures(document_id);`,
		`CREATE INDEX IF NOT EXISTS idx_operation_logs_document_id ON operation_logs(document_id);`,
	}

	for _, stmt := range statements {
		if _, err := d.DB.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	d.logger.Info("Database migrations completed successfully")
	return nil
}

func (d *Database) Close() error {
	return d.DB.Close()
}

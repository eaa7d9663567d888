package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"docsign/internal/domain/entity"
	"docsign/internal/domain/repository"
	"docsign/internal/infrastructure/database"
)

type documentRepository struct {
	db *database.Database
}

func NewDocumentRepository(db *database.Database) repository.DocumentRepository {
	return &documentRepository{
		db: db,
	}
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	blocks, err := marshalBlocks(doc.SignatureBlocks)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO documents (id, title, doc_type, status, pdf_url, signature_blocks, location, view_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.DB.ExecContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.Type,
		doc.Status,
		doc.PdfURL,
		blocks,
		doc.Location,
		doc.ViewCount,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

func (r *documentRepository) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	query := `
		SELECT id, title, doc_type, status, pdf_url, signature_blocks, location, view_count, created_at, updated_at
		FROM documents
		WHERE id = $1
	`

	var doc entity.Document
	var blocks string

	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.Title,
		&doc.Type,
		&doc.Status,
		&doc.PdfURL,
		&blocks,
		&doc.Location,
		&doc.ViewCount,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Not found, return nil without error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document by id: %w", err)
	}

	if err := unmarshalBlocks(blocks, &doc.SignatureBlocks); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *documentRepository) Update(ctx context.Context, doc *entity.Document) error {
	blocks, err := marshalBlocks(doc.SignatureBlocks)
	if err != nil {
		return err
	}

	query := `
		UPDATE documents
		SET title = $1, status = $2, pdf_url = $3, signature_blocks = $4, location = $5, updated_at = $6
		WHERE id = $7
	`

	_, err = r.db.DB.ExecContext(ctx, query,
		doc.Title,
		doc.Status,
		doc.PdfURL,
		blocks,
		doc.Location,
		time.Now(),
		doc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	return nil
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (r *documentRepository) IncrementViewCount(ctx context.Context, id string) error {
	query := `UPDATE documents SET view_count = view_count + 1 WHERE id = $1`

	_, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

func marshalBlocks(blocks []entity.SignatureBlock) (string, error) {
	if blocks == nil {
		blocks = []entity.SignatureBlock{}
	}
	buf, err := json.Marshal(blocks)
	if err != nil {
		return "", fmt.Errorf("failed to marshal signature blocks: %w", err)
	}
	return string(buf), nil
}

func unmarshalBlocks(blob string, blocks *[]entity.SignatureBlock) error {
	if blob == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(blob), blocks); err != nil {
		return fmt.Errorf("failed to unmarshal signature blocks: %w", err)
	}
	return nil
}

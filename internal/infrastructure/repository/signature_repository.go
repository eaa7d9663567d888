package repository

import (
	"context"
	"fmt"

	"docsign/internal/domain/entity"
	"docsign/internal/domain/repository"
	"docsign/internal/infrastructure/database"
)

type signatureRepository struct {
	db *database.Database
}

func NewSignatureRepository(db *database.Database) repository.SignatureRepository {
	return &signatureRepository{
		db: db,
	}
}

func (r *signatureRepository) Save(ctx context.Context, sig *entity.Signature) error {
	query := `
		INSERT INTO signatures (id, document_id, signer_id, signer_role, signer_name, signer_email,
			signature_type, signature_data, color, font_family, ip_address, user_agent, signed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		sig.ID,
		sig.DocumentID,
		sig.SignerID,
		sig.SignerRole,
		sig.SignerName,
		sig.SignerEmail,
		sig.Data.Type,
		sig.Data.Data,
		sig.Data.Color,
		sig.Data.FontFamily,
		sig.IPAddress,
		sig.UserAgent,
		sig.SignedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save signature: %w", err)
	}

	return nil
}

func (r *signatureRepository) ListByDocument(ctx context.Context, documentID string) ([]entity.Signature, error) {
	query := `
		SELECT id, document_id, signer_id, signer_role, signer_name, signer_email,
			signature_type, signature_data, color, font_family, ip_address, user_agent, signed_at
		FROM signatures
		WHERE document_id = $1
		ORDER BY signed_at ASC
	`

	rows, err := r.db.DB.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list signatures: %w", err)
	}
	defer rows.Close()

	var sigs []entity.Signature
	for rows.Next() {
		var sig entity.Signature
		if err := rows.Scan(
			&sig.ID,
			&sig.DocumentID,
			&sig.SignerID,
			&sig.SignerRole,
			&sig.SignerName,
			&sig.SignerEmail,
			&sig.Data.Type,
			&sig.Data.Data,
			&sig.Data.Color,
			&sig.Data.FontFamily,
			&sig.IPAddress,
			&sig.UserAgent,
			&sig.SignedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan signature: %w", err)
		}
		sigs = append(sigs, sig)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read signatures: %w", err)
	}
	return sigs, nil
}

func (r *signatureRepository) ExistsForBlock(ctx context.Context, documentID, blockID string) (bool, error) {
	query := `SELECT COUNT(1) FROM signatures WHERE document_id = $1 AND signer_id = $2`

	var count int
	if err := r.db.DB.QueryRowContext(ctx, query, documentID, blockID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check signature existence: %w", err)
	}
	return count > 0, nil
}

func (r *signatureRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.db.DB.ExecContext(ctx, `DELETE FROM signatures WHERE document_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete signatures: %w", err)
	}
	return nil
}

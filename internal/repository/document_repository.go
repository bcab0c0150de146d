package repository

import (
	"context"
	"time"

	"valor-assist/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type DocumentRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewDocumentRepository(db DBTX, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	doc.CreatedAt = time.Now().UTC()

	sql, args, err := psql.Insert("documents").
		Columns("claim_id", "document_type", "title", "content", "created_at").
		Values(doc.ClaimID, doc.DocumentType, doc.Title, doc.Content, doc.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	return translateError(r.db.QueryRow(ctx, sql, args...).Scan(&doc.ID))
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	sql, args, err := psql.Select("id", "claim_id", "document_type", "title", "content", "created_at").
		From("documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var doc models.Document
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&doc.ID, &doc.ClaimID, &doc.DocumentType, &doc.Title, &doc.Content, &doc.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &doc, nil
}

func (r *DocumentRepository) ListByClaimID(ctx context.Context, claimID int64) ([]*models.Document, error) {
	sql, args, err := psql.Select("id", "claim_id", "document_type", "title", "content", "created_at").
		From("documents").
		Where(squirrel.Eq{"claim_id": claimID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	documents := []*models.Document{}
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(
			&doc.ID, &doc.ClaimID, &doc.DocumentType, &doc.Title, &doc.Content, &doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		documents = append(documents, &doc)
	}

	return documents, rows.Err()
}

package repository

import (
	"context"
	"time"

	"valor-assist/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type AnalysisRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewAnalysisRepository(db DBTX, logger *zap.Logger) *AnalysisRepository {
	return &AnalysisRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AnalysisRepository) Create(ctx context.Context, result *models.DocumentAnalysisResult) error {
	result.CreatedAt = time.Now().UTC()

	sql, args, err := psql.Insert("document_analysis_results").
		Columns("document_id", "extracted_fields", "confidence", "created_at").
		Values(result.DocumentID, result.ExtractedFields, result.Confidence, result.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	return translateError(r.db.QueryRow(ctx, sql, args...).Scan(&result.ID))
}

func (r *AnalysisRepository) ListByDocumentID(ctx context.Context, documentID int64) ([]*models.DocumentAnalysisResult, error) {
	sql, args, err := psql.Select("id", "document_id", "extracted_fields", "confidence", "created_at").
		From("document_analysis_results").
		Where(squirrel.Eq{"document_id": documentID}).
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

	results := []*models.DocumentAnalysisResult{}
	for rows.Next() {
		var result models.DocumentAnalysisResult
		if err := rows.Scan(&result.ID, &result.DocumentID, &result.ExtractedFields, &result.Confidence, &result.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, &result)
	}

	return results, rows.Err()
}

package repository

import (
	"context"
	"time"

	"valor-assist/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type AuditRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewAuditRepository(db DBTX, logger *zap.Logger) *AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	entry.CreatedAt = time.Now().UTC()

	sql, args, err := psql.Insert("audit_logs").
		Columns("user_id", "action", "entity_type", "entity_id", "details", "ip_address", "created_at").
		Values(entry.UserID, entry.Action, entry.EntityType, entry.EntityID, nullableJSON(entry.Details), entry.IPAddress, entry.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	return translateError(r.db.QueryRow(ctx, sql, args...).Scan(&entry.ID))
}

func (r *AuditRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.AuditLog, error) {
	sql, args, err := psql.Select("id", "user_id", "action", "entity_type", "entity_id", "details", "ip_address", "created_at").
		From("audit_logs").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*models.AuditLog{}
	for rows.Next() {
		var entry models.AuditLog
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Action, &entry.EntityType, &entry.EntityID, &entry.Details, &entry.IPAddress, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

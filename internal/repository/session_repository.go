package repository

import (
	"context"
	"time"

	"valor-assist/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type SessionRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewSessionRepository(db DBTX, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	session.CreatedAt = time.Now().UTC()

	sql, args, err := psql.Insert("sessions").
		Columns("sid", "user_id", "expires_at", "created_at").
		Values(session.SID, session.UserID, session.ExpiresAt, session.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return translateError(err)
}

func (r *SessionRepository) Get(ctx context.Context, sid string) (*models.Session, error) {
	sql, args, err := psql.Select("sid", "user_id", "expires_at", "created_at").
		From("sessions").
		Where(squirrel.Eq{"sid": sid}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var session models.Session
	err = r.db.QueryRow(ctx, sql, args...).Scan(&session.SID, &session.UserID, &session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}

	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	sql, args, err := psql.Delete("sessions").
		Where(squirrel.Eq{"sid": sid}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// DeleteExpired prunes sessions past their expiry and reports how many went.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := psql.Delete("sessions").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

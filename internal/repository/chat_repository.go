package repository

import (
	"context"
	"time"

	"valor-assist/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

var threadColumns = []string{"id", "thread_id", "user_id", "support_user_id", "topic", "status", "created_at", "closed_at"}

type ChatRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewChatRepository(db DBTX, logger *zap.Logger) *ChatRepository {
	return &ChatRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ChatRepository) CreateThread(ctx context.Context, thread *models.ChatThread) error {
	thread.CreatedAt = time.Now().UTC()
	if thread.Status == "" {
		thread.Status = models.ThreadStatusActive
	}

	sql, args, err := psql.Insert("chat_threads").
		Columns("thread_id", "user_id", "support_user_id", "topic", "status", "created_at").
		Values(thread.ThreadID, thread.UserID, thread.SupportUserID, thread.Topic, thread.Status, thread.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	return translateError(r.db.QueryRow(ctx, sql, args...).Scan(&thread.ID))
}

func (r *ChatRepository) GetThread(ctx context.Context, threadID string) (*models.ChatThread, error) {
	sql, args, err := psql.Select(threadColumns...).
		From("chat_threads").
		Where(squirrel.Eq{"thread_id": threadID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var thread models.ChatThread
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&thread.ID, &thread.ThreadID, &thread.UserID, &thread.SupportUserID, &thread.Topic, &thread.Status,
		&thread.CreatedAt, &thread.ClosedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &thread, nil
}

func (r *ChatRepository) ListThreadsByUser(ctx context.Context, userID int64) ([]*models.ChatThread, error) {
	sql, args, err := psql.Select(threadColumns...).
		From("chat_threads").
		Where(squirrel.Eq{"user_id": userID}).
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

	threads := []*models.ChatThread{}
	for rows.Next() {
		var thread models.ChatThread
		if err := rows.Scan(
			&thread.ID, &thread.ThreadID, &thread.UserID, &thread.SupportUserID, &thread.Topic, &thread.Status,
			&thread.CreatedAt, &thread.ClosedAt,
		); err != nil {
			return nil, err
		}
		threads = append(threads, &thread)
	}

	return threads, rows.Err()
}

func (r *ChatRepository) CloseThread(ctx context.Context, threadID string) error {
	sql, args, err := psql.Update("chat_threads").
		Set("status", models.ThreadStatusClosed).
		Set("closed_at", time.Now().UTC()).
		Where(squirrel.Eq{"thread_id": threadID}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	sql, args, err := psql.Insert("chat_messages").
		Columns("message_id", "thread_id", "sender_id", "sender_name", "content", "is_bot", "created_at").
		Values(msg.MessageID, msg.ThreadID, msg.SenderID, msg.SenderName, msg.Content, msg.IsBot, msg.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	return translateError(r.db.QueryRow(ctx, sql, args...).Scan(&msg.ID))
}

func (r *ChatRepository) ListMessages(ctx context.Context, threadID string) ([]*models.ChatMessage, error) {
	sql, args, err := psql.Select("id", "message_id", "thread_id", "sender_id", "sender_name", "content", "is_bot", "created_at").
		From("chat_messages").
		Where(squirrel.Eq{"thread_id": threadID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*models.ChatMessage{}
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(
			&msg.ID, &msg.MessageID, &msg.ThreadID, &msg.SenderID, &msg.SenderName, &msg.Content, &msg.IsBot, &msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}

	return messages, rows.Err()
}
